package generators

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

// Fontconfig fabricates font-cache maintenance lines for fontconfig.log.
type Fontconfig struct{}

func (Fontconfig) Category() core.Category { return core.CategoryFontconfig }

func (Fontconfig) Line(now time.Time, rng *rand.Rand) string {
	ts := now.Format(time.RFC3339)

	switch rng.IntN(5) {
	case 0:
		return fmt.Sprintf("%s Fontconfig: /usr/share/fonts: caching, new cache contents: %d fonts, %d dirs",
			ts, 1+rng.IntN(400), 1+rng.IntN(30))
	case 1:
		return fmt.Sprintf("%s Fontconfig: registered face \"%s\"", ts, pick(rng, Fonts))
	case 2:
		return fmt.Sprintf("%s Fontconfig: cache file for \"%s\" is out of date", ts, pick(rng, Fonts))
	case 3:
		return fmt.Sprintf("%s Fontconfig: rescanning /usr/share/fonts (%d files)", ts, 1+rng.IntN(2000))
	default:
		return fmt.Sprintf("%s Fontconfig: substituting family \"%s\" for \"%s\"",
			ts, pick(rng, Fonts), pick(rng, Fonts))
	}
}
