package generators

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

// Bootstrap fabricates provisioning-script style lines for bootstrap.log.
type Bootstrap struct{}

func (Bootstrap) Category() core.Category { return core.CategoryBootstrap }

func (Bootstrap) Line(now time.Time, rng *rand.Rand) string {
	ts := now.Format(time.RFC3339)

	switch rng.IntN(5) {
	case 0:
		return fmt.Sprintf("%s [INFO] running provisioner step %d of 12", ts, 1+rng.IntN(12))
	case 1:
		return fmt.Sprintf("%s [INFO] enabled service %s", ts, pick(rng, Services))
	case 2:
		return fmt.Sprintf("%s [INFO] fetching seed archive (%d bytes)", ts, 4096+rng.IntN(1<<20))
	case 3:
		return fmt.Sprintf("%s [WARN] mirror sync slow, retry attempt %d", ts, 1+rng.IntN(5))
	default:
		return fmt.Sprintf("%s [INFO] bootstrap stage complete in %dms", ts, 10+rng.IntN(5000))
	}
}
