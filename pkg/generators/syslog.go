package generators

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

// Syslog fabricates general system daemon lines for the syslog file.
type Syslog struct {
	Host string
}

func (Syslog) Category() core.Category { return core.CategorySyslog }

func (g Syslog) Line(now time.Time, rng *rand.Rand) string {
	prefix := fmt.Sprintf("%s %s", stamp(now), g.Host)

	switch rng.IntN(5) {
	case 0:
		return fmt.Sprintf("%s systemd[1]: Started Session %d of user %s.",
			prefix, 1+rng.IntN(9000), pick(rng, Users))
	case 1:
		return fmt.Sprintf("%s CRON[%d]: (%s) CMD (run-parts /etc/cron.hourly)",
			prefix, pid(rng), pick(rng, Users))
	case 2:
		return fmt.Sprintf("%s dhclient[%d]: DHCPACK of %s from %s",
			prefix, pid(rng), pick(rng, Addresses), pick(rng, Addresses))
	case 3:
		return fmt.Sprintf("%s %s[%d]: reloading configuration",
			prefix, pick(rng, Services), pid(rng))
	default:
		return fmt.Sprintf("%s rsyslogd: action 'action-%d' resumed (module 'builtin:omfile')",
			prefix, rng.IntN(30))
	}
}
