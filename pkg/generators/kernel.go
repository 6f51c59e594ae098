package generators

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

// Kernel fabricates dmesg-style lines for kern.log.
type Kernel struct {
	Host string
}

func (Kernel) Category() core.Category { return core.CategoryKernel }

func (g Kernel) Line(now time.Time, rng *rand.Rand) string {
	prefix := fmt.Sprintf("%s %s kernel: [%s]", stamp(now), g.Host, uptime(rng))

	switch rng.IntN(5) {
	case 0:
		return fmt.Sprintf("%s usb 1-%d: new high-speed USB device number %d using xhci_hcd",
			prefix, 1+rng.IntN(8), 1+rng.IntN(127))
	case 1:
		return fmt.Sprintf("%s CPU%d: Core temperature above threshold, cpu clock throttled",
			prefix, rng.IntN(16))
	case 2:
		return fmt.Sprintf("%s TCP: request_sock_TCP: Possible SYN flooding on port %d. Sending cookies.",
			prefix, port(rng))
	case 3:
		return fmt.Sprintf("%s EXT4-fs (sda1): mounted filesystem with ordered data mode. Opts: (null)",
			prefix)
	default:
		return fmt.Sprintf("%s oom-kill: constraint=CONSTRAINT_NONE, task=%s, pid=%d",
			prefix, pick(rng, Services), pid(rng))
	}
}
