// Package generators fabricates plausible log lines, one generator per
// category. Every random field is drawn from the small fixed candidate
// sets below; downstream consumers can rely on no other values appearing.
package generators

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

// Candidate values substituted into line templates.
var (
	Users     = []string{"root", "admin", "deploy", "ubuntu", "guest", "postgres"}
	Addresses = []string{"10.0.0.5", "192.168.1.23", "172.16.4.18", "203.0.113.7", "198.51.100.42"}
	Fonts     = []string{"DejaVu Sans", "Liberation Mono", "Noto Sans CJK", "Ubuntu Mono", "Cantarell"}
	Services  = []string{"nginx", "cron", "dockerd", "systemd-resolved", "rsyslogd"}
)

// DefaultHost is the host label stamped into syslog-style lines when the
// profile does not override it.
const DefaultHost = "sandbox"

// Classic syslog timestamp, e.g. "Sep  7 04:12:33".
const StampLayout = "Jan _2 15:04:05"

// All returns one generator per category, in emission order.
func All(host string) []core.Generator {
	if host == "" {
		host = DefaultHost
	}
	return []core.Generator{
		Auth{Host: host},
		Bootstrap{},
		Fontconfig{},
		Kernel{Host: host},
		Syslog{Host: host},
	}
}

// ForCategories returns generators for the given subset, in emission order.
// An empty subset means all categories.
func ForCategories(cats []core.Category, host string) []core.Generator {
	if len(cats) == 0 {
		return All(host)
	}
	wanted := make(map[core.Category]bool, len(cats))
	for _, c := range cats {
		wanted[c] = true
	}
	var gens []core.Generator
	for _, g := range All(host) {
		if wanted[g.Category()] {
			gens = append(gens, g)
		}
	}
	return gens
}

func pick(rng *rand.Rand, set []string) string {
	return set[rng.IntN(len(set))]
}

func pid(rng *rand.Rand) int {
	return 300 + rng.IntN(64000)
}

func port(rng *rand.Rand) int {
	return 1024 + rng.IntN(64000)
}

func stamp(now time.Time) string {
	return now.Format(StampLayout)
}

// uptime fabricates a kernel-style seconds-since-boot value.
func uptime(rng *rand.Rand) string {
	return fmt.Sprintf("%d.%06d", rng.IntN(500000), rng.IntN(1000000))
}
