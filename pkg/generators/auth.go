package generators

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

// Auth fabricates sshd/PAM style lines for auth.log.
type Auth struct {
	Host string
}

func (Auth) Category() core.Category { return core.CategoryAuth }

func (g Auth) Line(now time.Time, rng *rand.Rand) string {
	prefix := fmt.Sprintf("%s %s sshd[%d]:", stamp(now), g.Host, pid(rng))

	switch rng.IntN(6) {
	case 0:
		return fmt.Sprintf("%s Accepted password for %s from %s port %d ssh2",
			prefix, pick(rng, Users), pick(rng, Addresses), port(rng))
	case 1:
		return fmt.Sprintf("%s Failed password for invalid user %s from %s port %d ssh2",
			prefix, pick(rng, Users), pick(rng, Addresses), port(rng))
	case 2:
		return fmt.Sprintf("%s pam_unix(sshd:session): session opened for user %s by (uid=0)",
			prefix, pick(rng, Users))
	case 3:
		return fmt.Sprintf("%s pam_unix(sshd:session): session closed for user %s",
			prefix, pick(rng, Users))
	case 4:
		return fmt.Sprintf("%s Connection closed by %s port %d [preauth]",
			prefix, pick(rng, Addresses), port(rng))
	default:
		return fmt.Sprintf("%s Invalid user %s from %s port %d",
			prefix, pick(rng, Users), pick(rng, Addresses), port(rng))
	}
}
