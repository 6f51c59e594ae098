package generators

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

const testHost = "sandbox"

// Alternations built from the candidate sets, so the grammar patterns below
// also prove that no out-of-set value ever appears.
var (
	userAlt = altOf(Users)
	addrAlt = altOf(Addresses)
	fontAlt = altOf(Fonts)
	svcAlt  = altOf(Services)

	stampRe   = `[A-Z][a-z]{2} [ \d]\d \d{2}:\d{2}:\d{2}`
	rfc3339Re = `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:Z|[+-]\d{2}:\d{2})`
)

func altOf(set []string) string {
	quoted := make([]string, len(set))
	for i, s := range set {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

func grammar(t *testing.T, cat core.Category) *regexp.Regexp {
	t.Helper()

	var pattern string
	switch cat {
	case core.CategoryAuth:
		pattern = fmt.Sprintf(`^%s %s sshd\[\d+\]: (?:`+
			`Accepted password for %s from %s port \d+ ssh2|`+
			`Failed password for invalid user %s from %s port \d+ ssh2|`+
			`pam_unix\(sshd:session\): session opened for user %s by \(uid=0\)|`+
			`pam_unix\(sshd:session\): session closed for user %s|`+
			`Connection closed by %s port \d+ \[preauth\]|`+
			`Invalid user %s from %s port \d+)$`,
			stampRe, testHost, userAlt, addrAlt, userAlt, addrAlt, userAlt, userAlt, addrAlt, userAlt, addrAlt)

	case core.CategoryBootstrap:
		pattern = fmt.Sprintf(`^%s \[(?:INFO|WARN)\] (?:`+
			`running provisioner step \d+ of 12|`+
			`enabled service %s|`+
			`fetching seed archive \(\d+ bytes\)|`+
			`mirror sync slow, retry attempt \d+|`+
			`bootstrap stage complete in \d+ms)$`,
			rfc3339Re, svcAlt)

	case core.CategoryFontconfig:
		pattern = fmt.Sprintf(`^%s Fontconfig: (?:`+
			`/usr/share/fonts: caching, new cache contents: \d+ fonts, \d+ dirs|`+
			`registered face "%s"|`+
			`cache file for "%s" is out of date|`+
			`rescanning /usr/share/fonts \(\d+ files\)|`+
			`substituting family "%s" for "%s")$`,
			rfc3339Re, fontAlt, fontAlt, fontAlt, fontAlt)

	case core.CategoryKernel:
		pattern = fmt.Sprintf(`^%s %s kernel: \[\d+\.\d{6}\] (?:`+
			`usb 1-\d: new high-speed USB device number \d+ using xhci_hcd|`+
			`CPU\d+: Core temperature above threshold, cpu clock throttled|`+
			`TCP: request_sock_TCP: Possible SYN flooding on port \d+\. Sending cookies\.|`+
			`EXT4-fs \(sda1\): mounted filesystem with ordered data mode\. Opts: \(null\)|`+
			`oom-kill: constraint=CONSTRAINT_NONE, task=%s, pid=\d+)$`,
			stampRe, testHost, svcAlt)

	case core.CategorySyslog:
		pattern = fmt.Sprintf(`^%s %s (?:`+
			`systemd\[1\]: Started Session \d+ of user %s\.|`+
			`CRON\[\d+\]: \(%s\) CMD \(run-parts /etc/cron\.hourly\)|`+
			`dhclient\[\d+\]: DHCPACK of %s from %s|`+
			`%s\[\d+\]: reloading configuration|`+
			`rsyslogd: action 'action-\d+' resumed \(module 'builtin:omfile'\))$`,
			stampRe, testHost, userAlt, userAlt, addrAlt, addrAlt, svcAlt)

	default:
		t.Fatalf("no grammar for category %q", cat)
	}
	return regexp.MustCompile(pattern)
}

func TestLinesMatchGrammar(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	now := time.Now()

	for _, g := range All(testHost) {
		re := grammar(t, g.Category())
		for i := 0; i < 500; i++ {
			line := g.Line(now, rng)
			if !re.MatchString(line) {
				t.Fatalf("%s: line does not match grammar:\n  %s", g.Category(), line)
			}
		}
	}
}

func TestTimestampMatchesEmissionTime(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	now := time.Date(2026, time.August, 9, 4, 5, 6, 0, time.Local)

	for _, g := range All(testHost) {
		line := g.Line(now, rng)

		switch g.Category() {
		case core.CategoryBootstrap, core.CategoryFontconfig:
			field := strings.Fields(line)[0]
			ts, err := time.Parse(time.RFC3339, field)
			if err != nil {
				t.Fatalf("%s: bad timestamp %q: %v", g.Category(), field, err)
			}
			if !ts.Truncate(time.Second).Equal(now.Truncate(time.Second)) {
				t.Errorf("%s: timestamp %v, want %v", g.Category(), ts, now)
			}
		default:
			ts, err := time.Parse(StampLayout, line[:15])
			if err != nil {
				t.Fatalf("%s: bad timestamp %q: %v", g.Category(), line[:15], err)
			}
			if ts.Month() != now.Month() || ts.Day() != now.Day() ||
				ts.Hour() != now.Hour() || ts.Minute() != now.Minute() || ts.Second() != now.Second() {
				t.Errorf("%s: timestamp %v, want fields of %v", g.Category(), ts, now)
			}
		}
	}
}

func TestAllCoversEveryCategory(t *testing.T) {
	gens := All("")
	if len(gens) != len(core.Categories()) {
		t.Fatalf("expected %d generators, got %d", len(core.Categories()), len(gens))
	}
	for i, c := range core.Categories() {
		if gens[i].Category() != c {
			t.Errorf("position %d: got %s, want %s", i, gens[i].Category(), c)
		}
	}
}

func TestForCategoriesSubset(t *testing.T) {
	gens := ForCategories([]core.Category{core.CategoryKernel, core.CategoryAuth}, testHost)
	if len(gens) != 2 {
		t.Fatalf("expected 2 generators, got %d", len(gens))
	}
	// Emission order is preserved regardless of request order.
	if gens[0].Category() != core.CategoryAuth || gens[1].Category() != core.CategoryKernel {
		t.Errorf("unexpected order: %s, %s", gens[0].Category(), gens[1].Category())
	}
}

func TestForCategoriesEmptyMeansAll(t *testing.T) {
	if got := len(ForCategories(nil, testHost)); got != 5 {
		t.Errorf("expected 5 generators, got %d", got)
	}
}
