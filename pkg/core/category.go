package core

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Category identifies one synthetic log stream.
type Category string

const (
	CategoryAuth       Category = "auth"
	CategoryBootstrap  Category = "bootstrap"
	CategoryFontconfig Category = "fontconfig"
	CategoryKernel     Category = "kernel"
	CategorySyslog     Category = "syslog"
)

// Categories returns all categories in emission order.
func Categories() []Category {
	return []Category{
		CategoryAuth,
		CategoryBootstrap,
		CategoryFontconfig,
		CategoryKernel,
		CategorySyslog,
	}
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Filename returns the flat file the category appends to,
// relative to the base directory.
func (c Category) Filename() string {
	switch c {
	case CategoryAuth:
		return "auth.log"
	case CategoryBootstrap:
		return "bootstrap.log"
	case CategoryFontconfig:
		return "fontconfig.log"
	case CategoryKernel:
		return "kern.log"
	case CategorySyslog:
		return "syslog"
	default:
		return string(c) + ".log"
	}
}

// Generator fabricates one line of a category per tick.
type Generator interface {
	// Category returns the log stream this generator feeds.
	Category() Category

	// Line renders one formatted log line (without trailing newline)
	// for the given wall-clock time, drawing random fields from rng.
	Line(now time.Time, rng *rand.Rand) string
}

// Emission records one fabricated line.
type Emission struct {
	Category Category `json:"category"`
	TsUnixMs int64    `json:"ts_unix_ms"`
	Line     string   `json:"line"`
}

// Stat is a per-category emission counter.
type Stat struct {
	Category     Category `json:"category"`
	File         string   `json:"file"`
	Lines        uint64   `json:"lines"`
	LastTsUnixMs int64    `json:"last_ts_unix_ms,omitempty"`
}
