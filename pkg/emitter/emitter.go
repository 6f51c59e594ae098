// Package emitter drives the synthetic log loop: on every tick it asks each
// generator for one line and appends it to that category's flat file.
package emitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

// Emitter appends one fabricated line per generator per tick.
type Emitter struct {
	dir      string
	interval time.Duration
	gens     []core.Generator
	rng      *rand.Rand
	logger   *slog.Logger

	paused atomic.Bool

	mu     sync.Mutex
	stats  map[core.Category]*core.Stat
	onEmit func(core.Emission)
}

// New creates an emitter writing under dir. A zero seed gives a
// time-seeded sequence; any other value makes runs reproducible.
func New(dir string, interval time.Duration, gens []core.Generator, seed uint64, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	stats := make(map[core.Category]*core.Stat, len(gens))
	for _, g := range gens {
		c := g.Category()
		stats[c] = &core.Stat{Category: c, File: c.Filename()}
	}
	return &Emitter{
		dir:      dir,
		interval: interval,
		gens:     gens,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger:   logger,
		stats:    stats,
	}
}

// Dir returns the base directory lines are appended under.
func (e *Emitter) Dir() string { return e.dir }

// OnEmission registers a hook called once per appended line.
// Must be set before Run.
func (e *Emitter) OnEmission(fn func(core.Emission)) {
	e.onEmit = fn
}

// Pause makes subsequent ticks no-ops until Resume.
func (e *Emitter) Pause() { e.paused.Store(true) }

// Resume re-enables ticks after Pause.
func (e *Emitter) Resume() { e.paused.Store(false) }

// Paused reports whether the emitter is currently paused.
func (e *Emitter) Paused() bool { return e.paused.Load() }

// Run creates the base directory, then emits on every tick until ctx is
// cancelled. Write failures are logged and do not stop the loop.
func (e *Emitter) Run(ctx context.Context) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", e.dir, err)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if e.paused.Load() {
				continue
			}
			if err := e.Tick(now); err != nil {
				e.logger.Error("emit failed", "err", err)
			}
		}
	}
}

// Tick runs one emission pass over all generators. Failed appends are
// skipped; the joined errors are returned for callers that care.
func (e *Emitter) Tick(now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	for _, g := range e.gens {
		cat := g.Category()
		line := g.Line(now, e.rng)
		if err := e.appendLine(cat, line); err != nil {
			errs = append(errs, err)
			continue
		}

		st := e.stats[cat]
		st.Lines++
		st.LastTsUnixMs = now.UnixMilli()

		if e.onEmit != nil {
			e.onEmit(core.Emission{
				Category: cat,
				TsUnixMs: now.UnixMilli(),
				Line:     line,
			})
		}
	}
	return errors.Join(errs...)
}

// Stats returns a snapshot of per-category counters in emission order.
func (e *Emitter) Stats() []core.Stat {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]core.Stat, 0, len(e.gens))
	for _, g := range e.gens {
		out = append(out, *e.stats[g.Category()])
	}
	return out
}

// appendLine opens, writes, and closes the category file per line, so an
// interrupt never leaves a partially buffered write behind.
func (e *Emitter) appendLine(cat core.Category, line string) error {
	path := filepath.Join(e.dir, cat.Filename())
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
