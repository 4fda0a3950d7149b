// Package buildstats provides lightweight, thread-safe counters and
// gauges for reporting index-build progress: files enumerated,
// selected, parsed, parse failures, and elapsed time. It is a trimmed
// derivative of a general metrics collector, keeping only the
// primitives a build pass actually needs.
package buildstats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/persiafts/engine/internal/ftserrors"
)

// Counter is a monotonically increasing, concurrency-safe count.
type Counter struct {
	value int64
}

// Inc increments the counter by 1.
func (c *Counter) Inc() { atomic.AddInt64(&c.value, 1) }

// Add adds delta to the counter.
func (c *Counter) Add(delta int64) { atomic.AddInt64(&c.value, delta) }

// Value returns the current count.
func (c *Counter) Value() int64 { return atomic.LoadInt64(&c.value) }

// Gauge is a concurrency-safe value that can move up or down.
type Gauge struct {
	value int64
}

// Set assigns value to the gauge.
func (g *Gauge) Set(value int64) { atomic.StoreInt64(&g.value, value) }

// Value returns the gauge's current value.
func (g *Gauge) Value() int64 { return atomic.LoadInt64(&g.value) }

// BuildStats collects the counters and gauges reported over the
// lifetime of a single build_index run.
type BuildStats struct {
	Enumerated    Counter
	Selected      Counter
	Parsed        Counter
	ParseFailures Counter
	Workers       Gauge

	startedAt time.Time
	elapsed   int64 // nanoseconds, set once on Finish

	mu          sync.Mutex
	parseErrors []*ftserrors.ParseError
}

// RecordParseError appends e to the set of per-document parse failures
// observed during the build. Safe for concurrent use by worker
// goroutines.
func (b *BuildStats) RecordParseError(e *ftserrors.ParseError) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.parseErrors = append(b.parseErrors, e)
}

// ParseErrors returns the parse failures recorded so far, in the order
// they were reported.
func (b *BuildStats) ParseErrors() []*ftserrors.ParseError {
	b.mu.Lock()
	defer b.mu.Unlock()
	errs := make([]*ftserrors.ParseError, len(b.parseErrors))
	copy(errs, b.parseErrors)
	return errs
}

// New creates a BuildStats with its start time recorded.
func New() *BuildStats {
	return &BuildStats{startedAt: time.Now()}
}

// Finish records the elapsed duration since New was called. Calls
// after the first are no-ops.
func (b *BuildStats) Finish() {
	if atomic.LoadInt64(&b.elapsed) != 0 {
		return
	}
	atomic.StoreInt64(&b.elapsed, int64(time.Since(b.startedAt)))
}

// Elapsed returns the duration recorded by Finish, or the time elapsed
// so far if Finish has not yet been called.
func (b *BuildStats) Elapsed() time.Duration {
	if e := atomic.LoadInt64(&b.elapsed); e != 0 {
		return time.Duration(e)
	}
	return time.Since(b.startedAt)
}

// String renders a one-line human-readable summary, suitable for CLI
// progress output.
func (b *BuildStats) String() string {
	return fmt.Sprintf(
		"enumerated=%d selected=%d parsed=%d parse_failures=%d workers=%d elapsed=%s",
		b.Enumerated.Value(), b.Selected.Value(), b.Parsed.Value(),
		b.ParseFailures.Value(), b.Workers.Value(), b.Elapsed().Round(time.Millisecond),
	)
}
