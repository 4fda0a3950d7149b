package buildstats

import (
	"errors"
	"sync"
	"testing"

	"github.com/persiafts/engine/internal/ftserrors"
)

func TestCounterConcurrentInc(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	if c.Value() != 100 {
		t.Errorf("Value() = %d, want 100", c.Value())
	}
}

func TestGaugeSetAndValue(t *testing.T) {
	var g Gauge
	g.Set(4)
	if g.Value() != 4 {
		t.Errorf("Value() = %d, want 4", g.Value())
	}
	g.Set(1)
	if g.Value() != 1 {
		t.Errorf("Value() = %d, want 1", g.Value())
	}
}

func TestBuildStatsStringContainsCounters(t *testing.T) {
	b := New()
	b.Enumerated.Add(10)
	b.Selected.Add(5)
	b.Parsed.Add(4)
	b.ParseFailures.Inc()
	b.Workers.Set(2)
	b.Finish()

	s := b.String()
	if s == "" {
		t.Fatal("String() returned empty")
	}
	if b.Elapsed() <= 0 {
		t.Errorf("Elapsed() = %v, want > 0", b.Elapsed())
	}
}

func TestBuildStatsRecordParseErrorConcurrent(t *testing.T) {
	b := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.RecordParseError(ftserrors.NewParseError("doc.html", errors.New("boom")))
		}(i)
	}
	wg.Wait()

	errs := b.ParseErrors()
	if len(errs) != 20 {
		t.Fatalf("ParseErrors() len = %d, want 20", len(errs))
	}
	for _, e := range errs {
		if e.Path != "doc.html" {
			t.Errorf("unexpected path %q", e.Path)
		}
	}
}

func TestBuildStatsFinishIdempotent(t *testing.T) {
	b := New()
	b.Finish()
	first := b.Elapsed()
	b.Finish()
	if b.Elapsed() != first {
		t.Errorf("second Finish changed elapsed: %v -> %v", first, b.Elapsed())
	}
}
