// Package config provides the default tunables for both the indexer
// and the query engine: BM25 parameters, boosts, worker counts, snippet
// length, and top-k/suggestion defaults. The Non-goals in spec.md carve features out, not
// this layer — every build and search call still goes through Config.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters of the indexer and scorer.
type Config struct {
	// BM25 parameters (spec.md §4.4).
	K1 float64 `yaml:"k1"`
	B  float64 `yaml:"b"`

	// TitleBoost is added once per query term found in a document's
	// title; a query term that repeats in the query counts each time.
	TitleBoost float64 `yaml:"title_boost"`

	// Proximity boost bands (spec.md §4.4.1), most permissive last.
	ProximityNear float64 `yaml:"proximity_near"` // distance <= n-1
	ProximityMid  float64 `yaml:"proximity_mid"`  // distance <= 2*(n-1)
	ProximityFar  float64 `yaml:"proximity_far"`  // distance <= 5*(n-1)

	// SnippetChars is loaded and validated, but it is not passed to the
	// indexer: DocMeta.Body is always truncated to 500 code points.
	SnippetChars int `yaml:"snippet_chars"`

	// BuildWorkers is the number of goroutines used for both the
	// per-document parse/tokenize pool and the posting-sort pool. Zero
	// means "use runtime.NumCPU()".
	BuildWorkers int `yaml:"build_workers"`

	// DefaultTopK is used by front-ends that don't specify top_k.
	DefaultTopK int `yaml:"default_top_k"`

	// SuggestMaxDistance and SuggestMaxResults are SpellSuggester
	// defaults (spec.md §4.5).
	SuggestMaxDistance int `yaml:"suggest_max_distance"`
	SuggestMaxResults  int `yaml:"suggest_max_results"`
}

// DefaultConfig returns the spec's fixed BM25/proximity constants
// (K1=1.2, B=0.75, title boost 5.0, bands 5.0/2.5/1.0) plus sensible
// operational defaults.
func DefaultConfig() *Config {
	return &Config{
		K1:                 1.2,
		B:                  0.75,
		TitleBoost:         5.0,
		ProximityNear:      5.0,
		ProximityMid:       2.5,
		ProximityFar:       1.0,
		SnippetChars:       500,
		BuildWorkers:       runtime.NumCPU(),
		DefaultTopK:        10,
		SuggestMaxDistance: 2,
		SuggestMaxResults:  5,
	}
}

// Load reads an optional YAML override file on top of DefaultConfig. A
// missing file is not an error — it simply means "use the defaults."
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that would make BM25/proximity math
// meaningless.
func (c *Config) Validate() error {
	if c.K1 < 0 {
		return fmt.Errorf("k1 must be non-negative, got %v", c.K1)
	}
	if c.B < 0 || c.B > 1 {
		return fmt.Errorf("b must be in [0,1], got %v", c.B)
	}
	if c.SnippetChars <= 0 {
		return fmt.Errorf("snippet_chars must be positive, got %d", c.SnippetChars)
	}
	if c.BuildWorkers < 0 {
		return fmt.Errorf("build_workers must be non-negative, got %d", c.BuildWorkers)
	}
	return nil
}

// Workers resolves BuildWorkers to an effective goroutine count.
func (c *Config) Workers() int {
	if c.BuildWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.BuildWorkers
}
