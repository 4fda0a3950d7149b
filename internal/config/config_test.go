package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.K1 != 1.2 {
		t.Errorf("K1 = %v, want 1.2", cfg.K1)
	}
	if cfg.B != 0.75 {
		t.Errorf("B = %v, want 0.75", cfg.B)
	}
	if cfg.TitleBoost != 5.0 {
		t.Errorf("TitleBoost = %v, want 5.0", cfg.TitleBoost)
	}
	if cfg.ProximityNear != 5.0 || cfg.ProximityMid != 2.5 || cfg.ProximityFar != 1.0 {
		t.Errorf("proximity bands = %v/%v/%v, want 5.0/2.5/1.0", cfg.ProximityNear, cfg.ProximityMid, cfg.ProximityFar)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate, got: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(os.TempDir(), "no-such-persiafts-config.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file returned error: %v", err)
	}
	if cfg.K1 != DefaultConfig().K1 {
		t.Errorf("expected default K1, got %v", cfg.K1)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.DefaultTopK != DefaultConfig().DefaultTopK {
		t.Errorf("expected default DefaultTopK, got %d", cfg.DefaultTopK)
	}
}

func TestLoadOverridesFromYAML(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "persiafts-config-test")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yaml")
	contents := "k1: 1.5\nb: 0.5\nsnippet_chars: 250\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.K1 != 1.5 {
		t.Errorf("K1 = %v, want 1.5", cfg.K1)
	}
	if cfg.B != 0.5 {
		t.Errorf("B = %v, want 0.5", cfg.B)
	}
	if cfg.SnippetChars != 250 {
		t.Errorf("SnippetChars = %d, want 250", cfg.SnippetChars)
	}
	// Fields absent from the override file keep their defaults.
	if cfg.TitleBoost != DefaultConfig().TitleBoost {
		t.Errorf("TitleBoost = %v, want default %v", cfg.TitleBoost, DefaultConfig().TitleBoost)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []*Config{
		{K1: -1, B: 0.75, SnippetChars: 10},
		{K1: 1.2, B: 1.5, SnippetChars: 10},
		{K1: 1.2, B: 0.75, SnippetChars: 0},
		{K1: 1.2, B: 0.75, SnippetChars: 10, BuildWorkers: -1},
	}
	for i, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error, got nil", i)
		}
	}
}

func TestWorkersFallsBackToNumCPU(t *testing.T) {
	cfg := &Config{BuildWorkers: 0}
	if cfg.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", cfg.Workers())
	}

	cfg2 := &Config{BuildWorkers: 4}
	if cfg2.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", cfg2.Workers())
	}
}
