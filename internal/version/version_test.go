package version

import (
	"strings"
	"testing"
)

func TestVersionIsSet(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestBuildInfoContainsVersionAndName(t *testing.T) {
	info := BuildInfo()

	if !strings.Contains(info, Version) {
		t.Errorf("BuildInfo() = %q, want it to contain version %q", info, Version)
	}
	if !strings.Contains(info, "persiafts") {
		t.Errorf("BuildInfo() = %q, want it to contain \"persiafts\"", info)
	}
	if !strings.Contains(info, Build) || !strings.Contains(info, GitHash) {
		t.Errorf("BuildInfo() = %q, want it to contain build %q and git hash %q", info, Build, GitHash)
	}
}
