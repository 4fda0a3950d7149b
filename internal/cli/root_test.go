package cli

import "testing"

func TestRootCommandHasSubcommands(t *testing.T) {
	expected := []string{"index", "search", "suggest"}

	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	for _, name := range []string{"store", "config"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q not found", name)
		}
	}
}
