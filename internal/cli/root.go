// Package cli provides the command-line front-end for the persiafts
// engine: index / search / suggest subcommands over the four core
// operations (BuildIndex, Save/Load, Search, SuggestTerms). It is a
// thin consumer of those operations, built with the Cobra framework
// the same way the teacher's root command is.
package cli

import (
	"github.com/persiafts/engine/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "persiafts",
	Short:   "A full-text search engine for mixed Persian/Latin text",
	Version: version.Version,
	Long: `persiafts indexes a directory of HTML documents into a positional
inverted index and serves BM25-ranked searches over it, with Persian-aware
normalization, a title boost, a positional proximity boost, and
Damerau-Levenshtein spelling suggestions.`,
}

// Execute runs the root command and handles all CLI interactions.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)

	rootCmd.PersistentFlags().StringP("store", "s", "index.db", "path to the index store")
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to an optional YAML config file")
}
