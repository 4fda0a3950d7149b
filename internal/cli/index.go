package cli

import (
	"fmt"
	"os"

	"github.com/persiafts/engine/internal/buildstats"
	"github.com/persiafts/engine/internal/config"
	"github.com/persiafts/engine/internal/htmlparser"
	"github.com/persiafts/engine/internal/indexer"

	"github.com/spf13/cobra"
)

var indexLimit int

var indexCmd = &cobra.Command{
	Use:   "index [input_dir]",
	Short: "Build an index store from a directory of HTML documents",
	Long: `Walks input_dir recursively, parses each file as HTML, tokenizes its
title and body, and writes the resulting positional inverted index to the
store path (--store).

Examples:
  persiafts index ./corpus
  persiafts index --store my-index.db --limit 5000 ./corpus`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := args[0]

		storePath, _ := cmd.Flags().GetString("store")
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		stats := buildstats.New()
		if err := indexer.BuildIndex(inputDir, storePath, indexLimit, htmlparser.DefaultParser{}, stats, cfg.Workers()); err != nil {
			return fmt.Errorf("building index: %w", err)
		}

		fmt.Fprintf(os.Stdout, "built index at %s (%s)\n", storePath, stats.String())
		for _, pe := range stats.ParseErrors() {
			fmt.Fprintf(os.Stderr, "warning: %v\n", pe)
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().IntVarP(&indexLimit, "limit", "l", 0, "maximum number of files to index (0 = unlimited)")
}
