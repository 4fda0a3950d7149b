package cli

import (
	"fmt"

	"github.com/persiafts/engine/internal/config"
	"github.com/persiafts/engine/internal/docindex"
	"github.com/persiafts/engine/internal/suggest"

	"github.com/spf13/cobra"
)

var (
	suggestMaxDist    int
	suggestMaxResults int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [token]",
	Short: "Suggest dictionary terms close to a mistyped token",
	Long: `Scans every term in the index's dictionary and returns the closest
matches by Damerau-Levenshtein distance, scored by -3*distance + ln(df+1).

Examples:
  persiafts suggest کتبا
  persiafts suggest --max-dist 1 --max-results 3 کتبا`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]

		storePath, _ := cmd.Flags().GetString("store")
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err := docindex.Load(storePath)
		if err != nil {
			return fmt.Errorf("loading store: %w", err)
		}

		maxDist := suggestMaxDist
		if maxDist <= 0 {
			maxDist = cfg.SuggestMaxDistance
		}
		maxResults := suggestMaxResults
		if maxResults <= 0 {
			maxResults = cfg.SuggestMaxResults
		}

		terms := suggest.SuggestTerms(store, token, maxDist, maxResults)
		if len(terms) == 0 {
			fmt.Println("no suggestions")
			return nil
		}
		for _, t := range terms {
			fmt.Println(t)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVar(&suggestMaxDist, "max-dist", 0, "maximum edit distance (default from config)")
	suggestCmd.Flags().IntVar(&suggestMaxResults, "max-results", 0, "maximum number of suggestions (default from config)")
}
