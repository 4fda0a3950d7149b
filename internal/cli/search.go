package cli

import (
	"fmt"
	"strings"

	"github.com/persiafts/engine/internal/config"
	"github.com/persiafts/engine/internal/docindex"
	"github.com/persiafts/engine/internal/querycache"
	"github.com/persiafts/engine/internal/scorer"

	"github.com/spf13/cobra"
)

var searchTopK int

// sharedCache backs repeated searches against the same store within
// one process. It is safe to share across concurrent invocations: the
// underlying Cache is itself concurrency-safe.
var sharedCache = querycache.New(100, 0)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the index store for a query",
	Long: `Tokenizes query the same way documents were indexed, retrieves the
AND-gated candidate set, and ranks it with BM25 plus the title and
proximity boosts.

Examples:
  persiafts search "کتاب خوب"
  persiafts search --top-k 20 "خودرو سریع"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

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

		topK := searchTopK
		if topK <= 0 {
			topK = cfg.DefaultTopK
		}

		params := scorer.Params{
			K1:            cfg.K1,
			B:             cfg.B,
			TitleBoost:    cfg.TitleBoost,
			ProximityNear: cfg.ProximityNear,
			ProximityMid:  cfg.ProximityMid,
			ProximityFar:  cfg.ProximityFar,
		}

		cacheKey := fmt.Sprintf("%s\x00%d", query, topK)
		results, hit := sharedCache.Get(cacheKey)
		if !hit {
			results = scorer.Search(store, query, topK, params)
			sharedCache.Put(cacheKey, results)
		}

		printResults(store, results)
		return nil
	},
}

func printResults(store *docindex.Store, results []scorer.Result) {
	if len(results) == 0 {
		fmt.Println("no results")
		return
	}
	docs := store.Docs()
	for i, r := range results {
		meta := docs[r.DocID]
		fmt.Printf("%2d. [%.3f] %s — %s\n", i+1, r.Score, meta.Title, meta.URL)
	}
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results to return (default from config)")
}
