// Package suggest implements suggest_terms: dictionary-wide fuzzy
// matching by Damerau-Levenshtein distance, used to propose
// corrections for a mistyped query term. The core DP table is
// generalized from the teacher's LevenshteinDistance (in
// internal/search/enhanced_search.go) to Unicode runes and the
// adjacent-transposition rule.
package suggest

import (
	"math"
	"sort"

	"github.com/persiafts/engine/internal/docindex"
)

// DamerauLevenshtein computes the edit distance between a and b over
// Unicode code points, counting insertion, deletion, substitution, and
// adjacent transposition as cost 1 each.
func DamerauLevenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)

	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	dp := make([][]int, la+1)
	for i := range dp {
		dp[i] = make([]int, lb+1)
		dp[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			best := dp[i-1][j] + 1      // deletion
			if v := dp[i][j-1] + 1; v < best {
				best = v // insertion
			}
			if v := dp[i-1][j-1] + cost; v < best {
				best = v // substitution
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if v := dp[i-2][j-2] + 1; v < best {
					best = v // adjacent transposition
				}
			}
			dp[i][j] = best
		}
	}
	return dp[la][lb]
}

// candidate pairs a dictionary term with its suggestion score.
type candidate struct {
	term  string
	score float64
}

// SuggestTerms scans every term in index's dictionary, keeping those
// within maxDist of token (by DamerauLevenshtein), scores each as
// -3*d + ln(df+1), and returns the top maxSuggestions terms by
// descending score. The scan is linear in dictionary size.
func SuggestTerms(index *docindex.Store, token string, maxDist, maxSuggestions int) []string {
	var candidates []candidate

	for term, postings := range index.Dict() {
		d := DamerauLevenshtein(term, token)
		if d > maxDist {
			continue
		}
		df := len(postings)
		score := -3*float64(d) + math.Log(float64(df)+1)
		candidates = append(candidates, candidate{term: term, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].term < candidates[j].term
	})

	if maxSuggestions >= 0 && len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	terms := make([]string, len(candidates))
	for i, c := range candidates {
		terms[i] = c.term
	}
	return terms
}
