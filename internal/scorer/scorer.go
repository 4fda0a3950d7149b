// Package scorer implements the query engine: candidate retrieval over
// an AND-gated posting-list intersection, Okapi BM25 scoring, a title
// boost, and a positional proximity boost. The BM25 idf shape mirrors
// the teacher's bm25IDF/fieldBM25 pair, generalized from per-field
// weights down to the single-field positional index this engine uses.
package scorer

import (
	"math"
	"sort"

	"github.com/persiafts/engine/internal/docindex"
	"github.com/persiafts/engine/internal/normalize"
)

// BM25 and boost parameters fixed by the scoring contract. Config can
// override them for experimentation, but Search's default behavior
// uses these.
const (
	DefaultK1 = 1.2
	DefaultB  = 0.75

	TitleBoost = 5.0

	ProximityNear = 5.0
	ProximityMid  = 2.5
	ProximityFar  = 1.0
)

// Result is one ranked hit: a document and its accumulated score.
type Result struct {
	DocID int
	Score float64
}

// Params bundles the tunables Search needs, decoupling this package
// from internal/config.
type Params struct {
	K1            float64
	B             float64
	TitleBoost    float64
	ProximityNear float64
	ProximityMid  float64
	ProximityFar  float64
}

// DefaultParams returns the spec-mandated BM25/boost constants.
func DefaultParams() Params {
	return Params{
		K1:            DefaultK1,
		B:             DefaultB,
		TitleBoost:    TitleBoost,
		ProximityNear: ProximityNear,
		ProximityMid:  ProximityMid,
		ProximityFar:  ProximityFar,
	}
}

// Search returns the top_k (doc_id, score) pairs for query against
// index, ranked highest score first. It is a total function: an empty
// or all-query-terms-absent query returns an empty, non-nil-safe
// slice, never an error.
func Search(index *docindex.Store, query string, topK int, params Params) []Result {
	qterms := normalize.Tokenize(query)
	if len(qterms) == 0 {
		return nil
	}

	candidates, ok := candidateSet(index, qterms)
	if !ok || len(candidates) == 0 {
		return nil
	}

	avgLen := averageLength(index)
	scores := make(map[int]float64, len(candidates))

	for _, t := range qterms {
		postings, _ := index.Postings(t)
		df := len(postings)
		idf := bm25IDF(index.DocCount(), df)

		for _, p := range postings {
			if _, isCandidate := candidates[p.DocID]; !isCandidate {
				continue
			}
			dl := float64(index.Docs()[p.DocID].Length)
			tf := float64(p.TF)
			denom := tf + params.K1*(1-params.B+params.B*dl/maxF(1, avgLen))
			scores[p.DocID] += idf * (tf * (params.K1 + 1)) / denom
		}
	}

	applyTitleBoost(index, candidates, qterms, scores, params.TitleBoost)
	if len(qterms) >= 2 {
		applyProximityBoost(index, candidates, qterms, scores, params)
	}

	results := make([]Result, 0, len(scores))
	for docID, score := range scores {
		results = append(results, Result{DocID: docID, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	if topK >= 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// candidateSet computes the AND-gated intersection of posting-list
// doc_ids across every unique query term. ok is false if any query
// term is absent from the dictionary.
func candidateSet(index *docindex.Store, qterms []string) (map[int]struct{}, bool) {
	seen := make(map[string]bool, len(qterms))
	var unique []string
	for _, t := range qterms {
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}

	var candidates map[int]struct{}
	for _, t := range unique {
		postings, ok := index.Postings(t)
		if !ok {
			return nil, false
		}
		docSet := make(map[int]struct{}, len(postings))
		for _, p := range postings {
			docSet[p.DocID] = struct{}{}
		}
		if candidates == nil {
			candidates = docSet
			continue
		}
		for docID := range candidates {
			if _, found := docSet[docID]; !found {
				delete(candidates, docID)
			}
		}
	}
	return candidates, true
}

func averageLength(index *docindex.Store) float64 {
	docs := index.Docs()
	if len(docs) == 0 {
		return 0
	}
	var total int
	for _, d := range docs {
		total += d.Length
	}
	return float64(total) / float64(len(docs))
}

func bm25IDF(docCount, df int) float64 {
	return math.Log((float64(docCount)-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

func applyTitleBoost(index *docindex.Store, candidates map[int]struct{}, qterms []string, scores map[int]float64, boost float64) {
	for docID := range candidates {
		titleTokens := normalize.Tokenize(index.Docs()[docID].Title)
		titleSet := make(map[string]struct{}, len(titleTokens))
		for _, t := range titleTokens {
			titleSet[t] = struct{}{}
		}

		var hits int
		for _, t := range qterms {
			if _, ok := titleSet[t]; ok {
				hits++
			}
		}
		if hits > 0 {
			scores[docID] += float64(hits) * boost
		}
	}
}

func applyProximityBoost(index *docindex.Store, candidates map[int]struct{}, qterms []string, scores map[int]float64, params Params) {
	n := len(qterms)
	for docID := range candidates {
		var minTotalDist int
		pairFound := false

		for i := 0; i+1 < n; i++ {
			pos1, ok1 := firstPositions(index, qterms[i], docID)
			pos2, ok2 := firstPositions(index, qterms[i+1], docID)
			if !ok1 || !ok2 {
				continue
			}
			dist := bestPairDistance(pos1, pos2)
			minTotalDist += dist
			pairFound = true
		}

		if !pairFound {
			continue
		}
		switch {
		case minTotalDist <= n-1:
			scores[docID] += params.ProximityNear
		case minTotalDist <= 2*(n-1):
			scores[docID] += params.ProximityMid
		case minTotalDist <= 5*(n-1):
			scores[docID] += params.ProximityFar
		}
	}
}

// firstPositions returns the (unique, by invariant) posting's position
// list for term within docID.
func firstPositions(index *docindex.Store, term string, docID int) ([]int, bool) {
	postings, ok := index.Postings(term)
	if !ok {
		return nil, false
	}
	for _, p := range postings {
		if p.DocID == docID {
			return p.Positions, true
		}
	}
	return nil, false
}

func bestPairDistance(a, b []int) int {
	best := -1
	for _, x := range a {
		for _, y := range b {
			d := x - y
			if d < 0 {
				d = -d
			}
			if best == -1 || d < best {
				best = d
			}
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
