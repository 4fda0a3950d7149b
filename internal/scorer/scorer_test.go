package scorer

import (
	"testing"

	"github.com/persiafts/engine/internal/docindex"
	"github.com/persiafts/engine/internal/indexer"
)

// buildThreeDocFixture constructs the store.md §8 end-to-end scenario:
// D0 = ("کتاب خوب", "این یک کتاب خوب است")
// D1 = ("خودرو", "خودرو سریع است")
// D2 = ("کتابها", "مجموعه ای از کتاب ها و نوشته ها")
func buildThreeDocFixture(t *testing.T) *docindex.Store {
	t.Helper()
	docs := []indexer.RawDoc{
		{URL: "d0", Title: "کتاب خوب", Body: "این یک کتاب خوب است"},
		{URL: "d1", Title: "خودرو", Body: "خودرو سریع است"},
		{URL: "d2", Title: "کتابها", Body: "مجموعه ای از کتاب ها و نوشته ها"},
	}
	return indexer.BuildFromDocs(docs)
}

func TestSearchKetabReturnsD0AndD2NotD1(t *testing.T) {
	store := buildThreeDocFixture(t)
	results := Search(store, "کتاب", 10, DefaultParams())

	got := map[int]bool{}
	for _, r := range results {
		got[r.DocID] = true
	}
	if !got[0] {
		t.Error("expected D0 in results")
	}
	if !got[2] {
		t.Error("expected D2 in results")
	}
	if got[1] {
		t.Error("did not expect D1 in results")
	}
}

func TestSearchKetabRanksD0First(t *testing.T) {
	// Both D0 and D2 (title "کتابها" tokenizes to "کتاب") receive the
	// title boost; D0 ranks first because its shorter length gives it the
	// higher BM25 score for the same tf.
	store := buildThreeDocFixture(t)
	results := Search(store, "کتاب", 10, DefaultParams())
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].DocID != 0 {
		t.Errorf("expected D0 ranked first, got DocID=%d", results[0].DocID)
	}
}

func TestSearchTwoTermsANDGate(t *testing.T) {
	store := buildThreeDocFixture(t)
	results := Search(store, "خوب کتاب", 10, DefaultParams())

	if len(results) != 1 || results[0].DocID != 0 {
		t.Fatalf("expected exactly D0, got %+v", results)
	}
}

func TestSearchAbsentTermReturnsEmpty(t *testing.T) {
	store := buildThreeDocFixture(t)
	results := Search(store, "گربه", 10, DefaultParams())
	if len(results) != 0 {
		t.Errorf("expected empty results, got %+v", results)
	}
}

func TestSearchEmptyQueryReturnsEmpty(t *testing.T) {
	store := buildThreeDocFixture(t)
	if results := Search(store, "", 10, DefaultParams()); len(results) != 0 {
		t.Errorf("expected empty results for empty query, got %+v", results)
	}
}

func TestSearchIdempotent(t *testing.T) {
	store := buildThreeDocFixture(t)
	first := Search(store, "کتاب", 10, DefaultParams())
	second := Search(store, "کتاب", 10, DefaultParams())

	if len(first) != len(second) {
		t.Fatalf("result length changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result[%d] changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSearchMonotonicityHigherTFScoresNoLower(t *testing.T) {
	dict := map[string][]docindex.Posting{
		"کلمه": {
			{DocID: 0, TF: 1, Positions: []int{0}},
			{DocID: 1, TF: 3, Positions: []int{0, 1, 2}},
		},
	}
	docs := []docindex.DocMeta{
		{URL: "a", Title: "", Body: "", Length: 5},
		{URL: "b", Title: "", Body: "", Length: 5},
	}
	store := docindex.NewStoreForTest(dict, docs)

	results := Search(store, "کلمه", 10, DefaultParams())
	scoreByDoc := map[int]float64{}
	for _, r := range results {
		scoreByDoc[r.DocID] = r.Score
	}
	if scoreByDoc[1] < scoreByDoc[0] {
		t.Errorf("doc with higher tf scored lower: doc0=%v doc1=%v", scoreByDoc[0], scoreByDoc[1])
	}
}

func TestSearchTopKTruncates(t *testing.T) {
	store := buildThreeDocFixture(t)
	results := Search(store, "کتاب", 1, DefaultParams())
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
}

func TestApplyTitleBoostCountsDuplicateQueryTermsSeparately(t *testing.T) {
	dict := map[string][]docindex.Posting{
		"کتاب": {{DocID: 0, TF: 1, Positions: []int{0}}},
	}
	docs := []docindex.DocMeta{
		{URL: "a", Title: "کتاب", Body: "کتاب", Length: 1},
	}
	store := docindex.NewStoreForTest(dict, docs)
	candidates := map[int]struct{}{0: {}}
	scores := map[int]float64{0: 0}

	applyTitleBoost(store, candidates, []string{"کتاب", "کتاب"}, scores, 5.0)

	if scores[0] != 10.0 {
		t.Errorf("expected duplicate query terms to each count toward the title boost (2*5.0=10.0), got %v", scores[0])
	}
}
