// Package docindex defines the positional inverted index data model
// shared by the indexer and the query engine: terms, postings, document
// metadata, and the frozen Store that ties them together.
package docindex

import "sort"

// Posting records one term's occurrence in one document.
type Posting struct {
	DocID     int
	TF        int
	Positions []int
}

// DocMeta holds the per-document metadata retained after indexing. Body
// is a snippet only — the full body text is not kept.
type DocMeta struct {
	URL    string
	Title  string
	Body   string
	Length int
}

// Store is the frozen, read-only index consumed by the query engine.
// Once returned by Freeze or Load, a Store is never mutated again and
// is safe for unsynchronized concurrent reads.
type Store struct {
	dict     map[string][]Posting
	docs     []DocMeta
	docCount int
}

// Dict returns the term dictionary. Callers must not mutate the
// returned map or its posting slices.
func (s *Store) Dict() map[string][]Posting { return s.dict }

// Docs returns the document table, indexed by doc_id.
func (s *Store) Docs() []DocMeta { return s.docs }

// DocCount returns the number of documents in the store.
func (s *Store) DocCount() int { return s.docCount }

// Postings returns the posting list for term, or nil if absent.
func (s *Store) Postings(term string) ([]Posting, bool) {
	p, ok := s.dict[term]
	return p, ok
}

// Builder accumulates postings and document metadata during a build.
// It is not safe for concurrent use: the assembly step that populates
// it must be single-owner, per the indexer's concurrency model.
type Builder struct {
	dict map[string][]Posting
	docs []DocMeta
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{dict: make(map[string][]Posting)}
}

// AddDocument appends meta as the next doc_id (the builder assigns IDs
// densely in call order) and merges positionsByTerm into the global
// dictionary under that doc_id.
func (b *Builder) AddDocument(meta DocMeta, positionsByTerm map[string][]int) int {
	docID := len(b.docs)
	b.docs = append(b.docs, meta)

	for term, positions := range positionsByTerm {
		b.dict[term] = append(b.dict[term], Posting{
			DocID:     docID,
			TF:        len(positions),
			Positions: positions,
		})
	}
	return docID
}

// Freeze sorts every posting list by doc_id and returns the immutable
// Store. After Freeze, the Builder must not be reused.
func (b *Builder) Freeze() *Store {
	for _, postings := range b.dict {
		sort.Slice(postings, func(i, j int) bool { return postings[i].DocID < postings[j].DocID })
	}
	return &Store{
		dict:     b.dict,
		docs:     b.docs,
		docCount: len(b.docs),
	}
}

// SortPostingsParallel sorts every term's posting list by doc_id,
// distributing the dictionary's terms across a bounded pool of worker
// goroutines. Each goroutine owns a disjoint slice of terms, so no
// synchronization is needed beyond the final join on the done channel.
func (b *Builder) SortPostingsParallel(workers int) {
	if workers < 1 {
		workers = 1
	}
	terms := make([]string, 0, len(b.dict))
	for t := range b.dict {
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		return
	}
	if workers > len(terms) {
		workers = len(terms)
	}

	chunks := splitEvenly(terms, workers)
	done := make(chan struct{}, workers)
	for _, chunk := range chunks {
		chunk := chunk
		go func() {
			defer func() { done <- struct{}{} }()
			for _, t := range chunk {
				postings := b.dict[t]
				sort.Slice(postings, func(i, j int) bool { return postings[i].DocID < postings[j].DocID })
			}
		}()
	}
	for range chunks {
		<-done
	}
}

func splitEvenly(items []string, n int) [][]string {
	chunks := make([][]string, 0, n)
	size := (len(items) + n - 1) / n
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}

// NewStoreForTest builds a Store directly from the given dict/docs,
// bypassing the Builder. Intended for tests that need precise control
// over posting contents.
func NewStoreForTest(dict map[string][]Posting, docs []DocMeta) *Store {
	return &Store{dict: dict, docs: docs, docCount: len(docs)}
}
