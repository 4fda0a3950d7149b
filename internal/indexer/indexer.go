// Package indexer implements build_index: a bounded worker-pool fan-out
// over a directory of documents, parsing and tokenizing each file
// independently, then a sequential, single-owner assembly step that
// assigns doc_ids deterministically from the original enumeration
// order regardless of which worker finishes first. The job/result
// channel shape follows the teacher's tldr fetcher worker pool,
// generalized from HTTP fetch jobs to on-disk file parse jobs.
package indexer

import (
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/persiafts/engine/internal/buildstats"
	"github.com/persiafts/engine/internal/docindex"
	"github.com/persiafts/engine/internal/ftserrors"
	"github.com/persiafts/engine/internal/htmlparser"
	"github.com/persiafts/engine/internal/normalize"
)

const snippetChars = 500

// RawDoc is a pre-parsed (title, body) pair, used directly by
// BuildFromDocs when callers already hold Page-shaped data (tests, or
// front-ends with their own document source).
type RawDoc struct {
	URL   string
	Title string
	Body  string
}

// docResult is one selected file's outcome, keyed by its position in
// the original enumeration order so the assembly step can consume
// results deterministically no matter which worker produced them.
type docResult struct {
	meta            docindex.DocMeta
	positionsByTerm map[string][]int
}

// BuildIndex walks inputDir, parses and tokenizes up to limit files
// (limit <= 0 means unlimited) using parser, and writes the resulting
// IndexStore to outPath. workers <= 0 falls back to a single worker.
// Filesystem enumeration errors on individual entries are skipped;
// per-file parse errors are swallowed and substituted with an empty
// Page, per the build's error model. Only output-path I/O errors are
// returned.
func BuildIndex(inputDir, outPath string, limit int, parser htmlparser.Parser, stats *buildstats.BuildStats, workers int) error {
	if stats == nil {
		stats = buildstats.New()
	}
	if workers < 1 {
		workers = 1
	}
	stats.Workers.Set(int64(workers))

	paths := enumerate(inputDir, stats)
	selected := selectPrefix(paths, limit)
	stats.Selected.Add(int64(len(selected)))

	results := processParallel(selected, parser, stats, workers)

	builder := docindex.NewBuilder()
	for _, r := range results {
		builder.AddDocument(r.meta, r.positionsByTerm)
	}
	builder.SortPostingsParallel(workers)
	store := builder.Freeze()

	if err := store.Save(outPath); err != nil {
		stats.Finish()
		return ftserrors.NewBuildError("save", outPath, err)
	}
	stats.Finish()
	return nil
}

// enumerate recursively walks dir, collecting every regular file.
// Entries whose metadata cannot be read are skipped silently.
func enumerate(dir string, stats *buildstats.BuildStats) []string {
	var paths []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, non-fatal
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		stats.Enumerated.Inc()
		paths = append(paths, path)
		return nil
	})
	return paths
}

// selectPrefix truncates paths to the first min(limit, len(paths))
// entries. limit <= 0 means unlimited.
func selectPrefix(paths []string, limit int) []string {
	if limit <= 0 || limit >= len(paths) {
		return paths
	}
	return paths[:limit]
}

// processParallel parses and tokenizes each selected path using a
// bounded pool of workers, returning results ordered by the original
// enumeration index (selected[i] always maps to results[i]), never by
// completion order.
func processParallel(selected []string, parser htmlparser.Parser, stats *buildstats.BuildStats, workers int) []docResult {
	results := make([]docResult, len(selected))
	if len(selected) == 0 {
		return results
	}
	if workers > len(selected) {
		workers = len(selected)
	}

	type job struct {
		index int
		path  string
	}
	jobs := make(chan job, len(selected))
	done := make(chan struct{}, workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := range jobs {
				results[j.index] = processOne(j.path, parser, stats)
			}
		}()
	}

	for i, path := range selected {
		jobs <- job{index: i, path: path}
	}
	close(jobs)

	for i := 0; i < workers; i++ {
		<-done
	}
	return results
}

func processOne(path string, parser htmlparser.Parser, stats *buildstats.BuildStats) docResult {
	page, err := parser.ParseFile(path)
	if err != nil {
		stats.ParseFailures.Inc()
		stats.RecordParseError(ftserrors.NewParseError(path, err))
		page = htmlparser.Page{URL: path}
	} else {
		stats.Parsed.Inc()
	}
	return buildDocResult(page.URL, page.Title, page.Body)
}

func buildDocResult(url, title, body string) docResult {
	titleTokens := normalize.Tokenize(title)
	bodyTokens := normalize.Tokenize(body)

	allTokens := make([]string, 0, len(titleTokens)+len(bodyTokens))
	allTokens = append(allTokens, titleTokens...)
	allTokens = append(allTokens, bodyTokens...)

	positionsByTerm := make(map[string][]int)
	for pos, term := range allTokens {
		positionsByTerm[term] = append(positionsByTerm[term], pos)
	}

	meta := docindex.DocMeta{
		URL:    url,
		Title:  title,
		Body:   snippet(body, snippetChars),
		Length: len(allTokens),
	}
	return docResult{meta: meta, positionsByTerm: positionsByTerm}
}

// snippet truncates s to at most n code points (not bytes).
func snippet(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// BuildFromDocs builds a frozen Store directly from pre-parsed
// (title, body) pairs, bypassing both filesystem enumeration and HTML
// parsing. Doc IDs are assigned in slice order. Intended for tests and
// for front-ends that already hold Page-shaped data.
func BuildFromDocs(docs []RawDoc) *docindex.Store {
	builder := docindex.NewBuilder()
	for _, d := range docs {
		r := buildDocResult(d.URL, d.Title, d.Body)
		builder.AddDocument(r.meta, r.positionsByTerm)
	}
	builder.SortPostingsParallel(1)
	return builder.Freeze()
}
