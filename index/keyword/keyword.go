// Package keyword implements the lexical half of candidate retrieval: an
// inverted index over candidate search text with BM25 ranking, positional
// phrase matching and prefix expansion.
//
// Postings live in Badger under versioned key prefixes. A build writes the
// new version completely, flips a pointer key, then drops superseded
// versions, so concurrent readers always see one consistent index and an
// interrupted build leaves the previous version untouched.
package keyword

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/index"
	"github.com/Swetcha17/recruitment-automation/storage/badger"
)

// Index ranks candidates by lexical relevance. Safe for concurrent use;
// Build publishes atomically and never blocks Search.
type Index struct {
	backend *badger.Backend
	logger  *slog.Logger
	snap    atomic.Pointer[snapshot]
}

var _ index.Index = (*Index)(nil)

// New creates a keyword index on the given backend and restores the last
// published version, if any.
func New(backend *badger.Backend) (*Index, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	idx := &Index{
		backend: backend,
		logger:  slog.Default().With("component", "keyword-index"),
	}
	if err := idx.loadCurrent(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (i *Index) loadCurrent() error {
	version, err := readCurrentVersion(i.backend)
	if err != nil {
		return err
	}
	if version == "" {
		return nil
	}
	snap, err := loadVersion(i.backend, version)
	if err != nil {
		return fmt.Errorf("failed to load keyword version %s: %w", version, err)
	}
	i.snap.Store(snap)
	i.logger.Info("keyword index loaded",
		"version", version,
		"documents", snap.docs,
		"terms", len(snap.terms))
	return nil
}

// Build replaces the index contents with the given corpus. Documents whose
// search text yields no tokens are skipped with a warning and counted in the
// returned BuildInfo. Building the same corpus twice yields the same ranked
// results.
func (i *Index) Build(ctx context.Context, docs []*core.CandidateProfile) (index.BuildInfo, error) {
	start := time.Now()

	// Index in Id order so every posting list comes out sorted by Doc.
	sorted := slices.SortedFunc(slices.Values(docs), func(a, b *core.CandidateProfile) int {
		return cmp.Compare(a.Id, b.Id)
	})

	terms := make(map[string][]posting)
	docLens := make(map[core.ID]int)
	totalLen := 0
	skipped := 0
	for _, doc := range sorted {
		if err := ctx.Err(); err != nil {
			return index.BuildInfo{}, err
		}
		tokens := Tokenize(doc.SearchText())
		if len(tokens) == 0 {
			skipped++
			i.logger.Warn("skipping document with no indexable tokens",
				"id", doc.Id,
				"source", doc.SourceFile)
			continue
		}
		docLens[doc.Id] = len(tokens)
		totalLen += len(tokens)
		for _, tok := range tokens {
			list := terms[tok.Term]
			if n := len(list); n > 0 && list[n-1].Doc == doc.Id {
				list[n-1].Frequency++
				list[n-1].Positions = append(list[n-1].Positions, tok.Position)
			} else {
				terms[tok.Term] = append(list, posting{
					Doc:       doc.Id,
					Frequency: 1,
					Positions: []int{tok.Position},
				})
			}
		}
	}

	meta := indexMeta{
		Documents:   len(docLens),
		TotalLength: totalLen,
		BuiltAt:     time.Now().UTC(),
	}
	version := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := writeVersion(i.backend, version, terms, docLens, meta); err != nil {
		return index.BuildInfo{}, err
	}
	if err := setCurrent(i.backend, version); err != nil {
		return index.BuildInfo{}, fmt.Errorf("failed to publish keyword version %s: %w", version, err)
	}
	if err := dropOldVersions(i.backend, version); err != nil {
		// The new version is live; stale keys only cost space and the next
		// build retries the sweep.
		i.logger.Warn("failed to drop old keyword versions", "error", err)
	}

	i.snap.Store(newSnapshot(terms, docLens, meta))
	i.logger.Info("keyword index built",
		"version", version,
		"documents", meta.Documents,
		"terms", len(terms),
		"skipped", skipped,
		"elapsed", time.Since(start))
	return index.BuildInfo{Documents: meta.Documents, Skipped: skipped, BuiltAt: meta.BuiltAt}, nil
}

// Search returns the top k documents for the query by BM25 score descending,
// ties by Id ascending. Returns index.ErrEmptyIndex before the first
// successful build. A query with no recognizable terms returns no hits.
func (i *Index) Search(ctx context.Context, query string, k int) ([]index.Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("keyword: k must be positive, got %d", k)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := i.snap.Load()
	if snap == nil || snap.docs == 0 {
		return nil, index.ErrEmptyIndex
	}
	plan := parseQuery(query)
	if plan.empty() {
		return nil, nil
	}
	return snap.search(plan, k), nil
}

// Documents reports the size of the current snapshot.
func (i *Index) Documents() int {
	if snap := i.snap.Load(); snap != nil {
		return snap.docs
	}
	return 0
}

// BuiltAt reports when the current snapshot was built, zero before the
// first build.
func (i *Index) BuiltAt() time.Time {
	if snap := i.snap.Load(); snap != nil {
		return snap.builtAt
	}
	return time.Time{}
}
