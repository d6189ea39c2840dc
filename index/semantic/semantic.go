// Package semantic implements the vector half of the hybrid candidate
// search: an embedding index over candidate profiles with cosine ranking,
// persisted as self-contained segment files.
//
// By default each build fits a TF-IDF vectorizer on the corpus and stores
// the fitted model inside the segment, so the index is fully local and a
// reopened index embeds queries exactly the way it embedded the rows. An
// external OpenAI-compatible embedder can be injected instead.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/embed"
	"github.com/Swetcha17/recruitment-automation/embed/tfidf"
	"github.com/Swetcha17/recruitment-automation/index"
)

// Index is the semantic candidate index. Queries run against an immutable
// snapshot swapped atomically by Build, so searching is always safe while a
// rebuild is in progress.
type Index struct {
	dir       string         // empty keeps the index memory-only
	embedder  embed.Embedder // nil fits a TF-IDF model on the corpus each build
	dims      int
	minTokens int
	logger    *slog.Logger
	snap      atomic.Pointer[snapshot]
}

// Option configures an Index.
type Option func(*Index)

// WithEmbedder switches the index to an external embedding provider.
// Without it, every build fits a deterministic TF-IDF model on the corpus.
func WithEmbedder(e embed.Embedder) Option {
	return func(i *Index) {
		i.embedder = e
	}
}

// WithDimensions caps the fitted TF-IDF vocabulary size.
// Default is 384. Ignored for external embedders, which fix their own size.
func WithDimensions(dims int) Option {
	return func(i *Index) {
		if dims > 0 {
			i.dims = dims
		}
	}
}

// WithMinTokens sets the minimum whitespace-token count below which a
// document is skipped with a warning instead of being embedded. Default is 3.
func WithMinTokens(n int) Option {
	return func(i *Index) {
		if n > 0 {
			i.minTokens = n
		}
	}
}

// New opens a semantic index rooted at dir and loads the segment named by
// the CURRENT pointer when one exists. An empty dir keeps the index
// memory-only, which tests rely on.
func New(dir string, opts ...Option) (*Index, error) {
	i := &Index{
		dir:       dir,
		dims:      384,
		minTokens: 3,
		logger:    slog.Default().With("component", "semantic-index"),
	}
	for _, opt := range opts {
		opt(i)
	}
	if dir == "" {
		return i, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create semantic index directory: %w", err)
	}
	if err := i.loadCurrent(); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *Index) loadCurrent() error {
	name, err := readCurrent(i.dir)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(i.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read segment %s: %w", name, err)
	}
	dec, err := decodeSegment(data)
	if err != nil {
		return err
	}

	var querier embed.Embedder
	var model []byte
	switch dec.mode {
	case modeTFIDF:
		if len(dec.model) > 0 {
			fitted := &tfidf.Vectorizer{}
			if err := fitted.UnmarshalBinary(dec.model); err != nil {
				return fmt.Errorf("failed to restore vectorizer from segment %s: %w", name, err)
			}
			querier = fitted
			model = dec.model
		}
	case modeExternal:
		if i.embedder == nil {
			return ErrExternalEmbedderRequired
		}
		querier = i.embedder
	}

	i.snap.Store(newSnapshot(dec.ids, dec.hashes, dec.vecs, querier, model))
	i.logger.Info("semantic index loaded", "segment", name, "documents", len(dec.ids), "dims", dec.dims)
	return nil
}

// Build embeds every document's searchable text and publishes a fresh
// snapshot, both in memory and as a new segment file. Documents below the
// minimum token count are skipped with a warning and counted in the
// returned BuildInfo. Building the same corpus twice yields the same
// ranking behavior.
func (i *Index) Build(ctx context.Context, docs []*core.CandidateProfile) (index.BuildInfo, error) {
	start := time.Now()

	skipped := 0
	kept := make([]*core.CandidateProfile, 0, len(docs))
	for _, doc := range docs {
		if n := len(strings.Fields(doc.SearchText())); n < i.minTokens {
			i.logger.Warn("skipping document with too little text",
				"id", doc.Id, "source", doc.SourceFile, "tokens", n)
			skipped++
			continue
		}
		kept = append(kept, doc)
	}
	sort.Slice(kept, func(a, b int) bool { return kept[a].Id < kept[b].Id })

	ids := make([]core.ID, len(kept))
	hashes := make([]uint64, len(kept))
	texts := make([]string, len(kept))
	for row, doc := range kept {
		ids[row] = doc.Id
		hashes[row] = doc.ContentHash
		if hashes[row] == 0 {
			hashes[row] = core.HashContent(doc.ResumeText)
		}
		texts[row] = doc.SearchText()
	}

	mode := modeTFIDF
	if i.embedder != nil {
		mode = modeExternal
	}

	var (
		vecs    [][]float32
		querier embed.Embedder
		model   []byte
	)
	switch {
	case len(kept) == 0:
		// Publish an empty snapshot; queries report ErrEmptyIndex.
	case mode == modeExternal:
		raw, err := i.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return index.BuildInfo{}, fmt.Errorf("failed to embed corpus: %w", err)
		}
		if len(raw) != len(texts) {
			return index.BuildInfo{}, fmt.Errorf("semantic: embedding count mismatch: expected %d, got %d", len(texts), len(raw))
		}
		vecs = make([][]float32, len(raw))
		for row := range raw {
			vecs[row] = embed.Normalize(raw[row])
			if len(vecs[row]) != len(vecs[0]) {
				return index.BuildInfo{}, fmt.Errorf("semantic: inconsistent embedding dims %d vs %d", len(vecs[row]), len(vecs[0]))
			}
		}
		querier = i.embedder
	default:
		fitted, err := tfidf.Fit(texts, i.dims)
		switch {
		case errors.Is(err, tfidf.ErrEmptyCorpus):
			i.logger.Warn("corpus has no indexable vocabulary, publishing empty index", "documents", len(kept))
			skipped += len(kept)
			ids, hashes = nil, nil
		case err != nil:
			return index.BuildInfo{}, err
		default:
			vecs, err = fitted.EmbedTexts(ctx, texts)
			if err != nil {
				return index.BuildInfo{}, err
			}
			model, err = fitted.MarshalBinary()
			if err != nil {
				return index.BuildInfo{}, err
			}
			querier = fitted
		}
	}

	if err := ctx.Err(); err != nil {
		return index.BuildInfo{}, err
	}

	snap := newSnapshot(ids, hashes, vecs, querier, model)
	if i.dir != "" {
		data := encodeSegment(mode, model, snap.dims, ids, hashes, vecs)
		name, err := writeSegment(i.dir, data)
		if err != nil {
			return index.BuildInfo{}, err
		}
		cleanupSegments(i.dir, name, i.logger)
	}
	i.snap.Store(snap)

	info := index.BuildInfo{Documents: len(ids), Skipped: skipped, BuiltAt: snap.builtAt}
	i.logger.Info("semantic index built",
		"documents", info.Documents, "skipped", skipped, "dims", snap.dims, "elapsed", time.Since(start))
	return info, nil
}

// Search returns up to k profiles nearest to the query text by cosine
// similarity, scores normalized to [0,1] via (cos+1)/2, ties broken by Id
// ascending. Returns index.ErrEmptyIndex before the first successful build.
func (i *Index) Search(ctx context.Context, query string, k int) ([]index.Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("semantic: k must be positive, got %d", k)
	}
	s := i.snap.Load()
	if s == nil || len(s.ids) == 0 {
		return nil, index.ErrEmptyIndex
	}
	q, err := s.querier.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(q) != s.dims {
		return nil, fmt.Errorf("semantic: query dims %d do not match index dims %d, rebuild the index", len(q), s.dims)
	}
	return s.search(q, k), nil
}

// Stale reports the Ids of documents that are missing from the current
// snapshot or whose resume text changed since it was built, sorted
// ascending. With no snapshot every document is stale.
func (i *Index) Stale(docs []*core.CandidateProfile) []core.ID {
	indexed := make(map[core.ID]uint64)
	if s := i.snap.Load(); s != nil {
		for row, id := range s.ids {
			indexed[id] = s.hashes[row]
		}
	}
	var stale []core.ID
	for _, doc := range docs {
		h, ok := indexed[doc.Id]
		if !ok || h != doc.ContentHash {
			stale = append(stale, doc.Id)
		}
	}
	slices.Sort(stale)
	return stale
}

// Documents returns the number of documents in the current snapshot.
func (i *Index) Documents() int {
	s := i.snap.Load()
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// BuiltAt reports when the current snapshot was built, zero before the
// first build.
func (i *Index) BuiltAt() time.Time {
	s := i.snap.Load()
	if s == nil {
		return time.Time{}
	}
	return s.builtAt
}
