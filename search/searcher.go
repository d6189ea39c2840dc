package search

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/index"
	"github.com/Swetcha17/recruitment-automation/storage"
)

// overfetchFactor widens the sub-index queries beyond k so that fusion,
// hydration, and filtering still have enough candidates to fill k results.
const overfetchFactor = 3

// Mode selects which index family serves a query.
type Mode string

const (
	// ModeHybrid fuses the semantic and keyword rankings. The default.
	ModeHybrid Mode = "hybrid"

	// ModeSemantic serves the raw vector-index ranking.
	ModeSemantic Mode = "semantic"

	// ModeKeyword serves the raw BM25 ranking.
	ModeKeyword Mode = "keyword"
)

// Weights balances the two indexes during hybrid fusion. Only the ratio
// matters: the pair is normalized to sum to one. Leaving both zero selects
// the default even split.
type Weights struct {
	Semantic float64
	Keyword  float64
}

func (w Weights) normalize() (semantic, keyword float64, err error) {
	if w.Semantic < 0 || w.Keyword < 0 {
		return 0, 0, ErrInvalidWeights
	}
	total := w.Semantic + w.Keyword
	if total == 0 {
		return 0.5, 0.5, nil
	}
	return w.Semantic / total, w.Keyword / total, nil
}

// Filters narrows results after ranking. Zero values match everything.
type Filters struct {
	RoleCategory  string  // exact match, case-insensitive
	MinExperience float64 // minimum years of experience
	Location      string  // substring match, case-insensitive
	WorkAuth      string  // exact match, case-insensitive
}

// Match reports whether the profile passes every set filter.
func (f Filters) Match(profile *core.CandidateProfile) bool {
	if f.RoleCategory != "" && !strings.EqualFold(f.RoleCategory, profile.RoleCategory) {
		return false
	}
	if profile.ExperienceYears < f.MinExperience {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(profile.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.WorkAuth != "" && !strings.EqualFold(f.WorkAuth, profile.WorkAuth) {
		return false
	}
	return true
}

// Options configures a single Search call.
type Options struct {
	// K caps the number of results. Required.
	K int

	// Mode defaults to ModeHybrid.
	Mode Mode

	// Weights is consulted in hybrid mode only.
	Weights Weights

	// Filters is applied after ranking, before the cut to K.
	Filters Filters

	// Monitor receives callbacks at each stage of the search. Optional.
	Monitor SearchMonitor
}

// Result is one ranked candidate.
type Result struct {
	Profile *core.CandidateProfile
	Score   float64
}

// Response carries the ranked results plus how they were produced.
type Response struct {
	Results []*Result

	// Degraded is set when a hybrid search served results from a single
	// index because the other was empty. DegradedIndex names the empty one.
	Degraded      bool
	DegradedIndex string
}

// Searcher provides hybrid semantic and keyword search over candidate profiles.
type Searcher struct {
	profiles storage.ProfileRepository
	semantic index.Index
	keyword  index.Index
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	profiles storage.ProfileRepository,
	semantic index.Index,
	keyword index.Index,
	opts ...Option,
) (*Searcher, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if semantic == nil {
		return nil, ErrSemanticIndexRequired
	}
	if keyword == nil {
		return nil, ErrKeywordIndexRequired
	}

	s := &Searcher{
		profiles: profiles,
		semantic: semantic,
		keyword:  keyword,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs the query and returns up to opts.K candidates, best first.
// Hybrid mode fuses both indexes; the single modes pass one index's raw
// ranking through. Returns index.ErrEmptyIndex when no serving index has
// any documents.
func (s *Searcher) Search(ctx context.Context, query string, opts Options) (*Response, error) {
	if opts.K <= 0 {
		return nil, fmt.Errorf("search: k must be positive, got %d", opts.K)
	}

	monitor := opts.Monitor
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query, opts)

	switch opts.Mode {
	case "", ModeHybrid:
		return s.searchHybrid(ctx, query, opts, monitor)
	case ModeSemantic, ModeKeyword:
		return s.searchSingle(ctx, opts.Mode, query, opts, monitor)
	default:
		return nil, fmt.Errorf("search: unknown mode %q", opts.Mode)
	}
}

func (s *Searcher) searchHybrid(ctx context.Context, query string, opts Options, monitor SearchMonitor) (*Response, error) {
	wSemantic, wKeyword, err := opts.Weights.normalize()
	if err != nil {
		return nil, err
	}

	// 1. Query both indexes concurrently. An empty index is survivable as
	// long as the other side answers; any other failure aborts the search.
	fetch := overfetchFactor * opts.K
	var semanticHits, keywordHits []index.Hit
	var semanticErr, keywordErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		semanticHits, semanticErr = s.semantic.Search(gctx, query, fetch)
		if semanticErr != nil && !errors.Is(semanticErr, index.ErrEmptyIndex) {
			return semanticErr
		}
		return nil
	})
	g.Go(func() error {
		keywordHits, keywordErr = s.keyword.Search(gctx, query, fetch)
		if keywordErr != nil && !errors.Is(keywordErr, index.ErrEmptyIndex) {
			return keywordErr
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("error querying candidate indexes", "query", query, "err", err)
		return nil, err
	}
	if semanticErr != nil && keywordErr != nil {
		return nil, index.ErrEmptyIndex
	}
	monitor.AfterSemanticSearch(semanticHits)
	monitor.AfterKeywordSearch(keywordHits)

	// 2. When exactly one index is empty, the surviving ranking gets full
	// weight and the response is flagged.
	degraded := false
	degradedIndex := ""
	switch {
	case semanticErr != nil:
		degraded, degradedIndex = true, "semantic"
		wSemantic, wKeyword = 0, 1
		s.logger.Warn("semantic index is empty, serving keyword results only", "query", query)
	case keywordErr != nil:
		degraded, degradedIndex = true, "keyword"
		wSemantic, wKeyword = 1, 0
		s.logger.Warn("keyword index is empty, serving semantic results only", "query", query)
	}

	// 3. Fuse and order: score descending, ties by id ascending.
	fused := fuse(semanticHits, keywordHits, wSemantic, wKeyword)
	monitor.AfterFusion(fused)

	ordered := make([]index.Hit, 0, len(fused))
	for id, score := range fused {
		ordered = append(ordered, index.Hit{Id: id, Score: score})
	}
	slices.SortFunc(ordered, func(a, b index.Hit) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Id, b.Id)
	})

	return s.finish(ctx, ordered, opts, monitor, degraded, degradedIndex)
}

func (s *Searcher) searchSingle(ctx context.Context, mode Mode, query string, opts Options, monitor SearchMonitor) (*Response, error) {
	idx := s.semantic
	if mode == ModeKeyword {
		idx = s.keyword
	}

	hits, err := idx.Search(ctx, query, overfetchFactor*opts.K)
	if err != nil {
		if !errors.Is(err, index.ErrEmptyIndex) {
			s.logger.Error("error querying candidate index", "mode", mode, "query", query, "err", err)
		}
		return nil, err
	}
	if mode == ModeKeyword {
		monitor.AfterKeywordSearch(hits)
	} else {
		monitor.AfterSemanticSearch(hits)
	}

	return s.finish(ctx, hits, opts, monitor, false, "")
}

// finish hydrates the ordered hits from the profile store, applies the
// filters, and cuts the list to opts.K.
func (s *Searcher) finish(ctx context.Context, ordered []index.Hit, opts Options, monitor SearchMonitor, degraded bool, degradedIndex string) (*Response, error) {
	ids := make([]core.ID, len(ordered))
	for i, hit := range ordered {
		ids[i] = hit.Id
	}

	profiles, err := s.profiles.GetProfiles(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving candidate profiles", "profileCount", len(ids), "err", err)
		return nil, err
	}
	monitor.AfterProfileRetrieval(profiles)

	byId := make(map[core.ID]*core.CandidateProfile, len(profiles))
	for _, profile := range profiles {
		byId[profile.Id] = profile
	}

	results := make([]*Result, 0, min(opts.K, len(ordered)))
	for _, hit := range ordered {
		profile := byId[hit.Id]
		if profile == nil {
			// Deleted since the last index build.
			continue
		}
		if !opts.Filters.Match(profile) {
			continue
		}
		results = append(results, &Result{Profile: profile, Score: hit.Score})
		if len(results) == opts.K {
			break
		}
	}

	monitor.Finish(results)
	return &Response{Results: results, Degraded: degraded, DegradedIndex: degradedIndex}, nil
}

// fuse min-max normalizes each hit list and combines them by weighted sum.
// A candidate absent from one list contributes zero on that side.
func fuse(semanticHits, keywordHits []index.Hit, wSemantic, wKeyword float64) map[core.ID]float64 {
	fused := make(map[core.ID]float64, len(semanticHits)+len(keywordHits))
	for id, score := range minmax(semanticHits) {
		fused[id] += wSemantic * score
	}
	for id, score := range minmax(keywordHits) {
		fused[id] += wKeyword * score
	}
	return fused
}

// minmax rescales the scores of one hit list to [0, 1]. When every score is
// identical the whole list maps to 1, so a lone hit is never zeroed out.
func minmax(hits []index.Hit) map[core.ID]float64 {
	scaled := make(map[core.ID]float64, len(hits))
	if len(hits) == 0 {
		return scaled
	}
	lo, hi := hits[0].Score, hits[0].Score
	for _, hit := range hits[1:] {
		lo = min(lo, hit.Score)
		hi = max(hi, hit.Score)
	}
	for _, hit := range hits {
		if hi == lo {
			scaled[hit.Id] = 1
		} else {
			scaled[hit.Id] = (hit.Score - lo) / (hi - lo)
		}
	}
	return scaled
}
