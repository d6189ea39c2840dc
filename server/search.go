package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Swetcha17/recruitment-automation/metrics"
	"github.com/Swetcha17/recruitment-automation/search"
)

type searchResult struct {
	Candidate candidateJSON `json:"candidate"`
	Score     float64       `json:"score"`
}

type searchResponse struct {
	Query         string         `json:"query"`
	Mode          string         `json:"mode"`
	Degraded      bool           `json:"degraded,omitempty"`
	DegradedIndex string         `json:"degradedIndex,omitempty"`
	Count         int            `json:"count"`
	Results       []searchResult `json:"results"`
}

// handleSearch handles GET /api/v1/search. Query parameters: q (required),
// k, mode, semantic_weight, keyword_weight, and the post-ranking filters
// role, min_experience, location, work_auth.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := strings.TrimSpace(query.Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	opts := search.Options{
		K:    s.defaults.DefaultK,
		Mode: search.Mode(s.defaults.Mode),
		Weights: search.Weights{
			Semantic: s.defaults.SemanticWeight,
			Keyword:  s.defaults.KeywordWeight,
		},
	}

	if v := query.Get("k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil || k <= 0 {
			writeError(w, http.StatusBadRequest, "k must be a positive integer")
			return
		}
		opts.K = min(k, s.defaults.MaxK)
	}

	if v := query.Get("mode"); v != "" {
		switch search.Mode(v) {
		case search.ModeHybrid, search.ModeSemantic, search.ModeKeyword:
			opts.Mode = search.Mode(v)
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", v))
			return
		}
	}

	if v := query.Get("semantic_weight"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "semantic_weight must be a number")
			return
		}
		opts.Weights.Semantic = f
	}
	if v := query.Get("keyword_weight"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "keyword_weight must be a number")
			return
		}
		opts.Weights.Keyword = f
	}

	opts.Filters = search.Filters{
		RoleCategory: query.Get("role"),
		Location:     query.Get("location"),
		WorkAuth:     query.Get("work_auth"),
	}
	if v := query.Get("min_experience"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "min_experience must be a number")
			return
		}
		opts.Filters.MinExperience = f
	}

	mode := string(opts.Mode)
	start := time.Now()
	resp, err := s.searcher.Search(r.Context(), q, opts)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(mode, metrics.SearchError).Inc()
		s.handleError(w, err)
		return
	}

	outcome := metrics.SearchOK
	if resp.Degraded {
		outcome = metrics.SearchDegraded
	}
	metrics.SearchesTotal.WithLabelValues(mode, outcome).Inc()
	metrics.SearchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	out := searchResponse{
		Query:         q,
		Mode:          mode,
		Degraded:      resp.Degraded,
		DegradedIndex: resp.DegradedIndex,
		Count:         len(resp.Results),
		Results:       make([]searchResult, 0, len(resp.Results)),
	}
	for _, result := range resp.Results {
		out.Results = append(out.Results, searchResult{
			Candidate: candidateFromCore(result.Profile, false),
			Score:     result.Score,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
