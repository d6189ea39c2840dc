// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Swetcha17/recruitment-automation/config"
	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/index"
	"github.com/Swetcha17/recruitment-automation/kpi"
	"github.com/Swetcha17/recruitment-automation/metrics"
	"github.com/Swetcha17/recruitment-automation/search"
	"github.com/Swetcha17/recruitment-automation/storage"
	"github.com/Swetcha17/recruitment-automation/vacancy"
)

// Server is the HTTP API over the recruitment system.
type Server struct {
	searcher  *search.Searcher
	manager   *vacancy.Manager
	reporter  *kpi.Reporter
	profiles  storage.ProfileRepository
	vacancies storage.VacancyRepository
	statuses  storage.StatusRepository
	defaults  config.SearchConfig
	logger    *slog.Logger
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server) error

// WithSearchDefaults sets the defaults applied to search requests that do
// not specify k, mode or weights. Without it the built-in config defaults
// apply.
func WithSearchDefaults(defaults config.SearchConfig) Option {
	return func(s *Server) error {
		s.defaults = defaults
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates the API server over the given services and repositories.
func New(
	searcher *search.Searcher,
	manager *vacancy.Manager,
	reporter *kpi.Reporter,
	profiles storage.ProfileRepository,
	vacancies storage.VacancyRepository,
	statuses storage.StatusRepository,
	opts ...Option,
) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if manager == nil {
		return nil, ErrVacancyManagerRequired
	}
	if reporter == nil {
		return nil, ErrReporterRequired
	}
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if vacancies == nil {
		return nil, ErrVacancyRepositoryRequired
	}
	if statuses == nil {
		return nil, ErrStatusRepositoryRequired
	}

	s := &Server{
		searcher:  searcher,
		manager:   manager,
		reporter:  reporter,
		profiles:  profiles,
		vacancies: vacancies,
		statuses:  statuses,
		defaults:  config.Default().Search,
		logger:    slog.Default().With("component", "http-server"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.router = s.routes()
	return s, nil
}

// Handler returns the routed http.Handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/candidates", s.handleListCandidates)
		r.Get("/candidates/{id}", s.handleGetCandidate)
		r.Get("/vacancies", s.handleListVacancies)
		r.Post("/vacancies", s.handleCreateVacancy)
		r.Get("/vacancies/{id}", s.handleGetVacancy)
		r.Patch("/vacancies/{id}", s.handleUpdateVacancy)
		r.Get("/vacancies/{id}/matches", s.handleMatches)
		r.Post("/vacancies/{id}/assign", s.handleAssign)
		r.Get("/status", s.handleBuildStatus)
		r.Get("/kpi", s.handleKPI)
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recoverer turns panics into JSON 500 responses instead of chi's plain
// text stack dump.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				s.logger.Error("panic recovered", "panic", rvr, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one canonical log line per request and propagates
// X-Request-ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := chimiddleware.GetReqID(r.Context())
		if requestID != "" {
			w.Header().Set("X-Request-ID", requestID)
		}

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
			"bytes", ww.BytesWritten(),
			"request_id", requestID,
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps domain sentinels to HTTP status codes. Anything
// unmatched is an internal error.
var errorStatus = []struct {
	sentinel error
	status   int
}{
	{storage.ErrNotFound, http.StatusNotFound},
	{index.ErrEmptyIndex, http.StatusConflict},
	{vacancy.ErrAlreadyAssigned, http.StatusConflict},
	{vacancy.ErrRoleCategoryRequired, http.StatusBadRequest},
	{vacancy.ErrInvalidStatus, http.StatusBadRequest},
	{vacancy.ErrInvalidPriority, http.StatusBadRequest},
	{core.ErrInvalidVacancy, http.StatusBadRequest},
	{core.ErrInvalidVacancyStatus, http.StatusBadRequest},
	{core.ErrInvalidVacancyPriority, http.StatusBadRequest},
	{search.ErrInvalidWeights, http.StatusBadRequest},
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.sentinel) {
			writeError(w, m.status, err.Error())
			return
		}
	}
	s.logger.Error("internal error", "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
