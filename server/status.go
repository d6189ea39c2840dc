package server

import (
	"net/http"
	"time"
)

type buildStatusJSON struct {
	Stage      string    `json:"stage"`
	State      string    `json:"state"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Documents  int       `json:"documents"`
	Skipped    int       `json:"skipped"`
	Error      string    `json:"error,omitempty"`
}

type buildStatusResponse struct {
	Stages []buildStatusJSON `json:"stages"`
}

// handleBuildStatus handles GET /api/v1/status: the last recorded run of
// every pipeline stage. Stages that never ran are absent.
func (s *Server) handleBuildStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.statuses.ListStatuses(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	out := buildStatusResponse{Stages: make([]buildStatusJSON, 0, len(statuses))}
	for _, status := range statuses {
		out.Stages = append(out.Stages, buildStatusJSON{
			Stage:      status.Stage,
			State:      status.State.String(),
			StartedAt:  status.StartedAt,
			FinishedAt: status.FinishedAt,
			Documents:  status.Documents,
			Skipped:    status.Skipped,
			Error:      status.Error,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleKPI handles GET /api/v1/kpi, computing the report over the
// current pool on every call.
func (s *Server) handleKPI(w http.ResponseWriter, r *http.Request) {
	report, err := s.reporter.Report(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
