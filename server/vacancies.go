package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/vacancy"
)

// vacancyJSON is the wire shape of a vacancy. Status and priority travel
// as their display names, the same strings PATCH accepts.
type vacancyJSON struct {
	Id            string    `json:"id"`
	Title         string    `json:"title"`
	RoleCategory  string    `json:"roleCategory"`
	Description   string    `json:"description,omitempty"`
	Skills        []string  `json:"skills,omitempty"`
	MinExperience float64   `json:"minExperience"`
	Location      string    `json:"location,omitempty"`
	WorkAuth      string    `json:"workAuth,omitempty"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	CandidateIds  []string  `json:"candidateIds,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func vacancyFromCore(v *core.Vacancy) vacancyJSON {
	out := vacancyJSON{
		Id:            v.Id,
		Title:         v.Title,
		RoleCategory:  v.RoleCategory,
		Description:   v.Description,
		Skills:        v.Skills,
		MinExperience: v.MinExperience,
		Location:      v.Location,
		WorkAuth:      v.WorkAuth,
		Status:        v.Status.String(),
		Priority:      v.Priority.String(),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	for _, id := range v.CandidateIds {
		out.CandidateIds = append(out.CandidateIds, strconv.FormatUint(uint64(id), 10))
	}
	return out
}

type vacancyListResponse struct {
	Count     int           `json:"count"`
	Vacancies []vacancyJSON `json:"vacancies"`
}

// handleListVacancies handles GET /api/v1/vacancies.
func (s *Server) handleListVacancies(w http.ResponseWriter, r *http.Request) {
	vacancies, err := s.vacancies.ListVacancies(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	out := vacancyListResponse{
		Count:     len(vacancies),
		Vacancies: make([]vacancyJSON, 0, len(vacancies)),
	}
	for _, v := range vacancies {
		out.Vacancies = append(out.Vacancies, vacancyFromCore(v))
	}
	writeJSON(w, http.StatusOK, out)
}

type createVacancyRequest struct {
	Title         string   `json:"title"`
	RoleCategory  string   `json:"roleCategory"`
	Description   string   `json:"description"`
	Skills        []string `json:"skills"`
	MinExperience float64  `json:"minExperience"`
	Location      string   `json:"location"`
	WorkAuth      string   `json:"workAuth"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
}

// handleCreateVacancy handles POST /api/v1/vacancies.
func (s *Server) handleCreateVacancy(w http.ResponseWriter, r *http.Request) {
	var req createVacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	v := &core.Vacancy{
		Title:         req.Title,
		RoleCategory:  req.RoleCategory,
		Description:   req.Description,
		Skills:        req.Skills,
		MinExperience: req.MinExperience,
		Location:      req.Location,
		WorkAuth:      req.WorkAuth,
	}
	if req.Status != "" {
		status, err := vacancy.ParseStatus(req.Status)
		if err != nil {
			s.handleError(w, err)
			return
		}
		v.Status = status
	}
	if req.Priority != "" {
		priority, err := vacancy.ParsePriority(req.Priority)
		if err != nil {
			s.handleError(w, err)
			return
		}
		v.Priority = priority
	}

	created, err := s.manager.Create(r.Context(), v)
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vacancyFromCore(created))
}

// handleGetVacancy handles GET /api/v1/vacancies/{id}.
func (s *Server) handleGetVacancy(w http.ResponseWriter, r *http.Request) {
	v, err := s.vacancies.GetVacancy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancyFromCore(v))
}

type patchVacancyRequest struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// handleUpdateVacancy handles PATCH /api/v1/vacancies/{id}, moving the
// vacancy's status and/or priority.
func (s *Server) handleUpdateVacancy(w http.ResponseWriter, r *http.Request) {
	var req patchVacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Status == "" && req.Priority == "" {
		writeError(w, http.StatusBadRequest, "status or priority is required")
		return
	}

	id := chi.URLParam(r, "id")
	var updated *core.Vacancy
	if req.Status != "" {
		status, err := vacancy.ParseStatus(req.Status)
		if err != nil {
			s.handleError(w, err)
			return
		}
		updated, err = s.manager.UpdateStatus(r.Context(), id, status)
		if err != nil {
			s.handleError(w, err)
			return
		}
	}
	if req.Priority != "" {
		priority, err := vacancy.ParsePriority(req.Priority)
		if err != nil {
			s.handleError(w, err)
			return
		}
		updated, err = s.manager.UpdatePriority(r.Context(), id, priority)
		if err != nil {
			s.handleError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, vacancyFromCore(updated))
}

type matchJSON struct {
	Candidate candidateJSON `json:"candidate"`
	Score     float64       `json:"score"`
}

type matchListResponse struct {
	VacancyId string      `json:"vacancyId"`
	Count     int         `json:"count"`
	Matches   []matchJSON `json:"matches"`
}

// handleMatches handles GET /api/v1/vacancies/{id}/matches. Scores rank
// unassigned candidates against the vacancy's requirements.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	limit := 0 // manager default
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	id := chi.URLParam(r, "id")
	matches, err := s.manager.Matches(r.Context(), id, limit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	out := matchListResponse{
		VacancyId: id,
		Count:     len(matches),
		Matches:   make([]matchJSON, 0, len(matches)),
	}
	for _, m := range matches {
		out.Matches = append(out.Matches, matchJSON{
			Candidate: candidateFromCore(m.Profile, false),
			Score:     m.Score,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type assignRequest struct {
	CandidateId string `json:"candidateId"`
}

// handleAssign handles POST /api/v1/vacancies/{id}/assign.
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	candidateID, err := strconv.ParseUint(req.CandidateId, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	updated, err := s.manager.Assign(r.Context(), chi.URLParam(r, "id"), core.ID(candidateID))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancyFromCore(updated))
}
