package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Swetcha17/recruitment-automation/core"
)

// defaultCandidateLimit bounds GET /candidates when no limit is given.
const defaultCandidateLimit = 100

// candidateJSON is the wire shape of a candidate profile. Ids are decimal
// strings because they use the full uint64 range.
type candidateJSON struct {
	Id              core.ID   `json:"id,string"`
	Name            string    `json:"name,omitempty"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	RoleCategory    string    `json:"roleCategory"`
	CurrentTitle    string    `json:"currentTitle,omitempty"`
	Titles          []string  `json:"titles,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	ExperienceYears float64   `json:"experienceYears"`
	Location        string    `json:"location,omitempty"`
	WorkAuth        string    `json:"workAuth,omitempty"`
	Snippet         string    `json:"snippet,omitempty"`
	SourceFile      string    `json:"sourceFile"`
	Stage           string    `json:"stage"`
	IngestedAt      time.Time `json:"ingestedAt"`
	ResumeText      string    `json:"resumeText,omitempty"` // detail responses only
}

func candidateFromCore(p *core.CandidateProfile, includeText bool) candidateJSON {
	c := candidateJSON{
		Id:              p.Id,
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		RoleCategory:    p.RoleCategory,
		CurrentTitle:    p.CurrentTitle,
		Titles:          p.Titles,
		Skills:          p.Skills,
		ExperienceYears: p.ExperienceYears,
		Location:        p.Location,
		WorkAuth:        p.WorkAuth,
		Snippet:         p.Snippet,
		SourceFile:      p.SourceFile,
		Stage:           p.Stage.String(),
		IngestedAt:      p.IngestedAt,
	}
	if includeText {
		c.ResumeText = p.ResumeText
	}
	return c
}

type candidateListResponse struct {
	Count      int             `json:"count"`
	Candidates []candidateJSON `json:"candidates"`
}

// handleListCandidates handles GET /api/v1/candidates. With ?role= it
// returns every candidate in the role category; otherwise the most
// recently ingested, capped by ?limit=.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		profiles []*core.CandidateProfile
		err      error
	)
	if role := query.Get("role"); role != "" {
		profiles, err = s.profiles.GetProfilesByRole(r.Context(), role)
	} else {
		limit := defaultCandidateLimit
		if v := query.Get("limit"); v != "" {
			limit, err = strconv.Atoi(v)
			if err != nil || limit <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
		}
		profiles, err = s.profiles.GetRecentProfiles(r.Context(), limit)
	}
	if err != nil {
		s.handleError(w, err)
		return
	}

	out := candidateListResponse{
		Count:      len(profiles),
		Candidates: make([]candidateJSON, 0, len(profiles)),
	}
	for _, p := range profiles {
		out.Candidates = append(out.Candidates, candidateFromCore(p, false))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetCandidate handles GET /api/v1/candidates/{id}. The detail
// response carries the full resume text.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	raw, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), core.ID(raw))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidateFromCore(profile, true))
}
