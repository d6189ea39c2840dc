package vacancy

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/Swetcha17/recruitment-automation/core"
)

// defaultMatchLimit caps the ranking when the caller does not ask for a
// specific number of candidates.
const defaultMatchLimit = 10

// Match pairs a candidate with their requirement score for one vacancy.
type Match struct {
	Profile *core.CandidateProfile
	Score   float64
}

// MatchScore rates how well a profile fits a vacancy, from 0 to 100:
//
//	role category match        20
//	required skill overlap     up to 40, scaled by the covered fraction
//	meets minimum experience   20, plus 2 per surplus year capped at 10
//	work authorization match   10
//
// Scores are derived on demand and never stored, so editing vacancy
// requirements reranks candidates immediately.
func MatchScore(vacancy *core.Vacancy, profile *core.CandidateProfile) float64 {
	var score float64

	if strings.EqualFold(profile.RoleCategory, vacancy.RoleCategory) {
		score += 20
	}

	if len(vacancy.Skills) > 0 {
		have := make(map[string]bool, len(profile.Skills))
		for _, skill := range profile.Skills {
			have[strings.ToLower(skill)] = true
		}
		matched := 0
		for _, skill := range vacancy.Skills {
			if have[strings.ToLower(skill)] {
				matched++
			}
		}
		score += float64(matched) / float64(len(vacancy.Skills)) * 40
	}

	if profile.ExperienceYears >= vacancy.MinExperience {
		score += 20
		score += min((profile.ExperienceYears-vacancy.MinExperience)*2, 10)
	}

	if vacancy.WorkAuth != "" && strings.EqualFold(profile.WorkAuth, vacancy.WorkAuth) {
		score += 10
	}

	return score
}

// Matches ranks every stored candidate against a vacancy and returns the top
// scorers. Candidates already assigned to the vacancy and candidates scoring
// zero are left out. Ties break by candidate Id. A limit of zero or less
// falls back to the default of 10.
func (m *Manager) Matches(ctx context.Context, vacancyID string, limit int) ([]Match, error) {
	vacancy, err := m.vacancies.GetVacancy(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	assigned := make(map[core.ID]bool, len(vacancy.CandidateIds))
	for _, id := range vacancy.CandidateIds {
		assigned[id] = true
	}

	var matches []Match
	for profile, err := range m.profiles.AllProfiles(ctx) {
		if err != nil {
			return nil, err
		}
		if assigned[profile.Id] {
			continue
		}
		if score := MatchScore(vacancy, profile); score > 0 {
			matches = append(matches, Match{Profile: profile, Score: score})
		}
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Profile.Id, b.Profile.Id)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	m.logger.Debug("ranked candidates for vacancy",
		"vacancyId", vacancyID,
		"matches", len(matches))
	return matches, nil
}
