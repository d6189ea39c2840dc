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


package vacancy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
)

// Manager implements vacancy lifecycle operations over the storage
// repositories.
type Manager struct {
	vacancies storage.VacancyRepository
	profiles  storage.ProfileRepository
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager) error

// WithLogger sets the logger. Passing nil restores the default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates a vacancy manager over the given repositories.
func NewManager(vacancies storage.VacancyRepository, profiles storage.ProfileRepository, opts ...Option) (*Manager, error) {
	if vacancies == nil {
		return nil, ErrVacancyRepositoryRequired
	}
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}

	m := &Manager{
		vacancies: vacancies,
		profiles:  profiles,
		logger:    slog.Default().With("component", "vacancy-manager"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Create stores a recruiter-defined vacancy. Vacancies without an Id get a
// random one. Title defaults to the humanized role category, status to Open
// and priority to Medium.
func (m *Manager) Create(ctx context.Context, vacancy *core.Vacancy) (*core.Vacancy, error) {
	if vacancy == nil {
		return nil, fmt.Errorf("vacancy: %w", core.ErrInvalidVacancy)
	}
	if strings.TrimSpace(vacancy.RoleCategory) == "" {
		return nil, ErrRoleCategoryRequired
	}

	if vacancy.Id == "" {
		vacancy.Id = uuid.NewString()
	}
	if vacancy.Title == "" {
		vacancy.Title = humanizeRole(vacancy.RoleCategory)
	}
	if vacancy.Status == 0 {
		vacancy.Status = core.VacancyOpen
	}
	if vacancy.Priority == 0 {
		vacancy.Priority = core.PriorityMedium
	}

	created, err := m.vacancies.PutVacancy(ctx, vacancy)
	if err != nil {
		return nil, err
	}

	m.logger.Info("vacancy created",
		"id", created.Id,
		"role", created.RoleCategory,
		"priority", created.Priority.String())
	return created, nil
}

// EnsureOpenForRole returns the open vacancy for a role category, deriving a
// new one when none exists. Derived vacancies use the stable Id "VAC_<slug>"
// so repeated parse runs land on the same record.
func (m *Manager) EnsureOpenForRole(ctx context.Context, roleCategory string) (*core.Vacancy, error) {
	if strings.TrimSpace(roleCategory) == "" {
		return nil, ErrRoleCategoryRequired
	}

	existing, err := m.vacancies.FindOpenVacancyByRole(ctx, roleCategory)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	// No open vacancy for the role. Revive a previously derived record if one
	// exists, keeping its assignments, otherwise derive a fresh one.
	slugID := "VAC_" + slugifyRole(roleCategory)
	prior, err := m.vacancies.GetVacancy(ctx, slugID)
	switch {
	case err == nil:
		prior.Status = core.VacancyOpen
		revived, err := m.vacancies.PutVacancy(ctx, prior)
		if err != nil {
			return nil, err
		}
		m.logger.Info("vacancy reopened for role folder", "id", revived.Id, "role", roleCategory)
		return revived, nil
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}

	derived, err := m.vacancies.PutVacancy(ctx, &core.Vacancy{
		Id:           slugID,
		Title:        humanizeRole(roleCategory),
		RoleCategory: roleCategory,
		Status:       core.VacancyOpen,
		Priority:     core.PriorityMedium,
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("vacancy derived from role folder", "id", derived.Id, "role", roleCategory)
	return derived, nil
}

// EnsureOpenForRoles derives vacancies for every given role category.
// Called by the ingestion pipeline with the distinct role folders of a parse
// run.
func (m *Manager) EnsureOpenForRoles(ctx context.Context, roleCategories []string) ([]*core.Vacancy, error) {
	vacancies := make([]*core.Vacancy, 0, len(roleCategories))
	for _, role := range roleCategories {
		vacancy, err := m.EnsureOpenForRole(ctx, role)
		if err != nil {
			return vacancies, fmt.Errorf("vacancy for role %s: %w", role, err)
		}
		vacancies = append(vacancies, vacancy)
	}
	return vacancies, nil
}

// UpdateStatus moves a vacancy to a new lifecycle status.
func (m *Manager) UpdateStatus(ctx context.Context, id string, status core.VacancyStatus) (*core.Vacancy, error) {
	if err := core.ValidateVacancyStatus(status); err != nil {
		return nil, err
	}

	vacancy, err := m.vacancies.GetVacancy(ctx, id)
	if err != nil {
		return nil, err
	}
	vacancy.Status = status

	updated, err := m.vacancies.PutVacancy(ctx, vacancy)
	if err != nil {
		return nil, err
	}

	m.logger.Info("vacancy status updated", "id", id, "status", status.String())
	return updated, nil
}

// UpdatePriority changes the recruiter attention priority of a vacancy.
func (m *Manager) UpdatePriority(ctx context.Context, id string, priority core.VacancyPriority) (*core.Vacancy, error) {
	if err := core.ValidateVacancyPriority(priority); err != nil {
		return nil, err
	}

	vacancy, err := m.vacancies.GetVacancy(ctx, id)
	if err != nil {
		return nil, err
	}
	vacancy.Priority = priority

	updated, err := m.vacancies.PutVacancy(ctx, vacancy)
	if err != nil {
		return nil, err
	}

	m.logger.Info("vacancy priority updated", "id", id, "priority", priority.String())
	return updated, nil
}

// Assign attaches a stored candidate to a vacancy. Candidates still in the
// Uploaded stage move to Reviewed; candidates further down the funnel keep
// their stage.
func (m *Manager) Assign(ctx context.Context, vacancyID string, candidateID core.ID) (*core.Vacancy, error) {
	vacancy, err := m.vacancies.GetVacancy(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	profile, err := m.profiles.GetProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	if slices.Contains(vacancy.CandidateIds, candidateID) {
		return nil, fmt.Errorf("%w: candidate %d, vacancy %s", ErrAlreadyAssigned, candidateID, vacancyID)
	}
	vacancy.CandidateIds = append(vacancy.CandidateIds, candidateID)

	updated, err := m.vacancies.PutVacancy(ctx, vacancy)
	if err != nil {
		return nil, err
	}

	if profile.Stage == core.StageUploaded {
		if _, err := m.profiles.UpdateStage(ctx, candidateID, core.StageReviewed); err != nil {
			return nil, fmt.Errorf("advancing candidate %d to reviewed: %w", candidateID, err)
		}
	}

	m.logger.Info("candidate assigned to vacancy",
		"vacancyId", vacancyID,
		"candidateId", candidateID,
		"assigned", len(updated.CandidateIds))
	return updated, nil
}

// ParseStatus maps a display name like "On Hold" or "on-hold" to its status.
func ParseStatus(s string) (core.VacancyStatus, error) {
	name := normalizeName(s)
	for _, status := range []core.VacancyStatus{core.VacancyOpen, core.VacancyOnHold, core.VacancyClosed, core.VacancyFilled} {
		if strings.EqualFold(name, status.String()) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ParsePriority maps a display name like "Urgent" to its priority.
func ParsePriority(s string) (core.VacancyPriority, error) {
	name := normalizeName(s)
	for _, priority := range []core.VacancyPriority{core.PriorityLow, core.PriorityMedium, core.PriorityHigh, core.PriorityUrgent} {
		if strings.EqualFold(name, priority.String()) {
			return priority, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

func normalizeName(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.TrimSpace(s)
}

// slugifyRole lowercases a role category and joins its alphanumeric runs
// with underscores: "Data-Engineering" becomes "data_engineering".
func slugifyRole(roleCategory string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(roleCategory)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}

// humanizeRole turns a role folder name into a display title:
// "data-engineering" becomes "Data Engineering".
func humanizeRole(roleCategory string) string {
	words := strings.FieldsFunc(roleCategory, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
