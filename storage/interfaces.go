package storage

import (
	"context"
	"iter"

	"github.com/Swetcha17/recruitment-automation/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ProfileRepository provides operations for managing candidate profiles.
type ProfileRepository interface {
	Repository
	// PutProfiles inserts or replaces one or more profiles by Id.
	// For profiles with Id=0, derives the Id from the SourceFile path.
	// Sets IngestedAt and Stage if not already set. Last write wins.
	// Returns the profiles with Ids and timestamps populated.
	PutProfiles(ctx context.Context, profiles ...*core.CandidateProfile) ([]*core.CandidateProfile, error)

	// GetProfile retrieves a single profile by Id.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id core.ID) (*core.CandidateProfile, error)

	// GetProfiles retrieves multiple profiles by their Ids.
	// Returns only the profiles that exist (no error for missing profiles).
	GetProfiles(ctx context.Context, ids ...core.ID) ([]*core.CandidateProfile, error)

	// DeleteProfiles removes profiles by their Ids.
	// Also removes associated index entries.
	// Returns ErrNotFound if any profile doesn't exist.
	DeleteProfiles(ctx context.Context, ids ...core.ID) error

	// AllProfiles returns a lazy sequence over every stored profile, ordered
	// by ingestion time ascending. The sequence is restartable: each range
	// starts a fresh snapshot iteration.
	AllProfiles(ctx context.Context) iter.Seq2[*core.CandidateProfile, error]

	// GetRecentProfiles retrieves the N most recently ingested profiles,
	// ordered by ingestion time descending.
	GetRecentProfiles(ctx context.Context, limit int) ([]*core.CandidateProfile, error)

	// GetProfilesByRole retrieves profiles in a role category, ordered by Id.
	GetProfilesByRole(ctx context.Context, roleCategory string) ([]*core.CandidateProfile, error)

	// CountProfiles returns the number of stored profiles.
	CountProfiles(ctx context.Context) (int, error)

	// UpdateStage moves a candidate to a new funnel stage.
	// Returns ErrNotFound if the profile doesn't exist.
	UpdateStage(ctx context.Context, id core.ID, stage core.Stage) (*core.CandidateProfile, error)
}

// VacancyRepository provides operations for managing vacancies.
type VacancyRepository interface {
	Repository
	// PutVacancy inserts or replaces a vacancy by Id.
	// Sets CreatedAt on first write and UpdatedAt on every write.
	PutVacancy(ctx context.Context, vacancy *core.Vacancy) (*core.Vacancy, error)

	// GetVacancy retrieves a single vacancy by Id.
	// Returns ErrNotFound if the vacancy doesn't exist.
	GetVacancy(ctx context.Context, id string) (*core.Vacancy, error)

	// ListVacancies retrieves all vacancies, ordered by creation time then Id.
	ListVacancies(ctx context.Context) ([]*core.Vacancy, error)

	// FindOpenVacancyByRole finds an open vacancy for a role category.
	// Returns ErrNotFound if no open vacancy exists for the role.
	FindOpenVacancyByRole(ctx context.Context, roleCategory string) (*core.Vacancy, error)

	// DeleteVacancy removes a vacancy by Id.
	// Returns ErrNotFound if the vacancy doesn't exist.
	DeleteVacancy(ctx context.Context, id string) error
}

// StatusRepository records the outcome of index build stages. One record is
// kept per stage name, overwritten on every run.
type StatusRepository interface {
	// PutStatus persists the status record for a stage.
	PutStatus(ctx context.Context, status *core.BuildStatus) error

	// GetStatus retrieves the status record for a stage.
	// Returns nil, nil if the stage has never run.
	GetStatus(ctx context.Context, stage string) (*core.BuildStatus, error)

	// ListStatuses retrieves all recorded stage statuses, ordered by stage name.
	ListStatuses(ctx context.Context) ([]*core.BuildStatus, error)
}
