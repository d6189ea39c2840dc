package vacancy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
	"github.com/Swetcha17/recruitment-automation/storage/badger"
)

type managerFixture struct {
	profiles  storage.ProfileRepository
	vacancies storage.VacancyRepository
	manager   *Manager
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()

	profileRepo, vacancyRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vacancyRepo.Close()
		profileRepo.Close()
		backend.Close()
	})

	manager, err := NewManager(vacancyRepo, profileRepo)
	require.NoError(t, err)

	return &managerFixture{
		profiles:  profileRepo,
		vacancies: vacancyRepo,
		manager:   manager,
	}
}

func (f *managerFixture) store(t *testing.T, profiles ...*core.CandidateProfile) {
	t.Helper()
	_, err := f.profiles.PutProfiles(context.Background(), profiles...)
	require.NoError(t, err)
}

func TestNewManager(t *testing.T) {
	f := newManagerFixture(t)

	t.Run("nil vacancy repository", func(t *testing.T) {
		_, err := NewManager(nil, f.profiles)
		assert.Equal(t, ErrVacancyRepositoryRequired, err)
	})

	t.Run("nil profile repository", func(t *testing.T) {
		_, err := NewManager(f.vacancies, nil)
		assert.Equal(t, ErrProfileRepositoryRequired, err)
	})
}

func TestCreate(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	created, err := f.manager.Create(ctx, &core.Vacancy{
		RoleCategory:  "data-engineering",
		Skills:        []string{"python", "sql"},
		MinExperience: 3,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.Id)
	assert.Equal(t, "Data Engineering", created.Title)
	assert.Equal(t, core.VacancyOpen, created.Status)
	assert.Equal(t, core.PriorityMedium, created.Priority)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("explicit fields kept", func(t *testing.T) {
		urgent, err := f.manager.Create(ctx, &core.Vacancy{
			Title:        "Staff Platform Engineer",
			RoleCategory: "platform",
			Priority:     core.PriorityUrgent,
		})
		require.NoError(t, err)
		assert.Equal(t, "Staff Platform Engineer", urgent.Title)
		assert.Equal(t, core.PriorityUrgent, urgent.Priority)
	})

	t.Run("missing role category", func(t *testing.T) {
		_, err := f.manager.Create(ctx, &core.Vacancy{Title: "Mystery Role"})
		assert.ErrorIs(t, err, ErrRoleCategoryRequired)
	})
}

func TestEnsureOpenForRole(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	derived, err := f.manager.EnsureOpenForRole(ctx, "data-engineering")
	require.NoError(t, err)
	assert.Equal(t, "VAC_data_engineering", derived.Id)
	assert.Equal(t, "Data Engineering", derived.Title)
	assert.Equal(t, core.VacancyOpen, derived.Status)

	t.Run("reuses the open vacancy", func(t *testing.T) {
		again, err := f.manager.EnsureOpenForRole(ctx, "data-engineering")
		require.NoError(t, err)
		assert.Equal(t, derived.Id, again.Id)

		all, err := f.vacancies.ListVacancies(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("closed vacancy is not reused", func(t *testing.T) {
		_, err := f.manager.UpdateStatus(ctx, derived.Id, core.VacancyClosed)
		require.NoError(t, err)

		reopened, err := f.manager.EnsureOpenForRole(ctx, "data-engineering")
		require.NoError(t, err)
		// Same slug Id: the closed record is revived as the open vacancy.
		assert.Equal(t, derived.Id, reopened.Id)
		assert.Equal(t, core.VacancyOpen, reopened.Status)
	})

	t.Run("empty role", func(t *testing.T) {
		_, err := f.manager.EnsureOpenForRole(ctx, "  ")
		assert.ErrorIs(t, err, ErrRoleCategoryRequired)
	})
}

func TestEnsureOpenForRoles(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	vacancies, err := f.manager.EnsureOpenForRoles(ctx, []string{"design", "frontend", "design"})
	require.NoError(t, err)
	require.Len(t, vacancies, 3)
	assert.Equal(t, "VAC_design", vacancies[0].Id)
	assert.Equal(t, "VAC_frontend", vacancies[1].Id)
	assert.Equal(t, vacancies[0].Id, vacancies[2].Id)

	all, err := f.vacancies.ListVacancies(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateStatus(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	created, err := f.manager.EnsureOpenForRole(ctx, "design")
	require.NoError(t, err)

	updated, err := f.manager.UpdateStatus(ctx, created.Id, core.VacancyOnHold)
	require.NoError(t, err)
	assert.Equal(t, core.VacancyOnHold, updated.Status)

	stored, err := f.vacancies.GetVacancy(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, core.VacancyOnHold, stored.Status)

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.manager.UpdateStatus(ctx, created.Id, core.VacancyStatus(42))
		assert.ErrorIs(t, err, core.ErrInvalidVacancyStatus)
	})

	t.Run("unknown vacancy", func(t *testing.T) {
		_, err := f.manager.UpdateStatus(ctx, "VAC_nope", core.VacancyClosed)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestUpdatePriority(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	created, err := f.manager.EnsureOpenForRole(ctx, "design")
	require.NoError(t, err)

	updated, err := f.manager.UpdatePriority(ctx, created.Id, core.PriorityUrgent)
	require.NoError(t, err)
	assert.Equal(t, core.PriorityUrgent, updated.Priority)

	t.Run("invalid priority", func(t *testing.T) {
		_, err := f.manager.UpdatePriority(ctx, created.Id, core.VacancyPriority(0))
		assert.ErrorIs(t, err, core.ErrInvalidVacancyPriority)
	})
}

func TestAssign(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	f.store(t, &core.CandidateProfile{
		Id:           21,
		Name:         "Alice Nguyen",
		RoleCategory: "data-engineering",
		SourceFile:   "data-engineering/alice.txt",
		ResumeText:   "Data engineer. Python and SQL.",
	})

	vacancy, err := f.manager.EnsureOpenForRole(ctx, "data-engineering")
	require.NoError(t, err)

	updated, err := f.manager.Assign(ctx, vacancy.Id, 21)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{21}, updated.CandidateIds)

	profile, err := f.profiles.GetProfile(ctx, 21)
	require.NoError(t, err)
	assert.Equal(t, core.StageReviewed, profile.Stage)

	t.Run("double assignment", func(t *testing.T) {
		_, err := f.manager.Assign(ctx, vacancy.Id, 21)
		assert.ErrorIs(t, err, ErrAlreadyAssigned)
	})

	t.Run("stage beyond reviewed is kept", func(t *testing.T) {
		_, err := f.profiles.UpdateStage(ctx, 21, core.StageInterviewed)
		require.NoError(t, err)

		second, err := f.manager.Create(ctx, &core.Vacancy{RoleCategory: "data-engineering"})
		require.NoError(t, err)
		_, err = f.manager.Assign(ctx, second.Id, 21)
		require.NoError(t, err)

		profile, err := f.profiles.GetProfile(ctx, 21)
		require.NoError(t, err)
		assert.Equal(t, core.StageInterviewed, profile.Stage)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		_, err := f.manager.Assign(ctx, vacancy.Id, 9999)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unknown vacancy", func(t *testing.T) {
		_, err := f.manager.Assign(ctx, "VAC_nope", 21)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("on-hold")
	require.NoError(t, err)
	assert.Equal(t, core.VacancyOnHold, status)

	status, err = ParseStatus("FILLED")
	require.NoError(t, err)
	assert.Equal(t, core.VacancyFilled, status)

	_, err = ParseStatus("paused")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParsePriority(t *testing.T) {
	priority, err := ParsePriority("urgent")
	require.NoError(t, err)
	assert.Equal(t, core.PriorityUrgent, priority)

	_, err = ParsePriority("whenever")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestSlugifyRole(t *testing.T) {
	assert.Equal(t, "data_engineering", slugifyRole("Data-Engineering"))
	assert.Equal(t, "machine_learning", slugifyRole("machine learning"))
	assert.Equal(t, "qa", slugifyRole("  QA!  "))
}
