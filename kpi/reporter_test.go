package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
	"github.com/Swetcha17/recruitment-automation/storage/badger"
)

type reporterFixture struct {
	profiles  storage.ProfileRepository
	vacancies storage.VacancyRepository
	reporter  *Reporter
}

func newReporterFixture(t *testing.T, opts ...Option) *reporterFixture {
	t.Helper()

	profileRepo, vacancyRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vacancyRepo.Close()
		profileRepo.Close()
		backend.Close()
	})

	reporter, err := NewReporter(profileRepo, vacancyRepo, opts...)
	require.NoError(t, err)

	return &reporterFixture{
		profiles:  profileRepo,
		vacancies: vacancyRepo,
		reporter:  reporter,
	}
}

func (f *reporterFixture) store(t *testing.T, profiles ...*core.CandidateProfile) {
	t.Helper()
	_, err := f.profiles.PutProfiles(context.Background(), profiles...)
	require.NoError(t, err)
}

func candidate(id core.ID, role string, stage core.Stage, ingested time.Time) *core.CandidateProfile {
	return &core.CandidateProfile{
		Id:           id,
		Name:         "Candidate",
		RoleCategory: role,
		Stage:        stage,
		IngestedAt:   ingested,
		SourceFile:   role + "/candidate.txt",
		ResumeText:   "Resume text.",
	}
}

func TestNewReporter(t *testing.T) {
	f := newReporterFixture(t)

	t.Run("nil profile repository", func(t *testing.T) {
		_, err := NewReporter(nil, f.vacancies)
		assert.Equal(t, ErrProfileRepositoryRequired, err)
	})

	t.Run("nil vacancy repository", func(t *testing.T) {
		_, err := NewReporter(f.profiles, nil)
		assert.Equal(t, ErrVacancyRepositoryRequired, err)
	})

	t.Run("invalid trend window", func(t *testing.T) {
		_, err := NewReporter(f.profiles, f.vacancies, WithTrendWindow(0))
		assert.ErrorContains(t, err, "trend window must be positive")
	})
}

func TestReport_EmptyStore(t *testing.T) {
	f := newReporterFixture(t)

	report, err := f.reporter.Report(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.PoolSize)
	assert.Zero(t, report.ConversionRate)
	assert.Equal(t, 1.0, report.PipelineVelocity)
	assert.Empty(t, report.StageDistribution)
	assert.Empty(t, report.IngestionTrend)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestReport_FunnelAndDistribution(t *testing.T) {
	f := newReporterFixture(t)
	now := time.Now().UTC()

	f.store(t,
		candidate(1, "data-engineering", core.StageUploaded, now),
		candidate(2, "data-engineering", core.StageUploaded, now.AddDate(0, 0, -45)),
		candidate(3, "design", core.StageReviewed, now.AddDate(0, 0, -2)),
		candidate(4, "design", core.StageInterviewed, now.AddDate(0, 0, -3)),
		candidate(5, "data-engineering", core.StageHired, now.AddDate(0, 0, -5)),
		candidate(6, "frontend", core.StageRejected, now.AddDate(0, 0, -1)),
	)

	report, err := f.reporter.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, report.PoolSize)
	assert.Equal(t, map[string]int{
		"Uploaded":    2,
		"Reviewed":    1,
		"Interviewed": 1,
		"Hired":       1,
		"Rejected":    1,
	}, report.StageDistribution)

	// Each stage counts into every bucket it passed; rejections into none.
	assert.Equal(t, Funnel{Uploaded: 5, Reviewed: 3, Interviewed: 2, Offered: 1, Hired: 1}, report.Funnel)
	assert.InDelta(t, 20.0, report.ConversionRate, 1e-9)

	assert.Equal(t, map[string]int{
		"data-engineering": 3,
		"design":           2,
		"frontend":         1,
	}, report.CandidatesByRole)

	assert.InDelta(t, 66.0, report.AvgTimeToPresentHours, 0.2)
	assert.InDelta(t, 5.0, report.AvgTimeToHireDays, 0.1)
	assert.InDelta(t, 1.4, report.PipelineVelocity, 1e-9)
}

func TestReport_IngestionTrend(t *testing.T) {
	f := newReporterFixture(t)
	now := time.Now().UTC()

	f.store(t,
		candidate(1, "design", core.StageUploaded, now),
		candidate(2, "design", core.StageUploaded, now),
		candidate(3, "design", core.StageUploaded, now.AddDate(0, 0, -10)),
		candidate(4, "design", core.StageUploaded, now.AddDate(0, 0, -45)),
	)

	report, err := f.reporter.Report(context.Background())
	require.NoError(t, err)

	require.Len(t, report.IngestionTrend, 2, "the 45-day-old ingest falls outside the window")
	assert.Equal(t, now.AddDate(0, 0, -10).Format("2006-01-02"), report.IngestionTrend[0].Date)
	assert.Equal(t, 1, report.IngestionTrend[0].Count)
	assert.Equal(t, 2, report.IngestionTrend[1].Count)

	t.Run("narrower window", func(t *testing.T) {
		narrow := newReporterFixture(t, WithTrendWindow(7))
		narrow.store(t,
			candidate(1, "design", core.StageUploaded, now.AddDate(0, 0, -3)),
			candidate(2, "design", core.StageUploaded, now.AddDate(0, 0, -10)),
		)

		report, err := narrow.reporter.Report(context.Background())
		require.NoError(t, err)
		require.Len(t, report.IngestionTrend, 1)
		assert.Equal(t, 1, report.IngestionTrend[0].Count)
	})
}

func TestReport_Vacancies(t *testing.T) {
	f := newReporterFixture(t)
	ctx := context.Background()

	put := func(id string, status core.VacancyStatus, priority core.VacancyPriority) {
		_, err := f.vacancies.PutVacancy(ctx, &core.Vacancy{
			Id:           id,
			Title:        "Role " + id,
			RoleCategory: "role-" + id,
			Status:       status,
			Priority:     priority,
		})
		require.NoError(t, err)
	}
	put("a", core.VacancyOpen, core.PriorityMedium)
	put("b", core.VacancyOnHold, core.PriorityMedium)
	put("c", core.VacancyFilled, core.PriorityHigh)

	report, err := f.reporter.Report(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, report.ActiveVacancies)
	assert.Equal(t, map[string]int{"Open": 1, "On Hold": 1, "Filled": 1}, report.VacanciesByStatus)
	assert.Equal(t, map[string]int{"Medium": 2, "High": 1}, report.VacanciesByPriority)
}
