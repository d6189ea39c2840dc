package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/index"
	"github.com/Swetcha17/recruitment-automation/index/keyword"
	"github.com/Swetcha17/recruitment-automation/index/semantic"
	"github.com/Swetcha17/recruitment-automation/storage"
	"github.com/Swetcha17/recruitment-automation/storage/badger"
	"github.com/Swetcha17/recruitment-automation/vacancy"
)

const aliceResumeText = `Alice Nguyen
Senior Data Engineer
alice@example.com
Austin, TX 78701 | US Citizen
7+ years of experience building data pipelines with Python, SQL and Airflow on AWS.`

const bobResumeText = `Bob Lee
Product Designer
bob@example.com
Remote
4 years of experience in product design with Figma, CSS and design systems.`

type pipelineFixture struct {
	profiles  storage.ProfileRepository
	vacancies storage.VacancyRepository
	statuses  storage.StatusRepository
	manager   *vacancy.Manager
	backend   *badger.Backend
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	profileRepo, vacancyRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vacancyRepo.Close()
		profileRepo.Close()
		backend.Close()
	})

	manager, err := vacancy.NewManager(vacancyRepo, profileRepo)
	require.NoError(t, err)

	return &pipelineFixture{
		profiles:  profileRepo,
		vacancies: vacancyRepo,
		statuses:  badger.NewStatusRepository(backend),
		manager:   manager,
		backend:   backend,
	}
}

func (f *pipelineFixture) newPipeline(t *testing.T, semanticIdx, keywordIdx Builder, opts ...Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline(f.profiles, f.statuses, f.manager, semanticIdx, keywordIdx, opts...)
	require.NoError(t, err)
	return p
}

func writeResume(t *testing.T, root string, parts ...string) {
	t.Helper()
	content := parts[len(parts)-1]
	path := filepath.Join(append([]string{root}, parts[:len(parts)-1]...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// stubBuilder stands in for an index in stage isolation tests.
type stubBuilder struct {
	err    error
	block  bool
	builds int
}

func (s *stubBuilder) Build(ctx context.Context, docs []*core.CandidateProfile) (index.BuildInfo, error) {
	s.builds++
	if s.block {
		<-ctx.Done()
		return index.BuildInfo{}, ctx.Err()
	}
	if s.err != nil {
		return index.BuildInfo{}, s.err
	}
	return index.BuildInfo{Documents: len(docs), BuiltAt: time.Now()}, nil
}

func TestNewPipeline(t *testing.T) {
	f := newPipelineFixture(t)
	sem := &stubBuilder{}
	kw := &stubBuilder{}

	t.Run("nil profile repository", func(t *testing.T) {
		_, err := NewPipeline(nil, f.statuses, f.manager, sem, kw)
		assert.Equal(t, ErrProfileRepositoryRequired, err)
	})

	t.Run("nil status repository", func(t *testing.T) {
		_, err := NewPipeline(f.profiles, nil, f.manager, sem, kw)
		assert.Equal(t, ErrStatusRepositoryRequired, err)
	})

	t.Run("nil vacancy manager", func(t *testing.T) {
		_, err := NewPipeline(f.profiles, f.statuses, nil, sem, kw)
		assert.Equal(t, ErrVacancyManagerRequired, err)
	})

	t.Run("nil semantic builder", func(t *testing.T) {
		_, err := NewPipeline(f.profiles, f.statuses, f.manager, nil, kw)
		assert.Equal(t, ErrSemanticIndexRequired, err)
	})

	t.Run("nil keyword builder", func(t *testing.T) {
		_, err := NewPipeline(f.profiles, f.statuses, f.manager, sem, nil)
		assert.Equal(t, ErrKeywordIndexRequired, err)
	})

	t.Run("negative stage timeout", func(t *testing.T) {
		_, err := NewPipeline(f.profiles, f.statuses, f.manager, sem, kw, WithStageTimeout(-time.Second))
		assert.ErrorContains(t, err, "must not be negative")
	})
}

func TestRun_FullBuild(t *testing.T) {
	root := t.TempDir()
	writeResume(t, root, "data-engineering", "Alice Nguyen", "resume.txt", aliceResumeText)
	writeResume(t, root, "design", "Bob Lee", "resume.txt", bobResumeText)

	f := newPipelineFixture(t)
	ctx := context.Background()

	semanticIdx, err := semantic.New("")
	require.NoError(t, err)
	keywordIdx, err := keyword.New(f.backend)
	require.NoError(t, err)

	p := f.newPipeline(t, semanticIdx, keywordIdx)

	statuses, err := p.Run(ctx, root)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, status := range statuses {
		assert.Equal(t, core.BuildSucceeded, status.State, "stage %s", status.Stage)
		assert.Equal(t, 2, status.Documents, "stage %s", status.Stage)
		assert.Zero(t, status.Skipped)
		assert.Empty(t, status.Error)
		assert.False(t, status.FinishedAt.Before(status.StartedAt))
	}

	count, err := f.profiles.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	vacancies, err := f.vacancies.ListVacancies(ctx)
	require.NoError(t, err)
	require.Len(t, vacancies, 2)
	assert.Equal(t, "VAC_data_engineering", vacancies[0].Id)
	assert.Equal(t, "VAC_design", vacancies[1].Id)

	recorded, err := f.statuses.ListStatuses(ctx)
	require.NoError(t, err)
	assert.Len(t, recorded, 3)

	hits, err := keywordIdx.Search(ctx, "python", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	semanticHits, err := semanticIdx.Search(ctx, "data pipelines", 5)
	require.NoError(t, err)
	require.NotEmpty(t, semanticHits)

	t.Run("rerun is idempotent", func(t *testing.T) {
		_, err := p.Run(ctx, root)
		require.NoError(t, err)

		count, err := f.profiles.CountProfiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		vacancies, err := f.vacancies.ListVacancies(ctx)
		require.NoError(t, err)
		assert.Len(t, vacancies, 2)
	})
}

func TestRun_IndexStageFailureIsIsolated(t *testing.T) {
	root := t.TempDir()
	writeResume(t, root, "data-engineering", "Alice Nguyen", "resume.txt", aliceResumeText)

	f := newPipelineFixture(t)
	ctx := context.Background()

	boom := errors.New("segment write failed")
	sem := &stubBuilder{err: boom}
	kw := &stubBuilder{}
	p := f.newPipeline(t, sem, kw)

	statuses, err := p.Run(ctx, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageSemantic, stageErr.Stage)

	require.Len(t, statuses, 3)
	assert.Equal(t, core.BuildSucceeded, statuses[0].State)
	assert.Equal(t, core.BuildFailed, statuses[1].State)
	assert.Contains(t, statuses[1].Error, "segment write failed")
	assert.Equal(t, core.BuildSucceeded, statuses[2].State)
	assert.Equal(t, 1, kw.builds, "keyword stage runs despite the semantic failure")

	recorded, err := f.statuses.GetStatus(ctx, StageSemantic)
	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, core.BuildFailed, recorded.State)
}

func TestRun_ParseFailureStopsTheRun(t *testing.T) {
	f := newPipelineFixture(t)
	sem := &stubBuilder{}
	kw := &stubBuilder{}
	p := f.newPipeline(t, sem, kw)

	statuses, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageParse, stageErr.Stage)

	require.Len(t, statuses, 1)
	assert.Equal(t, core.BuildFailed, statuses[0].State)
	assert.Zero(t, sem.builds, "index stages must not run after a parse failure")
	assert.Zero(t, kw.builds)
}

func TestBuildSemantic_StageTimeout(t *testing.T) {
	f := newPipelineFixture(t)
	sem := &stubBuilder{block: true}
	kw := &stubBuilder{}
	p := f.newPipeline(t, sem, kw, WithStageTimeout(30*time.Millisecond))

	status, err := p.BuildSemantic(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBuildTimeout)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageSemantic, stageErr.Stage)

	assert.Equal(t, core.BuildFailed, status.State)
	assert.Contains(t, status.Error, "timed out")
}

func TestBuildSemantic_CallerCancelIsNotATimeout(t *testing.T) {
	f := newPipelineFixture(t)
	sem := &stubBuilder{block: true}
	kw := &stubBuilder{}
	p := f.newPipeline(t, sem, kw, WithStageTimeout(0))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.BuildSemantic(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrBuildTimeout)
}

func TestParse_DerivesVacanciesFromProfiles(t *testing.T) {
	root := t.TempDir()
	writeResume(t, root, "frontend", "Carol Diaz", "resume.txt",
		"Carol Diaz\nFrontend Developer\ncarol@example.com\n3 years of experience with React, TypeScript and CSS.")
	writeResume(t, root, "frontend", "Dan Wu", "resume.txt",
		"Dan Wu\nFrontend Developer\ndan@example.com\n5 years of experience with JavaScript and HTML.")

	f := newPipelineFixture(t)
	ctx := context.Background()
	p := f.newPipeline(t, &stubBuilder{}, &stubBuilder{})

	status, err := p.Parse(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Documents)

	vacancies, err := f.vacancies.ListVacancies(ctx)
	require.NoError(t, err)
	require.Len(t, vacancies, 1, "one vacancy per role category, not per candidate")
	assert.Equal(t, "VAC_frontend", vacancies[0].Id)
	assert.Equal(t, core.VacancyOpen, vacancies[0].Status)
}
