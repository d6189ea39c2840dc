package recruitment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swetcha17/recruitment-automation/config"
	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/embed/mock"
	"github.com/Swetcha17/recruitment-automation/search"
)

const dataEngineerResume = `Priya Raman
Senior Data Engineer
priya@example.com
Austin, TX 78701 | US Citizen
8 years of experience building data pipelines with Python, SQL and Airflow on AWS.`

const designerResume = `Marta Kowalski
Product Designer
marta@example.com
Remote
5 years of experience in product design with Figma, CSS and design systems.`

// testConfig returns the default config rooted in a fresh temp directory.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Storage.Dir = filepath.Join(root, "db")
	cfg.Index.SegmentDir = filepath.Join(root, "segments")
	cfg.Resumes.Dir = filepath.Join(root, "resumes")
	return cfg
}

func writeResume(t *testing.T, root string, parts ...string) {
	t.Helper()
	content := parts[len(parts)-1]
	path := filepath.Join(append([]string{root}, parts[:len(parts)-1]...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewSystem(t *testing.T) {
	t.Run("wires every component", func(t *testing.T) {
		sys, err := NewSystem(testConfig(t))
		require.NoError(t, err)
		require.NotNil(t, sys)
		defer sys.Close()

		assert.NotNil(t, sys.ProfileRepository())
		assert.NotNil(t, sys.VacancyRepository())
		assert.NotNil(t, sys.StatusRepository())
		assert.NotNil(t, sys.VacancyManager())
		assert.Equal(t, 8080, sys.Config().HTTP.Port)

		// The default TF-IDF provider runs without an embed worker pool.
		assert.Nil(t, sys.batch)

		searcher, err := sys.NewSearcher()
		require.NoError(t, err)
		assert.NotNil(t, searcher)

		pipe, err := sys.NewPipeline()
		require.NoError(t, err)
		assert.NotNil(t, pipe)

		reporter, err := sys.NewReporter()
		require.NoError(t, err)
		assert.NotNil(t, reporter)
	})

	t.Run("error when the storage path is a file", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Storage.Dir = filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(cfg.Storage.Dir, []byte("x"), 0o644))

		sys, err := NewSystem(cfg)
		assert.Error(t, err)
		assert.Nil(t, sys)
	})
}

func TestSystem_EndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	writeResume(t, cfg.Resumes.Dir, "data-engineering", "priya.txt", dataEngineerResume)
	writeResume(t, cfg.Resumes.Dir, "design", "marta.txt", designerResume)

	sys, err := NewSystem(cfg)
	require.NoError(t, err)

	pipe, err := sys.NewPipeline()
	require.NoError(t, err)

	statuses, err := pipe.Run(ctx, cfg.Resumes.Dir)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, status := range statuses {
		assert.Equal(t, core.BuildSucceeded, status.State, "stage %s", status.Stage)
		assert.Equal(t, 2, status.Documents, "stage %s", status.Stage)
	}

	searcher, err := sys.NewSearcher()
	require.NoError(t, err)

	resp, err := searcher.Search(ctx, "python data pipelines", search.Options{K: 5})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "data-engineering", resp.Results[0].Profile.RoleCategory)

	// Parsing derived one open vacancy per role folder.
	vacancies, err := sys.VacancyRepository().ListVacancies(ctx)
	require.NoError(t, err)
	require.Len(t, vacancies, 2)

	reporter, err := sys.NewReporter()
	require.NoError(t, err)
	report, err := reporter.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.PoolSize)
	assert.Equal(t, 2, report.ActiveVacancies)

	require.NoError(t, sys.Close())

	t.Run("reopen serves the persisted state", func(t *testing.T) {
		reopened, err := NewSystem(cfg)
		require.NoError(t, err)
		defer reopened.Close()

		count, err := reopened.ProfileRepository().CountProfiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		searcher, err := reopened.NewSearcher()
		require.NoError(t, err)

		// Both the semantic segment and the keyword postings survive a
		// restart without a rebuild.
		resp, err := searcher.Search(ctx, "python data pipelines", search.Options{K: 5})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Results)

		statuses, err := reopened.StatusRepository().ListStatuses(ctx)
		require.NoError(t, err)
		assert.Len(t, statuses, 3)
	})
}

func TestNewSystem_WithEmbedder(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	writeResume(t, cfg.Resumes.Dir, "data-engineering", "priya.txt", dataEngineerResume)

	sys, err := NewSystem(cfg, WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	defer sys.Close()

	// An injected embedder goes through the batched build path.
	require.NotNil(t, sys.batch)

	pipe, err := sys.NewPipeline()
	require.NoError(t, err)
	_, err = pipe.Run(ctx, cfg.Resumes.Dir)
	require.NoError(t, err)

	searcher, err := sys.NewSearcher()
	require.NoError(t, err)
	resp, err := searcher.Search(ctx, "data pipelines", search.Options{K: 3, Mode: search.ModeSemantic})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Results)
}
