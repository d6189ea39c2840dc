package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
)

func testProfile(sourceFile, text string) *core.CandidateProfile {
	return &core.CandidateProfile{
		Name:         "Test Candidate",
		RoleCategory: "Data Engineer",
		ResumeText:   text,
		SourceFile:   sourceFile,
	}
}

func TestProfileRepository_PutAndGet(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	profile := testProfile("resumes/data_engineer/a.txt", "Python and SQL pipelines.")
	put, err := profileRepo.PutProfiles(ctx, profile)
	require.NoError(t, err)
	require.Len(t, put, 1)

	// Id derived from the source path, timestamps and hash populated.
	assert.Equal(t, core.IDFromContent("resumes/data_engineer/a.txt"), put[0].Id)
	assert.Equal(t, core.StageUploaded, put[0].Stage)
	assert.False(t, put[0].IngestedAt.IsZero())
	assert.NotZero(t, put[0].ContentHash)

	got, err := profileRepo.GetProfile(ctx, put[0].Id)
	require.NoError(t, err)
	assert.Equal(t, put[0].Name, got.Name)
	assert.Equal(t, put[0].ResumeText, got.ResumeText)
}

func TestProfileRepository_GetMissing(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	_, err = profileRepo.GetProfile(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfileRepository_PutReplaces(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	first := testProfile("resumes/data_engineer/a.txt", "Original resume text.")
	_, err = profileRepo.PutProfiles(ctx, first)
	require.NoError(t, err)

	// Same source file, new content: last write wins under the same Id.
	second := testProfile("resumes/data_engineer/a.txt", "Updated resume text with Spark.")
	second.IngestedAt = first.IngestedAt.Add(time.Second)
	_, err = profileRepo.PutProfiles(ctx, second)
	require.NoError(t, err)

	got, err := profileRepo.GetProfile(ctx, first.Id)
	require.NoError(t, err)
	assert.Equal(t, "Updated resume text with Spark.", got.ResumeText)
	assert.NotEqual(t, first.ContentHash, got.ContentHash)

	count, err := profileRepo.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "replacement must not leave a duplicate time index entry")
}

func TestProfileRepository_AllProfilesOrdering(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// Insert out of ingestion order.
	for i, name := range []string{"c.txt", "a.txt", "b.txt"} {
		p := testProfile("resumes/data_engineer/"+name, "resume "+name)
		p.IngestedAt = base.Add(time.Duration([]int{3, 1, 2}[i]) * time.Minute)
		_, err := profileRepo.PutProfiles(ctx, p)
		require.NoError(t, err)
	}

	var files []string
	for profile, err := range profileRepo.AllProfiles(ctx) {
		require.NoError(t, err)
		files = append(files, profile.SourceFile)
	}

	assert.Equal(t, []string{
		"resumes/data_engineer/a.txt",
		"resumes/data_engineer/b.txt",
		"resumes/data_engineer/c.txt",
	}, files, "iteration must follow ingestion time")
}

func TestProfileRepository_AllProfilesRestartable(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		_, err := profileRepo.PutProfiles(ctx, testProfile("resumes/x/"+name, "resume "+name))
		require.NoError(t, err)
	}

	seq := profileRepo.AllProfiles(ctx)

	// Break out early once, then range again from the start.
	first := ""
	for profile, err := range seq {
		require.NoError(t, err)
		first = profile.SourceFile
		break
	}

	count := 0
	restartedFirst := ""
	for profile, err := range seq {
		require.NoError(t, err)
		if count == 0 {
			restartedFirst = profile.SourceFile
		}
		count++
	}

	assert.Equal(t, 3, count)
	assert.Equal(t, first, restartedFirst)
}

func TestProfileRepository_GetRecentProfiles(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		p := testProfile("resumes/x/"+string(rune('a'+i))+".txt", "resume")
		p.IngestedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := profileRepo.PutProfiles(ctx, p)
		require.NoError(t, err)
	}

	recent, err := profileRepo.GetRecentProfiles(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "resumes/x/e.txt", recent[0].SourceFile)
	assert.Equal(t, "resumes/x/d.txt", recent[1].SourceFile)

	_, err = profileRepo.GetRecentProfiles(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestProfileRepository_GetProfilesByRole(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	engineer := testProfile("resumes/data_engineer/a.txt", "python resume")
	designer := testProfile("resumes/designer/b.txt", "figma resume")
	designer.RoleCategory = "Designer"

	_, err = profileRepo.PutProfiles(ctx, engineer, designer)
	require.NoError(t, err)

	engineers, err := profileRepo.GetProfilesByRole(ctx, "Data Engineer")
	require.NoError(t, err)
	require.Len(t, engineers, 1)
	assert.Equal(t, engineer.Id, engineers[0].Id)

	designers, err := profileRepo.GetProfilesByRole(ctx, "Designer")
	require.NoError(t, err)
	require.Len(t, designers, 1)
	assert.Equal(t, designer.Id, designers[0].Id)
}

func TestProfileRepository_UpdateStage(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	profile := testProfile("resumes/x/a.txt", "resume")
	_, err = profileRepo.PutProfiles(ctx, profile)
	require.NoError(t, err)

	updated, err := profileRepo.UpdateStage(ctx, profile.Id, core.StageInterviewed)
	require.NoError(t, err)
	assert.Equal(t, core.StageInterviewed, updated.Stage)

	got, err := profileRepo.GetProfile(ctx, profile.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StageInterviewed, got.Stage)

	t.Run("missing profile", func(t *testing.T) {
		_, err := profileRepo.UpdateStage(ctx, core.ID(999), core.StageReviewed)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("invalid stage", func(t *testing.T) {
		_, err := profileRepo.UpdateStage(ctx, profile.Id, core.Stage(42))
		assert.ErrorIs(t, err, core.ErrInvalidStage)
	})
}

func TestProfileRepository_DeleteProfiles(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	profile := testProfile("resumes/x/a.txt", "resume")
	_, err = profileRepo.PutProfiles(ctx, profile)
	require.NoError(t, err)

	require.NoError(t, profileRepo.DeleteProfiles(ctx, profile.Id))

	_, err = profileRepo.GetProfile(ctx, profile.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	count, err := profileRepo.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = profileRepo.DeleteProfiles(ctx, profile.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfileRepository_RejectsInvalid(t *testing.T) {
	profileRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		backend.Close()
	}()

	// No source file: the Id cannot be derived.
	invalid := &core.CandidateProfile{ResumeText: "text"}
	_, err = profileRepo.PutProfiles(context.Background(), invalid)
	assert.ErrorIs(t, err, core.ErrInvalidProfile)
}
