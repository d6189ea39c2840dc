package storage

import (
	"testing"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSerialization_RoundTrip(t *testing.T) {
	ingested := time.Date(2025, 6, 12, 9, 30, 0, 0, time.UTC)
	profile := &core.CandidateProfile{
		Id:              core.IDFromContent("resumes/data_engineer/jane_doe.txt"),
		Name:            "Jane Doe",
		Email:           "jane.doe@example.com",
		Phone:           "555-867-5309",
		RoleCategory:    "Data Engineer",
		CurrentTitle:    "Senior Data Engineer",
		Titles:          []string{"Data Engineer", "Backend Engineer"},
		Skills:          []string{"airflow", "python", "sql"},
		ExperienceYears: 6.5,
		Location:        "Austin, TX",
		WorkAuth:        "US Citizen",
		ResumeText:      "Built ETL pipelines in Python and SQL.",
		Snippet:         "Built ETL pipelines in Python and SQL.",
		SourceFile:      "resumes/data_engineer/jane_doe.txt",
		ContentHash:     core.HashContent("Built ETL pipelines in Python and SQL."),
		Stage:           core.StageReviewed,
		IngestedAt:      ingested,
	}

	data := MarshalProfile(profile)
	got, err := UnmarshalProfile(data)
	require.NoError(t, err)

	assert.Equal(t, profile.Id, got.Id)
	assert.Equal(t, profile.Name, got.Name)
	assert.Equal(t, profile.Skills, got.Skills)
	assert.Equal(t, profile.ExperienceYears, got.ExperienceYears)
	assert.Equal(t, profile.ContentHash, got.ContentHash)
	assert.Equal(t, profile.Stage, got.Stage)
	assert.True(t, got.IngestedAt.Equal(ingested), "IngestedAt mismatch: %v", got.IngestedAt)
}

func TestProfileSerialization_SparseProfile(t *testing.T) {
	// Extraction may find nothing beyond the raw text.
	profile := &core.CandidateProfile{
		Id:         42,
		ResumeText: "plain resume",
		SourceFile: "resumes/other/min.txt",
		Stage:      core.StageUploaded,
		IngestedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	data := MarshalProfile(profile)
	got, err := UnmarshalProfile(data)
	require.NoError(t, err)

	assert.Equal(t, profile.Id, got.Id)
	assert.Empty(t, got.Titles)
	assert.Empty(t, got.Skills)
	assert.Empty(t, got.Name)
}

func TestVacancySerialization_RoundTrip(t *testing.T) {
	created := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	vacancy := &core.Vacancy{
		Id:            "VAC_data_engineer",
		Title:         "Data Engineer",
		RoleCategory:  "Data Engineer",
		Description:   "Own the warehouse pipelines.",
		Skills:        []string{"python", "sql"},
		MinExperience: 3,
		Location:      "Remote",
		WorkAuth:      "US Citizen",
		Status:        core.VacancyOpen,
		Priority:      core.PriorityHigh,
		CandidateIds:  []core.ID{7, 11},
		CreatedAt:     created,
		UpdatedAt:     created.Add(time.Hour),
	}

	data := MarshalVacancy(vacancy)
	got, err := UnmarshalVacancy(data)
	require.NoError(t, err)

	assert.Equal(t, vacancy.Id, got.Id)
	assert.Equal(t, vacancy.Skills, got.Skills)
	assert.Equal(t, vacancy.WorkAuth, got.WorkAuth)
	assert.Equal(t, vacancy.Status, got.Status)
	assert.Equal(t, vacancy.Priority, got.Priority)
	assert.Equal(t, vacancy.CandidateIds, got.CandidateIds)
	assert.True(t, got.CreatedAt.Equal(vacancy.CreatedAt))
}

func TestBuildStatusSerialization_RoundTrip(t *testing.T) {
	started := time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC)
	status := &core.BuildStatus{
		Stage:      "semantic",
		State:      core.BuildFailed,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Documents:  120,
		Skipped:    3,
		Error:      "embedding service unreachable",
	}

	data := MarshalBuildStatus(status)
	got, err := UnmarshalBuildStatus(data)
	require.NoError(t, err)

	assert.Equal(t, status.Stage, got.Stage)
	assert.Equal(t, status.State, got.State)
	assert.Equal(t, status.Documents, got.Documents)
	assert.Equal(t, status.Skipped, got.Skipped)
	assert.Equal(t, status.Error, got.Error)
	assert.True(t, got.FinishedAt.Equal(status.FinishedAt))
}

func TestUnmarshalProfile_Truncated(t *testing.T) {
	profile := &core.CandidateProfile{
		Id:         7,
		ResumeText: "some text long enough to truncate",
		SourceFile: "resumes/other/x.txt",
		Stage:      core.StageUploaded,
		IngestedAt: time.Now().UTC(),
	}

	data := MarshalProfile(profile)
	_, err := UnmarshalProfile(data[:len(data)/2])
	assert.Error(t, err)
}
