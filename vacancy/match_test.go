package vacancy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
)

func dataVacancy() *core.Vacancy {
	return &core.Vacancy{
		Title:         "Senior Data Engineer",
		RoleCategory:  "data-engineering",
		Skills:        []string{"python", "sql", "airflow"},
		MinExperience: 4,
		WorkAuth:      "US Citizen",
		Status:        core.VacancyOpen,
		Priority:      core.PriorityHigh,
	}
}

func TestMatchScore(t *testing.T) {
	vacancy := dataVacancy()

	t.Run("full match", func(t *testing.T) {
		score := MatchScore(vacancy, &core.CandidateProfile{
			RoleCategory:    "Data-Engineering",
			Skills:          []string{"Python", "SQL", "Airflow", "aws"},
			ExperienceYears: 7,
			WorkAuth:        "us citizen",
		})
		// 20 role + 40 skills + 26 experience + 10 work auth.
		assert.InDelta(t, 96, score, 1e-9)
	})

	t.Run("partial skills", func(t *testing.T) {
		score := MatchScore(vacancy, &core.CandidateProfile{
			RoleCategory:    "data-engineering",
			Skills:          []string{"python", "spark"},
			ExperienceYears: 5,
			WorkAuth:        "Green Card",
		})
		assert.InDelta(t, 20+40.0/3+22, score, 1e-9)
	})

	t.Run("surplus experience is capped", func(t *testing.T) {
		score := MatchScore(vacancy, &core.CandidateProfile{
			RoleCategory:    "data-engineering",
			ExperienceYears: 20,
		})
		assert.InDelta(t, 20+30, score, 1e-9)
	})

	t.Run("below minimum experience", func(t *testing.T) {
		score := MatchScore(vacancy, &core.CandidateProfile{
			RoleCategory:    "design",
			ExperienceYears: 1,
			WorkAuth:        "OPT",
		})
		assert.Zero(t, score)
	})

	t.Run("no work auth requirement", func(t *testing.T) {
		open := dataVacancy()
		open.WorkAuth = ""
		score := MatchScore(open, &core.CandidateProfile{
			RoleCategory:    "data-engineering",
			ExperienceYears: 4,
			WorkAuth:        "H1B",
		})
		// Work authorization contributes nothing when the vacancy accepts any.
		assert.InDelta(t, 40, score, 1e-9)
	})
}

func TestMatches(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	f.store(t,
		&core.CandidateProfile{
			Id: 31, Name: "Alice Nguyen", RoleCategory: "data-engineering",
			Skills: []string{"python", "sql", "airflow", "aws"}, ExperienceYears: 7,
			WorkAuth:   "US Citizen",
			SourceFile: "data-engineering/alice.txt", ResumeText: "Data engineer.",
		},
		&core.CandidateProfile{
			Id: 32, Name: "Dave Park", RoleCategory: "data-engineering",
			Skills: []string{"python", "spark"}, ExperienceYears: 5,
			WorkAuth:   "Green Card",
			SourceFile: "data-engineering/dave.txt", ResumeText: "Data engineer.",
		},
		&core.CandidateProfile{
			Id: 33, Name: "Bob Lee", RoleCategory: "design",
			Skills: []string{"figma"}, ExperienceYears: 4,
			WorkAuth:   "H1B",
			SourceFile: "design/bob.txt", ResumeText: "Designer.",
		},
		&core.CandidateProfile{
			Id: 34, Name: "Zoe Hall", RoleCategory: "marketing",
			ExperienceYears: 1, WorkAuth: "OPT",
			SourceFile: "marketing/zoe.txt", ResumeText: "Marketer.",
		},
	)

	created, err := f.manager.Create(ctx, dataVacancy())
	require.NoError(t, err)

	matches, err := f.manager.Matches(ctx, created.Id, 10)
	require.NoError(t, err)

	ids := make([]core.ID, len(matches))
	for i, match := range matches {
		ids[i] = match.Profile.Id
	}
	assert.Equal(t, []core.ID{31, 32, 33}, ids)
	assert.InDelta(t, 96, matches[0].Score, 1e-9)
	assert.Greater(t, matches[1].Score, matches[2].Score)

	t.Run("limit truncates", func(t *testing.T) {
		top, err := f.manager.Matches(ctx, created.Id, 1)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, core.ID(31), top[0].Profile.Id)
	})

	t.Run("assigned candidates are excluded", func(t *testing.T) {
		_, err := f.manager.Assign(ctx, created.Id, 31)
		require.NoError(t, err)

		rest, err := f.manager.Matches(ctx, created.Id, 10)
		require.NoError(t, err)
		for _, match := range rest {
			assert.NotEqual(t, core.ID(31), match.Profile.Id)
		}
	})

	t.Run("unknown vacancy", func(t *testing.T) {
		_, err := f.manager.Matches(ctx, "VAC_nope", 10)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestMatches_TieBreakById(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	// Stored in reverse Id order so ranking cannot ride on insertion order.
	f.store(t,
		&core.CandidateProfile{
			Id: 42, Name: "Taylor Reed", RoleCategory: "frontend",
			ExperienceYears: 3, SourceFile: "frontend/taylor.txt", ResumeText: "Frontend developer.",
		},
		&core.CandidateProfile{
			Id: 41, Name: "Jordan Kim", RoleCategory: "frontend",
			ExperienceYears: 3, SourceFile: "frontend/jordan.txt", ResumeText: "Frontend developer.",
		},
	)

	created, err := f.manager.Create(ctx, &core.Vacancy{
		RoleCategory:  "frontend",
		MinExperience: 2,
	})
	require.NoError(t, err)

	matches, err := f.manager.Matches(ctx, created.Id, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, core.ID(41), matches[0].Profile.Id)
	assert.Equal(t, core.ID(42), matches[1].Profile.Id)
	assert.InDelta(t, matches[0].Score, matches[1].Score, 1e-9)
}
