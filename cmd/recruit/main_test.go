package main

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/metrics"
	"github.com/Swetcha17/recruitment-automation/pipeline"
)

func TestSearchCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "recruit",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
			},
		},
	}

	t.Run("query is required", func(t *testing.T) {
		err := app.Run([]string{"recruit", "search"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})
}

func TestVacancyCommandFlags(t *testing.T) {
	app := &cli.App{
		Name:     "recruit",
		Commands: []*cli.Command{vacancyCommand()},
	}

	t.Run("create requires a role", func(t *testing.T) {
		err := app.Run([]string{"recruit", "vacancy", "create"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "role")
	})

	t.Run("matches requires an id", func(t *testing.T) {
		err := app.Run([]string{"recruit", "vacancy", "matches"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id")
	})

	t.Run("assign requires a candidate", func(t *testing.T) {
		err := app.Run([]string{"recruit", "vacancy", "assign", "--id", "abc"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "candidate")
	})

	t.Run("assign rejects a non-numeric candidate id", func(t *testing.T) {
		err := app.Run([]string{"recruit", "vacancy", "assign", "--id", "abc", "--candidate", "bob"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid candidate id")
	})

	t.Run("update requires a status or priority", func(t *testing.T) {
		err := app.Run([]string{"recruit", "vacancy", "update", "--id", "abc"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--status or --priority")
	})
}

func TestConfigureLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, configureLogger(level))
			})
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, configureLogger(level))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := configureLogger("verbose")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "verbose")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := &cli.App{
			Name: "recruit",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				assert.Equal(t, "debug", c.String("log-level"))
				return nil
			},
		}
		require.NoError(t, app.Run([]string{"recruit", "-l", "debug"}))
	})
}

func TestRecordBuildMetrics(t *testing.T) {
	before := testutil.ToFloat64(metrics.ProfilesIngestedTotal)

	now := time.Now()
	recordBuildMetrics(
		nil,
		&core.BuildStatus{
			Stage:      pipeline.StageParse,
			State:      core.BuildSucceeded,
			StartedAt:  now.Add(-time.Second),
			FinishedAt: now,
			Documents:  7,
		},
		&core.BuildStatus{
			Stage:      pipeline.StageSemantic,
			State:      core.BuildFailed,
			StartedAt:  now.Add(-time.Second),
			FinishedAt: now,
			Error:      "embedder unreachable",
		},
	)

	assert.Equal(t, before+7, testutil.ToFloat64(metrics.ProfilesIngestedTotal))
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.BuildDocuments.WithLabelValues(pipeline.StageParse)))
	// Failed stages still record their duration.
	assert.Positive(t, testutil.CollectAndCount(metrics.BuildDuration))
}
