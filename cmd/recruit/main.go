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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	recruitment "github.com/Swetcha17/recruitment-automation"
	"github.com/Swetcha17/recruitment-automation/config"
	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/metrics"
	"github.com/Swetcha17/recruitment-automation/pipeline"
	"github.com/Swetcha17/recruitment-automation/search"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "recruit",
		Usage: "Hybrid candidate search over a local resume corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "parse",
				Usage:  "Parse the resume tree into the candidate store",
				Action: parseCommand,
				Flags:  []cli.Flag{resumesFlag()},
			},
			{
				Name:   "build-semantic",
				Usage:  "Rebuild the semantic index over every stored candidate",
				Action: buildSemanticCommand,
			},
			{
				Name:   "build-keyword",
				Usage:  "Rebuild the keyword index over every stored candidate",
				Action: buildKeywordCommand,
			},
			{
				Name:   "build",
				Usage:  "Run the full pipeline: parse, then both index builds",
				Action: buildCommand,
				Flags:  []cli.Flag{resumesFlag()},
			},
			{
				Name:      "search",
				Usage:     "Search the candidate pool",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "k",
						Aliases: []string{"n"},
						Usage:   "Number of results (defaults to the configured value)",
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Search mode (hybrid, semantic, keyword)",
					},
					&cli.Float64Flag{
						Name:  "semantic-weight",
						Usage: "Weight of the semantic score in hybrid mode",
					},
					&cli.Float64Flag{
						Name:  "keyword-weight",
						Usage: "Weight of the keyword score in hybrid mode",
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Restrict results to a role category",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Restrict results to a location",
					},
					&cli.StringFlag{
						Name:  "work-auth",
						Usage: "Restrict results to a work authorization",
					},
					&cli.Float64Flag{
						Name:  "min-experience",
						Usage: "Restrict results to a minimum of experience years",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Listen port (overrides config)",
					},
				},
			},
			vacancyCommand(),
			{
				Name:   "status",
				Usage:  "Show the last run of every pipeline stage",
				Action: statusCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func resumesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "resumes",
		Aliases: []string{"r"},
		Usage:   "Resume tree root (overrides config)",
	}
}

func parseCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipe, err := sys.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	status, err := pipe.Parse(c.Context, resumesRoot(c, sys.Config()))
	recordBuildMetrics(status)
	printStatus(status)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	return nil
}

func buildSemanticCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipe, err := sys.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	status, err := pipe.BuildSemantic(c.Context)
	recordBuildMetrics(status)
	printStatus(status)
	if err != nil {
		return fmt.Errorf("semantic build failed: %w", err)
	}
	return nil
}

func buildKeywordCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipe, err := sys.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	status, err := pipe.BuildKeyword(c.Context)
	recordBuildMetrics(status)
	printStatus(status)
	if err != nil {
		return fmt.Errorf("keyword build failed: %w", err)
	}
	return nil
}

func buildCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipe, err := sys.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	statuses, err := pipe.Run(c.Context, resumesRoot(c, sys.Config()))
	recordBuildMetrics(statuses...)
	for _, status := range statuses {
		printStatus(status)
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	searcher, err := sys.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	cfg := sys.Config()
	opts := search.Options{
		K:    cfg.Search.DefaultK,
		Mode: search.Mode(cfg.Search.Mode),
		Weights: search.Weights{
			Semantic: cfg.Search.SemanticWeight,
			Keyword:  cfg.Search.KeywordWeight,
		},
		Filters: search.Filters{
			RoleCategory:  c.String("role"),
			Location:      c.String("location"),
			WorkAuth:      c.String("work-auth"),
			MinExperience: c.Float64("min-experience"),
		},
	}
	if k := c.Int("k"); k > 0 {
		opts.K = k
	}
	if mode := c.String("mode"); mode != "" {
		opts.Mode = search.Mode(mode)
	}
	if c.IsSet("semantic-weight") {
		opts.Weights.Semantic = c.Float64("semantic-weight")
	}
	if c.IsSet("keyword-weight") {
		opts.Weights.Keyword = c.Float64("keyword-weight")
	}

	resp, err := searcher.Search(c.Context, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(resp.Results))
	if resp.Degraded {
		fmt.Printf("note: %s index empty, results served from the other index\n", resp.DegradedIndex)
	}
	for i, hit := range resp.Results {
		p := hit.Profile
		fmt.Printf("%d: %s (%d) [%0.3f]\n", i+1, p.Name, p.Id, hit.Score)
		detail := p.CurrentTitle
		if detail == "" {
			detail = p.RoleCategory
		} else if p.RoleCategory != "" {
			detail += ", " + p.RoleCategory
		}
		if p.ExperienceYears > 0 {
			detail += fmt.Sprintf(", %.1f yrs", p.ExperienceYears)
		}
		if detail != "" {
			fmt.Printf("   %s\n", detail)
		}
		if p.Snippet != "" {
			fmt.Printf("   %s\n", p.Snippet)
		}
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	statuses, err := sys.StatusRepository().ListStatuses(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list statuses: %w", err)
	}
	if len(statuses) == 0 {
		fmt.Println("No pipeline stage has run yet")
		return nil
	}
	for _, status := range statuses {
		printStatus(status)
	}
	return nil
}

// openSystem loads the config and opens every shared component. Callers own
// the returned system and must Close it.
func openSystem(c *cli.Context) (*recruitment.System, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	sys, err := recruitment.NewSystem(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open system: %w", err)
	}
	return sys, nil
}

// loadConfig reads the YAML config and re-levels the default logger when the
// config asks for a level the --log-level flag did not explicitly override.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if !c.IsSet("log-level") {
		if err := configureLogger(cfg.Logging.Level); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func resumesRoot(c *cli.Context, cfg config.Config) string {
	if root := c.String("resumes"); root != "" {
		return root
	}
	return cfg.Resumes.Dir
}

func printStatus(status *core.BuildStatus) {
	if status == nil {
		return
	}
	took := status.FinishedAt.Sub(status.StartedAt).Round(time.Millisecond)
	fmt.Printf("%-9s %-9s documents=%d skipped=%d took=%s\n",
		status.Stage, status.State, status.Documents, status.Skipped, took)
	if status.Error != "" {
		fmt.Printf("  error: %s\n", status.Error)
	}
}

// recordBuildMetrics feeds stage outcomes into the build collectors so a
// scrape or push from this process reflects the run.
func recordBuildMetrics(statuses ...*core.BuildStatus) {
	for _, status := range statuses {
		if status == nil {
			continue
		}
		metrics.BuildDuration.WithLabelValues(status.Stage).Observe(status.FinishedAt.Sub(status.StartedAt).Seconds())
		metrics.BuildDocuments.WithLabelValues(status.Stage).Set(float64(status.Documents))
		if status.Stage == pipeline.StageParse && status.State == core.BuildSucceeded {
			metrics.ProfilesIngestedTotal.Add(float64(status.Documents))
		}
	}
}

func setupLogger(c *cli.Context) error {
	return configureLogger(c.String("log-level"))
}

func configureLogger(levelStr string) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
