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


package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/index"
	"github.com/Swetcha17/recruitment-automation/ingest"
	"github.com/Swetcha17/recruitment-automation/storage"
	"github.com/Swetcha17/recruitment-automation/vacancy"
)

// Stage names recorded in build status and used in stage errors.
const (
	StageParse    = "parse"
	StageSemantic = "semantic"
	StageKeyword  = "keyword"
)

// defaultStageTimeout bounds a single stage run.
const defaultStageTimeout = 10 * time.Minute

// Builder rebuilds one index over the full document set. Both candidate
// indexes satisfy it.
type Builder interface {
	Build(ctx context.Context, docs []*core.CandidateProfile) (index.BuildInfo, error)
}

// Pipeline drives the three build stages: parse the resume tree into the
// store, rebuild the semantic index, rebuild the keyword index. Stages are
// isolated: one failing leaves the others' last good versions serving.
type Pipeline struct {
	profiles     storage.ProfileRepository
	statuses     storage.StatusRepository
	vacancies    *vacancy.Manager
	semantic     Builder
	keyword      Builder
	parser       *ingest.Parser
	stageTimeout time.Duration
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithParser replaces the default resume parser.
func WithParser(parser *ingest.Parser) Option {
	return func(p *Pipeline) error {
		if parser == nil {
			return errors.New("parser must not be nil")
		}
		p.parser = parser
		return nil
	}
}

// WithStageTimeout sets the per-stage time budget. Zero disables the budget
// and stages run until the caller's context says otherwise.
func WithStageTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		if timeout < 0 {
			return fmt.Errorf("stage timeout must not be negative, got %s", timeout)
		}
		p.stageTimeout = timeout
		return nil
	}
}

// WithLogger sets the logger. Passing nil restores the default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a build pipeline over the given store, vacancy manager
// and index builders.
func NewPipeline(profiles storage.ProfileRepository, statuses storage.StatusRepository, vacancies *vacancy.Manager, semanticIdx, keywordIdx Builder, opts ...Option) (*Pipeline, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if statuses == nil {
		return nil, ErrStatusRepositoryRequired
	}
	if vacancies == nil {
		return nil, ErrVacancyManagerRequired
	}
	if semanticIdx == nil {
		return nil, ErrSemanticIndexRequired
	}
	if keywordIdx == nil {
		return nil, ErrKeywordIndexRequired
	}

	p := &Pipeline{
		profiles:     profiles,
		statuses:     statuses,
		vacancies:    vacancies,
		semantic:     semanticIdx,
		keyword:      keywordIdx,
		parser:       ingest.NewParser(),
		stageTimeout: defaultStageTimeout,
		logger:       slog.Default().With("component", "pipeline"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run executes parse, semantic and keyword in order. A parse failure stops
// the run: rebuilding indexes over a store the parse could not refresh would
// quietly serve stale candidates. The index stages are independent of each
// other; their errors are joined. The returned statuses cover every stage
// that ran, in order.
func (p *Pipeline) Run(ctx context.Context, root string) ([]*core.BuildStatus, error) {
	parseStatus, err := p.Parse(ctx, root)
	statuses := []*core.BuildStatus{parseStatus}
	if err != nil {
		return statuses, err
	}

	semanticStatus, semanticErr := p.BuildSemantic(ctx)
	statuses = append(statuses, semanticStatus)

	keywordStatus, keywordErr := p.BuildKeyword(ctx)
	statuses = append(statuses, keywordStatus)

	return statuses, errors.Join(semanticErr, keywordErr)
}

// Parse scans the resume tree under root, stores every extracted profile and
// derives an open vacancy per role category seen. Re-running over the same
// tree rewrites the same records: ids are derived from source paths.
func (p *Pipeline) Parse(ctx context.Context, root string) (*core.BuildStatus, error) {
	return p.runStage(ctx, StageParse, func(ctx context.Context) (int, int, error) {
		profiles, stats, err := p.parser.ParseTree(ctx, root)
		if err != nil {
			return 0, 0, err
		}
		if len(profiles) > 0 {
			if _, err := p.profiles.PutProfiles(ctx, profiles...); err != nil {
				return 0, 0, fmt.Errorf("storing parsed profiles: %w", err)
			}
		}
		if err := p.deriveVacancies(ctx, profiles); err != nil {
			return 0, 0, err
		}
		return stats.Parsed, stats.Skipped, nil
	})
}

// BuildSemantic rebuilds the semantic index over every stored profile.
func (p *Pipeline) BuildSemantic(ctx context.Context) (*core.BuildStatus, error) {
	return p.buildIndex(ctx, StageSemantic, p.semantic)
}

// BuildKeyword rebuilds the keyword index over every stored profile.
func (p *Pipeline) BuildKeyword(ctx context.Context) (*core.BuildStatus, error) {
	return p.buildIndex(ctx, StageKeyword, p.keyword)
}

func (p *Pipeline) buildIndex(ctx context.Context, stage string, builder Builder) (*core.BuildStatus, error) {
	return p.runStage(ctx, stage, func(ctx context.Context) (int, int, error) {
		docs, err := p.storedProfiles(ctx)
		if err != nil {
			return 0, 0, err
		}
		info, err := builder.Build(ctx, docs)
		if err != nil {
			return 0, 0, err
		}
		return info.Documents, info.Skipped, nil
	})
}

// runStage runs fn under the stage time budget and records the outcome in
// the status repository. Budget overruns surface as ErrBuildTimeout; a
// caller-side cancellation passes through untouched.
func (p *Pipeline) runStage(ctx context.Context, stage string, fn func(ctx context.Context) (documents, skipped int, err error)) (*core.BuildStatus, error) {
	stageCtx := ctx
	cancel := context.CancelFunc(func() {})
	if p.stageTimeout > 0 {
		stageCtx, cancel = context.WithTimeout(ctx, p.stageTimeout)
	}
	defer cancel()

	status := &core.BuildStatus{
		Stage:     stage,
		StartedAt: time.Now().UTC(),
	}

	documents, skipped, err := fn(stageCtx)
	status.FinishedAt = time.Now().UTC()
	status.Documents = documents
	status.Skipped = skipped

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w: stage exceeded %s", ErrBuildTimeout, p.stageTimeout)
		}
		status.State = core.BuildFailed
		status.Error = err.Error()
		p.recordStatus(context.WithoutCancel(ctx), status)
		p.logger.Error("pipeline stage failed", "stage", stage, "err", err)
		return status, &StageError{Stage: stage, Err: err}
	}

	status.State = core.BuildSucceeded
	p.recordStatus(context.WithoutCancel(ctx), status)
	p.logger.Info("pipeline stage finished",
		"stage", stage,
		"documents", documents,
		"skipped", skipped,
		"elapsed", status.FinishedAt.Sub(status.StartedAt))
	return status, nil
}

// recordStatus persists the stage outcome. Bookkeeping failures are logged,
// never escalated: the build result matters more than its record.
func (p *Pipeline) recordStatus(ctx context.Context, status *core.BuildStatus) {
	if err := p.statuses.PutStatus(ctx, status); err != nil {
		p.logger.Warn("failed to record build status", "stage", status.Stage, "err", err)
	}
}

// deriveVacancies opens a vacancy per distinct role category in the parsed
// profiles, in first-seen order.
func (p *Pipeline) deriveVacancies(ctx context.Context, profiles []*core.CandidateProfile) error {
	seen := make(map[string]bool)
	var roles []string
	for _, profile := range profiles {
		role := profile.RoleCategory
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	_, err := p.vacancies.EnsureOpenForRoles(ctx, roles)
	return err
}

func (p *Pipeline) storedProfiles(ctx context.Context) ([]*core.CandidateProfile, error) {
	var profiles []*core.CandidateProfile
	for profile, err := range p.profiles.AllProfiles(ctx) {
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
