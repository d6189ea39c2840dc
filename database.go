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


// Package recruitment wires the candidate store, both search indexes and
// the services on top of them into one System, the composition root shared
// by the CLI and the HTTP server.
package recruitment

import (
	"log/slog"
	"time"

	"github.com/Swetcha17/recruitment-automation/config"
	"github.com/Swetcha17/recruitment-automation/embed"
	"github.com/Swetcha17/recruitment-automation/embed/openai"
	"github.com/Swetcha17/recruitment-automation/index/keyword"
	"github.com/Swetcha17/recruitment-automation/index/semantic"
	"github.com/Swetcha17/recruitment-automation/ingest"
	"github.com/Swetcha17/recruitment-automation/kpi"
	"github.com/Swetcha17/recruitment-automation/pipeline"
	"github.com/Swetcha17/recruitment-automation/search"
	"github.com/Swetcha17/recruitment-automation/storage"
	"github.com/Swetcha17/recruitment-automation/storage/badger"
	"github.com/Swetcha17/recruitment-automation/vacancy"
)

// System owns the storage backend, the semantic and keyword indexes and the
// vacancy manager. Searchers, build pipelines and KPI reporters are created
// from it on demand and share its repositories.
type System struct {
	config    config.Config
	backend   *badger.Backend
	profiles  storage.ProfileRepository
	vacancies storage.VacancyRepository
	statuses  storage.StatusRepository
	semantic  *semantic.Index
	keyword   *keyword.Index
	batch     *pipeline.BatchEmbedder // nil with the built-in TF-IDF provider
	manager   *vacancy.Manager
	logger    *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	embedder embed.Embedder
	logger   *slog.Logger
}

// WithEmbedder overrides the embedding provider the config selects.
// Intended for tests injecting a mock; the embedder is still wrapped in the
// batched build path.
func WithEmbedder(e embed.Embedder) SystemOption {
	return func(o *systemOptions) {
		o.embedder = e
	}
}

// WithLogger sets the logger for the system and every service it creates.
func WithLogger(logger *slog.Logger) SystemOption {
	return func(o *systemOptions) {
		o.logger = logger
	}
}

// NewSystem opens the Badger store and the semantic segment directory named
// by the config and wires the repositories, indexes and vacancy manager.
// Close releases everything it opened.
func NewSystem(cfg config.Config, opts ...SystemOption) (*System, error) {
	// Apply options
	options := &systemOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Open backend
	backend, err := badger.OpenBackend(cfg.Storage.Dir, false)
	if err != nil {
		return nil, err
	}

	profiles, err := badger.NewProfileRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vacancies, err := badger.NewVacancyRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	statuses := badger.NewStatusRepository(backend)

	// The built-in TF-IDF model is fitted on the corpus at build time and
	// needs no embedding service. An external provider is wrapped in the
	// batched, pooled, retrying embedder.
	external := options.embedder
	if external == nil && cfg.Embedding.Provider == embed.ProviderOpenAI {
		external, err = openai.NewEmbedder(embed.NewConfig(
			embed.WithProvider(cfg.Embedding.Provider),
			embed.WithHost(cfg.Embedding.Host),
			embed.WithModel(cfg.Embedding.Model),
			embed.WithDimensions(cfg.Embedding.Dimensions),
		))
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	var batch *pipeline.BatchEmbedder
	if external != nil {
		batchCfg := pipeline.DefaultConfig()
		batchCfg.BatchSize = cfg.Pipeline.BatchSize
		batchCfg.MaxRetries = cfg.Pipeline.MaxRetries
		if cfg.Pipeline.Concurrency > 0 {
			batchCfg.Concurrency = cfg.Pipeline.Concurrency
		}
		batch, err = pipeline.NewBatchEmbedder(external,
			pipeline.WithBatchConfig(batchCfg),
			pipeline.WithBatchLogger(logger),
		)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	semOpts := []semantic.Option{
		semantic.WithDimensions(cfg.Embedding.Dimensions),
		semantic.WithMinTokens(cfg.Index.MinTokens),
	}
	if batch != nil {
		semOpts = append(semOpts, semantic.WithEmbedder(batch))
	}
	semanticIdx, err := semantic.New(cfg.Index.SegmentDir, semOpts...)
	if err != nil {
		if batch != nil {
			batch.Release()
		}
		backend.Close()
		return nil, err
	}

	keywordIdx, err := keyword.New(backend)
	if err != nil {
		if batch != nil {
			batch.Release()
		}
		backend.Close()
		return nil, err
	}

	manager, err := vacancy.NewManager(vacancies, profiles, vacancy.WithLogger(logger))
	if err != nil {
		if batch != nil {
			batch.Release()
		}
		backend.Close()
		return nil, err
	}

	return &System{
		config:    cfg,
		backend:   backend,
		profiles:  profiles,
		vacancies: vacancies,
		statuses:  statuses,
		semantic:  semanticIdx,
		keyword:   keywordIdx,
		batch:     batch,
		manager:   manager,
		logger:    logger,
	}, nil
}

// Close releases the embed worker pool and the storage backend.
func (s *System) Close() error {
	if s.batch != nil {
		s.batch.Release()
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

// Config returns the configuration the system was built with.
func (s *System) Config() config.Config {
	return s.config
}

func (s *System) ProfileRepository() storage.ProfileRepository {
	return s.profiles
}

func (s *System) VacancyRepository() storage.VacancyRepository {
	return s.vacancies
}

func (s *System) StatusRepository() storage.StatusRepository {
	return s.statuses
}

// VacancyManager returns the shared vacancy manager.
func (s *System) VacancyManager() *vacancy.Manager {
	return s.manager
}

// NewSearcher creates a search engine over the system's indexes.
func (s *System) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	base := []search.Option{search.WithLogger(s.logger)}
	return search.NewSearcher(s.profiles, s.semantic, s.keyword, append(base, opts...)...)
}

// NewPipeline creates an index build pipeline with the configured resume
// parser and stage timeout.
func (s *System) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	parser := ingest.NewParser(
		ingest.WithMinTextLength(s.config.Resumes.MinTextLength),
		ingest.WithLogger(s.logger),
	)
	base := []pipeline.Option{
		pipeline.WithParser(parser),
		pipeline.WithStageTimeout(time.Duration(s.config.Pipeline.StageTimeoutSec) * time.Second),
		pipeline.WithLogger(s.logger),
	}
	return pipeline.NewPipeline(s.profiles, s.statuses, s.manager, s.semantic, s.keyword, append(base, opts...)...)
}

// NewReporter creates a KPI reporter over the system's repositories.
func (s *System) NewReporter(opts ...kpi.Option) (*kpi.Reporter, error) {
	base := []kpi.Option{kpi.WithLogger(s.logger)}
	return kpi.NewReporter(s.profiles, s.vacancies, append(base, opts...)...)
}
