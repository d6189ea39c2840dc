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
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Swetcha17/recruitment-automation/embed"
)

// Config tunes the batched embedding path of the semantic build stage.
type Config struct {
	BatchSize      int           // texts per embedder call
	Concurrency    int           // batches in flight at once
	MaxRetries     int           // attempts per batch
	RetryDelay     time.Duration // base backoff delay, doubles per retry
	ReportInterval int           // progress report cadence, in texts
}

// DefaultConfig returns the batch tuning used when none is given.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		Concurrency:    max(runtime.NumCPU()/2, 1),
		MaxRetries:     3,
		RetryDelay:     time.Second,
		ReportInterval: 100,
	}
}

func (c *Config) validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.MaxRetries <= 0 {
		return ErrInvalidMaxAttempts
	}
	return nil
}

// BatchEmbedder fans a corpus out to an inner embedder in fixed-size batches
// on a worker pool, retrying each batch with exponential backoff. It
// implements embed.Embedder, so a semantic index can take it in place of the
// raw client. Intended for remote embedders; the built-in TF-IDF embedder is
// local and needs neither batching nor retry.
type BatchEmbedder struct {
	inner    embed.Embedder
	config   *Config
	pool     *ants.Pool
	progress io.Writer
	logger   *slog.Logger
}

var _ embed.Embedder = (*BatchEmbedder)(nil)

// BatchOption configures a BatchEmbedder.
type BatchOption func(*BatchEmbedder) error

// WithBatchConfig replaces the default batch tuning.
func WithBatchConfig(config *Config) BatchOption {
	return func(b *BatchEmbedder) error {
		if config == nil {
			config = DefaultConfig()
		}
		if err := config.validate(); err != nil {
			return err
		}
		b.config = config
		return nil
	}
}

// WithProgressWriter directs progress reporting to w, typically os.Stderr.
// Progress is discarded by default.
func WithProgressWriter(w io.Writer) BatchOption {
	return func(b *BatchEmbedder) error {
		if w == nil {
			w = io.Discard
		}
		b.progress = w
		return nil
	}
}

// WithBatchLogger sets the logger. Passing nil restores the default.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchEmbedder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatchEmbedder wraps inner with batching, concurrency and retry.
// Call Release when done to return the worker pool.
func NewBatchEmbedder(inner embed.Embedder, opts ...BatchOption) (*BatchEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}

	b := &BatchEmbedder{
		inner:    inner,
		config:   DefaultConfig(),
		progress: io.Discard,
		logger:   slog.Default().With("component", "batch-embedder"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(b.config.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("creating embed worker pool: %w", err)
	}
	b.pool = pool

	return b, nil
}

// Release returns the worker pool resources.
func (b *BatchEmbedder) Release() {
	b.pool.Release()
}

// EmbedText embeds a single text with retry.
func (b *BatchEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vector, embedErr = b.inner.EmbedText(ctx, text)
		return embedErr
	}, b.config.MaxRetries, b.config.RetryDelay)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// EmbedTexts embeds the whole corpus, batch by batch across the pool.
// Output order matches input order. The first batch failure aborts the
// remaining submissions and is returned after in-flight batches drain.
func (b *BatchEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	tracker := NewProgressTracker(b.progress, len(texts), b.config.ReportInterval)
	tracker.Start()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for start := 0; start < len(texts); start += b.config.BatchSize {
		if failed() {
			break
		}
		end := min(start+b.config.BatchSize, len(texts))
		batch := texts[start:end]
		rows := out[start:end]

		wg.Add(1)
		if err := b.pool.Submit(func() {
			defer wg.Done()
			vectors, err := b.embedBatch(ctx, batch)
			if err != nil {
				fail(err)
				return
			}
			copy(rows, vectors)
			tracker.Add(len(batch))
		}); err != nil {
			wg.Done()
			fail(fmt.Errorf("submitting embed batch: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	tracker.Finish()
	b.logger.Debug("corpus embedded",
		"texts", len(texts),
		"batchSize", b.config.BatchSize,
		"elapsed", tracker.Elapsed())
	return out, nil
}

// embedBatch embeds one batch with retry and verifies the embedder kept the
// text-to-vector alignment.
func (b *BatchEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = b.inner.EmbedTexts(ctx, batch)
		return embedErr
	}, b.config.MaxRetries, b.config.RetryDelay)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(batch))
	}
	return vectors, nil
}
