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


package embed

import (
	"errors"
	"fmt"
	"strings"
)

// Provider identifies the embedding backend.
const (
	// ProviderTFIDF fits a deterministic TF-IDF vectorizer on the candidate
	// corpus at build time. Requires no external services.
	ProviderTFIDF = "tfidf"

	// ProviderOpenAI uses an OpenAI-compatible embedding API
	// (Ollama, LocalAI, vLLM, OpenAI itself).
	ProviderOpenAI = "openai"
)

// Config holds configuration for embedding providers.
type Config struct {
	// Provider selects the embedding backend.
	// Example: "tfidf" (default, fully local), "openai"
	Provider string

	// Host is the base URL for the embedding service API.
	// Only used when Provider is "openai".
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	Host string

	// Model is the model identifier to use for text embeddings.
	// Only used when Provider is "openai".
	// Example: "embeddinggemma", "text-embedding-3-small"
	Model string

	// Dimensions is the length of the vectors the provider produces.
	// For "tfidf" it caps the fitted vocabulary size.
	// Default: 384
	Dimensions int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider selects the embedding backend.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithHost sets the embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the embedding model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithDimensions sets the embedding vector length.
func WithDimensions(dims int) ConfigOption {
	return func(c *Config) {
		c.Dimensions = dims
	}
}

// DefaultConfig returns a Config with sensible defaults. The default provider
// is the corpus-fitted TF-IDF vectorizer, so a fresh install needs no external
// embedding service. The host and model defaults target a local
// OpenAI-compatible server for when the provider is switched.
func DefaultConfig() *Config {
	return &Config{
		Provider:   ProviderTFIDF,
		Host:       "http://localhost:11434/v1",
		Model:      "embeddinggemma",
		Dimensions: 384,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithProvider(ProviderOpenAI),
//       WithHost("http://localhost:11434/v1"),
//       WithModel("text-embedding-3-small"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	// Ensure Host ends with /v1 for OpenAI-compatible APIs
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	// Normalize first to ensure the host is in correct format
	c.Normalize()

	switch c.Provider {
	case ProviderTFIDF:
		// No service settings required; the vectorizer is fitted at build time.
	case ProviderOpenAI:
		if c.Host == "" {
			return errors.New("embed config: Host is required for the openai provider")
		}
		if c.Model == "" {
			return errors.New("embed config: Model is required for the openai provider")
		}
	default:
		return fmt.Errorf("embed config: unknown provider %q", c.Provider)
	}
	if c.Dimensions <= 0 {
		return errors.New("embed config: Dimensions must be positive")
	}
	return nil
}
