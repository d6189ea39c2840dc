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


package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file consulted when Load is called with an
// empty path.
const DefaultPath = "config.yaml"

// Config holds the full recruitment system configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Resumes   ResumesConfig   `yaml:"resumes"`
	Index     IndexConfig     `yaml:"index"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HTTPConfig holds API server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StorageConfig holds the candidate database settings.
type StorageConfig struct {
	Dir string `yaml:"dir"` // Badger data directory
}

// ResumesConfig holds resume tree ingestion settings.
type ResumesConfig struct {
	Dir           string `yaml:"dir"`             // root of the role-folder tree
	MinTextLength int    `yaml:"min_text_length"` // resumes shorter than this are skipped
}

// IndexConfig holds semantic index settings.
type IndexConfig struct {
	SegmentDir string `yaml:"segment_dir"` // vector segment files; empty = in-memory only
	MinTokens  int    `yaml:"min_tokens"`  // documents with fewer tokens are skipped
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // tfidf (default, fully local), openai
	Host       string `yaml:"host"`     // OpenAI-compatible base URL, openai provider only
	Model      string `yaml:"model"`    // embedding model identifier, openai provider only
	Dimensions int    `yaml:"dimensions"`
}

// SearchConfig holds defaults for search requests that do not specify
// their own.
type SearchConfig struct {
	DefaultK       int     `yaml:"default_k"`
	MaxK           int     `yaml:"max_k"`
	Mode           string  `yaml:"mode"` // hybrid, semantic, keyword
	SemanticWeight float64 `yaml:"semantic_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
}

// PipelineConfig holds index build settings.
type PipelineConfig struct {
	StageTimeoutSec int `yaml:"stage_timeout_sec"` // deadline per build stage
	BatchSize       int `yaml:"batch_size"`
	Concurrency     int `yaml:"concurrency"` // 0 = half the CPUs
	MaxRetries      int `yaml:"max_retries"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from a YAML file. With an empty path it falls
// back to DefaultPath, and when that file does not exist it returns the
// built-in defaults so a fresh checkout runs without any config at all.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
		if !fileExists(path) {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Default returns the configuration a system runs with when no config file
// is present.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = filepath.Join("data", "db")
	}
	if c.Resumes.Dir == "" {
		c.Resumes.Dir = "resumes"
	}
	if c.Resumes.MinTextLength <= 0 {
		c.Resumes.MinTextLength = 50
	}
	if c.Index.SegmentDir == "" {
		c.Index.SegmentDir = filepath.Join("data", "segments")
	}
	if c.Index.MinTokens <= 0 {
		c.Index.MinTokens = 3
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "tfidf"
	}
	if c.Embedding.Host == "" {
		c.Embedding.Host = "http://localhost:11434/v1"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "embeddinggemma"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Search.DefaultK <= 0 {
		c.Search.DefaultK = 10
	}
	if c.Search.MaxK <= 0 {
		c.Search.MaxK = 100
	}
	if c.Search.Mode == "" {
		c.Search.Mode = "hybrid"
	}
	if c.Search.SemanticWeight == 0 && c.Search.KeywordWeight == 0 {
		c.Search.SemanticWeight = 0.5
		c.Search.KeywordWeight = 0.5
	}
	if c.Pipeline.StageTimeoutSec <= 0 {
		c.Pipeline.StageTimeoutSec = 600
	}
	if c.Pipeline.BatchSize <= 0 {
		c.Pipeline.BatchSize = 100
	}
	if c.Pipeline.MaxRetries <= 0 {
		c.Pipeline.MaxRetries = 3
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Embedding.Provider {
	case "tfidf", "openai":
		// ok
	default:
		return fmt.Errorf("embedding.provider must be \"tfidf\" or \"openai\", got %q", c.Embedding.Provider)
	}
	if c.Embedding.Provider == "openai" {
		if c.Embedding.Host == "" {
			return fmt.Errorf("embedding.host is required for the openai provider")
		}
		if c.Embedding.Model == "" {
			return fmt.Errorf("embedding.model is required for the openai provider")
		}
	}
	switch c.Search.Mode {
	case "hybrid", "semantic", "keyword":
		// ok
	default:
		return fmt.Errorf("search.mode must be \"hybrid\", \"semantic\" or \"keyword\", got %q", c.Search.Mode)
	}
	if c.Search.SemanticWeight < 0 || c.Search.KeywordWeight < 0 {
		return fmt.Errorf("search weights must not be negative, got semantic=%v keyword=%v",
			c.Search.SemanticWeight, c.Search.KeywordWeight)
	}
	if c.Search.MaxK < c.Search.DefaultK {
		return fmt.Errorf("search.max_k must be at least search.default_k, got %d < %d",
			c.Search.MaxK, c.Search.DefaultK)
	}
	if c.Pipeline.Concurrency < 0 {
		return fmt.Errorf("pipeline.concurrency must not be negative, got %d", c.Pipeline.Concurrency)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
