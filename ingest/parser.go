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


package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Swetcha17/recruitment-automation/core"
)

// defaultMinTextLength is the character count below which a resume is
// rejected as malformed.
const defaultMinTextLength = 50

// Parser turns plain-text resume files into candidate profiles.
type Parser struct {
	minTextLength int
	logger        *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMinTextLength sets the threshold below which a resume is rejected as
// malformed. Default is 50 characters.
func WithMinTextLength(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.minTextLength = n
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// NewParser creates a resume parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		minTextLength: defaultMinTextLength,
		logger:        slog.Default().With("component", "resume-parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts a structured profile from resume text. The returned
// profile carries no Id; the store derives one from SourceFile.
func (p *Parser) Parse(text, sourceFile, roleCategory, candidateName string) (*core.CandidateProfile, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < p.minTextLength {
		return nil, fmt.Errorf("%w: %s has %d characters of text, need at least %d",
			core.ErrMalformedDocument, sourceFile, len(trimmed), p.minTextLength)
	}

	var titles []string
	if roleCategory != "" {
		titles = []string{roleCategory}
	}

	return &core.CandidateProfile{
		Name:            candidateName,
		Email:           extractEmail(trimmed),
		Phone:           extractPhone(trimmed),
		RoleCategory:    roleCategory,
		CurrentTitle:    extractTitle(trimmed),
		Titles:          titles,
		Skills:          extractSkills(trimmed),
		ExperienceYears: extractExperienceYears(trimmed),
		Location:        extractLocation(trimmed),
		WorkAuth:        extractWorkAuth(trimmed),
		ResumeText:      trimmed,
		Snippet:         makeSnippet(trimmed),
		SourceFile:      sourceFile,
		ContentHash:     core.HashContent(trimmed),
		Stage:           core.StageUploaded,
	}, nil
}

// ParseFile reads and parses one resume from disk.
func (p *Parser) ParseFile(filePath, sourceFile, roleCategory, candidateName string) (*core.CandidateProfile, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", sourceFile, err)
	}
	return p.Parse(string(raw), sourceFile, roleCategory, candidateName)
}
