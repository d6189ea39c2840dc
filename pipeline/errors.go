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
	"errors"
	"fmt"
)

var (
	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrStatusRepositoryRequired is returned when a status repository is not provided.
	ErrStatusRepositoryRequired = errors.New("status repository required")

	// ErrVacancyManagerRequired is returned when a vacancy manager is not provided.
	ErrVacancyManagerRequired = errors.New("vacancy manager required")

	// ErrSemanticIndexRequired is returned when a semantic index builder is not provided.
	ErrSemanticIndexRequired = errors.New("semantic index required")

	// ErrKeywordIndexRequired is returned when a keyword index builder is not provided.
	ErrKeywordIndexRequired = errors.New("keyword index required")

	// ErrEmbedderRequired is returned when a batch embedder is created without
	// an inner embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrBuildTimeout is returned when a stage exceeds its time budget.
	ErrBuildTimeout = errors.New("build stage timed out")

	// ErrInvalidMaxAttempts is returned when RetryWithBackoff is called with
	// a non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)

// StageError reports which pipeline stage failed. The other stages' last
// good index versions stay untouched and queryable.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
