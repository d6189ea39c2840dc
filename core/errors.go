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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidProfile indicates a CandidateProfile failed validation.
	ErrInvalidProfile = errors.New("invalid candidate profile")

	// ErrInvalidVacancy indicates a Vacancy failed validation.
	ErrInvalidVacancy = errors.New("invalid vacancy")

	// ErrMalformedDocument indicates a source document could not be turned
	// into a usable profile. Ingestion skips such documents with a warning.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrEmptyContent indicates the resume text is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrInvalidStage indicates an invalid Stage value.
	ErrInvalidStage = errors.New("invalid funnel stage")

	// ErrInvalidVacancyStatus indicates an invalid VacancyStatus value.
	ErrInvalidVacancyStatus = errors.New("invalid vacancy status")

	// ErrInvalidVacancyPriority indicates an invalid VacancyPriority value.
	ErrInvalidVacancyPriority = errors.New("invalid vacancy priority")

	// ErrEmptySourceFile indicates the SourceFile field is empty.
	ErrEmptySourceFile = errors.New("source file cannot be empty")

	// ErrEmptyVacancyTitle indicates the vacancy Title field is empty.
	ErrEmptyVacancyTitle = errors.New("vacancy title cannot be empty")
)
