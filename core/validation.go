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

import (
	"fmt"
	"time"
)

// ValidateProfile validates a CandidateProfile according to domain rules.
//
// Validation rules:
//   - SourceFile must not be empty (the Id is derived from it)
//   - ResumeText must not be empty
//   - Stage must be valid
//   - IngestedAt must not be in the future
//
// NOT validated (populated by extraction, may legitimately be absent):
//   - Name, Email, Phone, Location, WorkAuth
//   - Titles, Skills, ExperienceYears
func ValidateProfile(profile *CandidateProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptySourceFile)
	}

	if profile.ResumeText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyContent)
	}

	if err := ValidateStage(profile.Stage); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if !profile.IngestedAt.IsZero() && !IsValidTimestamp(profile.IngestedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateVacancy validates a Vacancy according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Status and Priority must be valid
func ValidateVacancy(vacancy *Vacancy) error {
	if vacancy == nil {
		return fmt.Errorf("%w: vacancy is nil", ErrInvalidVacancy)
	}

	if vacancy.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidVacancy, ErrEmptyVacancyTitle)
	}

	if err := ValidateVacancyStatus(vacancy.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVacancy, err)
	}

	if err := ValidateVacancyPriority(vacancy.Priority); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVacancy, err)
	}

	return nil
}

// ValidateStage validates that a Stage has a valid value.
func ValidateStage(stage Stage) error {
	if stage < StageUploaded || stage > StageRejected {
		return fmt.Errorf("%w: value %d", ErrInvalidStage, stage)
	}
	return nil
}

// ValidateVacancyStatus validates that a VacancyStatus has a valid value.
func ValidateVacancyStatus(status VacancyStatus) error {
	if status < VacancyOpen || status > VacancyFilled {
		return fmt.Errorf("%w: value %d", ErrInvalidVacancyStatus, status)
	}
	return nil
}

// ValidateVacancyPriority validates that a VacancyPriority has a valid value.
func ValidateVacancyPriority(priority VacancyPriority) error {
	if priority < PriorityLow || priority > PriorityUrgent {
		return fmt.Errorf("%w: value %d", ErrInvalidVacancyPriority, priority)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
