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


package vacancy

import "errors"

var (
	// ErrVacancyRepositoryRequired is returned when a vacancy repository is not provided.
	ErrVacancyRepositoryRequired = errors.New("vacancy repository required")

	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrRoleCategoryRequired is returned when a vacancy is created without a role category.
	ErrRoleCategoryRequired = errors.New("role category required")

	// ErrInvalidStatus is returned when a status name does not map to a known status.
	ErrInvalidStatus = errors.New("invalid vacancy status")

	// ErrInvalidPriority is returned when a priority name does not map to a known priority.
	ErrInvalidPriority = errors.New("invalid vacancy priority")

	// ErrAlreadyAssigned is returned when a candidate is assigned to a vacancy twice.
	ErrAlreadyAssigned = errors.New("candidate already assigned to vacancy")
)
