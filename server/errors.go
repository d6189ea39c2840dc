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


package server

import "errors"

var (
	// ErrSearcherRequired is returned when no searcher is provided.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrVacancyManagerRequired is returned when no vacancy manager is provided.
	ErrVacancyManagerRequired = errors.New("vacancy manager is required")

	// ErrReporterRequired is returned when no KPI reporter is provided.
	ErrReporterRequired = errors.New("kpi reporter is required")

	// ErrProfileRepositoryRequired is returned when no profile repository is provided.
	ErrProfileRepositoryRequired = errors.New("profile repository is required")

	// ErrVacancyRepositoryRequired is returned when no vacancy repository is provided.
	ErrVacancyRepositoryRequired = errors.New("vacancy repository is required")

	// ErrStatusRepositoryRequired is returned when no status repository is provided.
	ErrStatusRepositoryRequired = errors.New("status repository is required")
)
