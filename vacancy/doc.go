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


// Package vacancy manages open positions and matches stored candidates
// against them.
//
// Vacancies come into existence two ways. The ingestion pipeline derives one
// open vacancy per resume role folder, with a stable "VAC_<slug>" Id so
// repeated parse runs reuse the same record. Recruiters create the rest
// explicitly and get random Ids.
//
// Match scores are computed on demand from the vacancy requirements and a
// candidate profile. They are never persisted: editing the requirements
// changes the next ranking without any rebuild.
package vacancy
