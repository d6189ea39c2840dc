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


// Package server exposes the recruitment system over HTTP: candidate
// search, the candidate pool, vacancy management, build status, the KPI
// report and Prometheus metrics, all JSON under /api/v1.
//
// Profile ids are 64-bit content hashes, so they cross the wire as
// decimal strings rather than JSON numbers.
package server
