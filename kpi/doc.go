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


// Package kpi aggregates the stored candidate pool and vacancies into the
// recruiting numbers a dashboard renders: pool size, stage distribution,
// the uploaded-to-hired conversion funnel, per-role counts, vacancy
// status and priority breakdowns, and a daily ingestion trend.
//
// The package computes, it does not render. Reports are derived on every
// call from the store, so they are as fresh as the last parse run.
package kpi
