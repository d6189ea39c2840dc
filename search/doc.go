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


// Package search provides hybrid candidate search over the two indexes.
//
// The Searcher type implements a multi-stage search algorithm that combines:
//   - Semantic search using vector embeddings
//   - Keyword search using BM25 term relevance
//
// Each ranking is min-max normalized to [0, 1] and the two are fused by
// weighted sum into a single deterministic order (score descending, ties by
// candidate id). When exactly one index is empty the other serves alone and
// the response is flagged degraded. Hits are hydrated from the profile
// store and can be narrowed by role, experience, location, and work
// authorization filters before the final cut to k results.
package search
