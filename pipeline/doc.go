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


// Package pipeline orchestrates the index build: parse resumes into the
// store, then rebuild the semantic and keyword indexes over it.
//
// Each stage runs under its own time budget and records a core.BuildStatus
// when it finishes, so operators can see when each index was last built and
// whether it is healthy. A failing index stage never touches the other
// index: its last good version keeps serving queries.
//
// The package also carries the batched embedding path used by the semantic
// stage when a remote embedder is configured: BatchEmbedder splits the
// corpus into fixed-size batches, embeds them concurrently on a worker pool
// and retries transient failures with exponential backoff.
package pipeline
