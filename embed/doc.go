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


// Package embed provides abstractions for text embedding providers.
//
// This package defines the Embedder interface used by the semantic index
// and the search engine. It follows the dependency inversion principle,
// allowing the indexing and search layers to depend on abstractions
// rather than concrete implementations.
//
// # Implementation Packages
//
// The embed package includes three implementation sub-packages:
//
//   - embed/tfidf: Default implementation. A deterministic TF-IDF vectorizer
//     fitted on the candidate corpus at index build time, requiring no
//     external services. Its fitted state serializes into the semantic
//     index segment so queries embed consistently across restarts.
//   - embed/openai: Opt-in implementation using OpenAI-compatible APIs
//     (Ollama, LocalAI, vLLM, OpenAI itself).
//   - embed/mock: Test doubles for unit testing without external dependencies.
//
// # Constructor Return Type Pattern
//
// This package follows a mixed constructor pattern based on use case:
//
// The production constructor (openai.NewEmbedder) returns the INTERFACE type
// to enforce abstraction and prevent accidental coupling to concrete
// implementations.
//
//	embedder, err := openai.NewEmbedder(config)  // returns embed.Embedder
//
// Constructors whose concrete type carries extra behavior return CONCRETE
// types: tfidf.Fit returns *tfidf.Vectorizer because callers need its
// serialization methods, and mock.NewMockEmbedder returns *mock.MockEmbedder
// to enable test assertions and behavior injection (CallCount, WithXFunc,
// Reset, etc.).
//
//	vec, err := tfidf.Fit(texts, 384)    // needs MarshalBinary for persistence
//	mockEmbed := mock.NewMockEmbedder()  // needs CallCount for assertions
//
// # Usage Example
//
//	// Default usage: fit on the corpus, then embed queries with the same model
//	vec, err := tfidf.Fit(corpusTexts, 384)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	qv, err := vec.EmbedText(ctx, "python data engineer")
//
//	// Opt-in usage with an OpenAI-compatible service
//	config := embed.NewConfig(embed.WithProvider(embed.ProviderOpenAI))
//	embedder, err := openai.NewEmbedder(config)
//
//	// Testing usage with mocks
//	mockEmbed := mock.NewMockEmbedder()
//	qv, err := mockEmbed.EmbedText(ctx, "test text")
package embed
