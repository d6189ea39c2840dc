// Package mock provides a test double implementation of the embed.Embedder interface.
//
// This package contains a mock embedder for use in unit tests. The mock allows
// tests to run without external embedding service dependencies and enables
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockEmbedder := mock.NewMockEmbedder()
//	embeddings, err := mockEmbedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
// The default behavior returns deterministic vectors based on a hash of the
// input text, so the same text always embeds to the same vector within a
// test run.
package mock
