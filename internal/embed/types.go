// Package embed generates vector embeddings for search text.
//
// The only real provider is OpenAI-compatible (any endpoint speaking the
// /v1/embeddings protocol). Query embeddings are memoized through
// CachedEmbedder so repeated searches in a session skip the network.
package embed

import (
	"context"
	"time"
)

const (
	// MaxBatchSize is the hard per-request ceiling for document batches.
	MaxBatchSize = 100

	// DefaultBatchSize is used when the configured batch size is unset.
	DefaultBatchSize = 100

	// DefaultMaxRetries is the default retry count for transient failures.
	DefaultMaxRetries = 3

	// DefaultInitialDelay is the first retry backoff interval.
	DefaultInitialDelay = 1 * time.Second

	// DefaultBackoffFactor multiplies the delay after each failed attempt.
	DefaultBackoffFactor = 2.0
)

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector per
	// input in the same order. len(texts) must not exceed MaxBatchSize.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the model identifier.
	ModelName() string

	// Source returns the provider identity string recorded alongside
	// persisted vectors. Vectors from different sources never mix.
	Source() string
}
