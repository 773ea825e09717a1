package embed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	seekererrors "github.com/HikmetCTK/Star-Seeker-mcp/internal/errors"
)

// errEmbeddingCountMismatch indicates the API returned a different number of
// vectors than texts requested. Retryable: rate-limited upstreams can return
// partial responses behind a 200 status.
var errEmbeddingCountMismatch = errors.New("embedding response count mismatch")

// OpenAIEmbedder generates embeddings through any OpenAI-compatible
// /v1/embeddings endpoint.
type OpenAIEmbedder struct {
	client        *openai.Client
	model         string
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// OpenAIOption is a functional option for OpenAIEmbedder.
type OpenAIOption func(*OpenAIEmbedder)

// WithModel sets the embedding model.
func WithModel(model string) OpenAIOption {
	return func(e *OpenAIEmbedder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithMaxRetries sets the maximum retry count for transient failures.
func WithMaxRetries(n int) OpenAIOption {
	return func(e *OpenAIEmbedder) {
		if n > 0 {
			e.maxRetries = n
		}
	}
}

// WithInitialDelay sets the first retry backoff interval.
func WithInitialDelay(d time.Duration) OpenAIOption {
	return func(e *OpenAIEmbedder) {
		if d > 0 {
			e.initialDelay = d
		}
	}
}

// NewOpenAIEmbedder creates an embedder against the given endpoint.
// An empty baseURL uses the official OpenAI API.
func NewOpenAIEmbedder(apiKey, baseURL string, opts ...OpenAIOption) *OpenAIEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	e := &OpenAIEmbedder{
		client:        openai.NewClientWithConfig(cfg),
		model:         "text-embedding-3-small",
		maxRetries:    DefaultMaxRetries,
		initialDelay:  DefaultInitialDelay,
		backoffFactor: DefaultBackoffFactor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ModelName returns the model identifier.
func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

// Source returns the provider identity recorded with persisted vectors.
func (e *OpenAIEmbedder) Source() string {
	return "openai/" + e.model
}

// Embed generates an embedding for a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch generates embeddings for the given texts in one API call,
// retrying transient failures with exponential backoff.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if len(texts) > MaxBatchSize {
		return nil, seekererrors.New(seekererrors.ErrCodeInvalidInput,
			fmt.Sprintf("batch of %d texts exceeds the %d-text limit", len(texts), MaxBatchSize), nil)
	}

	req := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	}

	var resp openai.EmbeddingResponse
	err := e.withRetry(ctx, func() error {
		var err error
		resp, err = e.client.CreateEmbeddings(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("%w: got %d vectors for %d texts",
				errEmbeddingCountMismatch, len(resp.Data), len(texts))
		}
		return nil
	})
	if err != nil {
		return nil, e.wrapError(err)
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// withRetry executes fn with exponential backoff on retryable errors.
func (e *OpenAIEmbedder) withRetry(ctx context.Context, fn func() error) error {
	delay := e.initialDelay
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < e.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * e.backoffFactor)
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryable reports whether an error is worth retrying.
func isRetryable(err error) bool {
	if errors.Is(err, errEmbeddingCountMismatch) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		// Transport-level failure before an HTTP response.
		return true
	}

	return false
}

// wrapError converts provider failures into structured errors.
func (e *OpenAIEmbedder) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return seekererrors.New(seekererrors.ErrCodeRateLimited,
			"embedding provider rate limited", err)
	}
	return seekererrors.New(seekererrors.ErrCodeProviderFailure,
		fmt.Sprintf("embedding request failed for model %s", e.model), err)
}

var _ Embedder = (*OpenAIEmbedder)(nil)
