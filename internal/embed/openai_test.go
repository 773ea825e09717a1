package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seekererrors "github.com/HikmetCTK/Star-Seeker-mcp/internal/errors"
)

type embeddingsRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

func embeddingsHandler(t *testing.T, fn func(req embeddingsRequest, w http.ResponseWriter)) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req embeddingsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		fn(req, w)
	})
}

func writeVectors(w http.ResponseWriter, vectors [][]float32) {
	type datum struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	}
	data := make([]datum, len(vectors))
	for i, v := range vectors {
		data[i] = datum{Object: "embedding", Index: i, Embedding: v}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"object": "list",
		"data":   data,
		"model":  "text-embedding-3-small",
		"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
	})
}

func newTestEmbedder(t *testing.T, handler http.Handler, opts ...OpenAIOption) *OpenAIEmbedder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]OpenAIOption{WithInitialDelay(time.Millisecond)}, opts...)
	return NewOpenAIEmbedder("test-key", srv.URL, opts...)
}

func TestOpenAIEmbedder_EmbedBatch(t *testing.T) {
	e := newTestEmbedder(t, embeddingsHandler(t, func(req embeddingsRequest, w http.ResponseWriter) {
		assert.Equal(t, "text-embedding-3-small", req.Model)
		vecs := make([][]float32, len(req.Input))
		for i := range vecs {
			vecs[i] = []float32{float32(i), 1}
		}
		writeVectors(w, vecs)
	}))

	got, err := e.EmbedBatch(context.Background(), []string{"alpha", "beta"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 1}, {1, 1}}, got)
}

func TestOpenAIEmbedder_EmbedBatch_Empty(t *testing.T) {
	e := NewOpenAIEmbedder("test-key", "")

	got, err := e.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenAIEmbedder_EmbedBatch_OverLimit(t *testing.T) {
	e := NewOpenAIEmbedder("test-key", "")

	texts := make([]string, MaxBatchSize+1)
	_, err := e.EmbedBatch(context.Background(), texts)
	require.Error(t, err)
	assert.Equal(t, seekererrors.ErrCodeInvalidInput, seekererrors.GetCode(err))
}

func TestOpenAIEmbedder_RetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	e := newTestEmbedder(t, embeddingsHandler(t, func(req embeddingsRequest, w http.ResponseWriter) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
			return
		}
		writeVectors(w, [][]float32{{0.5}})
	}))

	got, err := e.Embed(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenAIEmbedder_NoRetryOnBadRequest(t *testing.T) {
	var calls atomic.Int32
	e := newTestEmbedder(t, embeddingsHandler(t, func(req embeddingsRequest, w http.ResponseWriter) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad input","type":"invalid_request_error"}}`))
	}))

	_, err := e.Embed(context.Background(), "alpha")
	require.Error(t, err)
	assert.Equal(t, seekererrors.ErrCodeProviderFailure, seekererrors.GetCode(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIEmbedder_CountMismatchExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	e := newTestEmbedder(t, embeddingsHandler(t, func(req embeddingsRequest, w http.ResponseWriter) {
		calls.Add(1)
		writeVectors(w, [][]float32{{1}})
	}), WithMaxRetries(2))

	_, err := e.EmbedBatch(context.Background(), []string{"alpha", "beta"})
	require.Error(t, err)
	assert.Equal(t, seekererrors.ErrCodeProviderFailure, seekererrors.GetCode(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpenAIEmbedder_Source(t *testing.T) {
	e := NewOpenAIEmbedder("test-key", "", WithModel("text-embedding-3-large"))
	assert.Equal(t, "openai/text-embedding-3-large", e.Source())
	assert.Equal(t, "text-embedding-3-large", e.ModelName())
}
