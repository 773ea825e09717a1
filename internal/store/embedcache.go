package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// cachedVectors is the on-disk embedding cache format: provider identity
// and vectors stored together so staleness is detectable on load.
type cachedVectors struct {
	Source  string      `json:"source"`
	Vectors [][]float32 `json:"vectors"`
}

// EmbeddingCache persists document embedding vectors per username so a
// corpus is only embedded once per provider. A cache entry is valid only
// when its provider identity matches the active provider and its vector
// count matches the current corpus size; anything else is a miss.
type EmbeddingCache struct {
	dataDir string
}

// NewEmbeddingCache creates an embedding cache rooted at dataDir.
func NewEmbeddingCache(dataDir string) *EmbeddingCache {
	return &EmbeddingCache{dataDir: dataDir}
}

// Path returns the cache file path for a username.
func (c *EmbeddingCache) Path(username string) string {
	return filepath.Join(c.dataDir, username+"_stars_embeddings.json")
}

// Load returns cached vectors for the username if they were produced by
// source and their count equals docCount. Any read, parse, or validity
// failure is reported as a miss, never an error.
func (c *EmbeddingCache) Load(username, source string, docCount int) ([][]float32, bool) {
	data, err := os.ReadFile(c.Path(username))
	if err != nil {
		return nil, false
	}

	var cached cachedVectors
	if err := json.Unmarshal(data, &cached); err != nil {
		slog.Debug("embedding cache unreadable, rebuilding",
			slog.String("username", username),
			slog.String("error", err.Error()))
		return nil, false
	}

	if cached.Source != source || len(cached.Vectors) != docCount {
		slog.Debug("embedding cache stale, rebuilding",
			slog.String("username", username),
			slog.String("cached_source", cached.Source),
			slog.Int("cached_count", len(cached.Vectors)),
			slog.Int("doc_count", docCount))
		return nil, false
	}

	return cached.Vectors, true
}

// Save persists vectors for the username under the given provider identity.
// The write is guarded by a file lock so two processes embedding the same
// user cannot interleave, and is atomic so readers never see torn JSON.
func (c *EmbeddingCache) Save(username, source string, vectors [][]float32) error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	lock := flock.New(c.Path(username) + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock embedding cache: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.Marshal(cachedVectors{Source: source, Vectors: vectors})
	if err != nil {
		return fmt.Errorf("failed to marshal embedding cache: %w", err)
	}

	return atomicWrite(c.Path(username), data)
}
