package embed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultQueryCacheSize is the default number of query embeddings kept
// in memory. Vectors are ~6KB each at 1536 dimensions.
const DefaultQueryCacheSize = 256

// CachedEmbedder wraps an Embedder with LRU caching so repeated queries
// skip the network round trip.
type CachedEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

// NewCachedEmbedder wraps inner with a query cache of the given size.
func NewCachedEmbedder(inner Embedder, cacheSize int) *CachedEmbedder {
	if cacheSize <= 0 {
		cacheSize = DefaultQueryCacheSize
	}
	cache, _ := lru.New[string, []float32](cacheSize)
	return &CachedEmbedder{inner: inner, cache: cache}
}

// cacheKey hashes text together with the provider identity so a model
// switch never serves stale vectors.
func (c *CachedEmbedder) cacheKey(text string) string {
	h := sha256.Sum256([]byte(text + "\x00" + c.inner.Source()))
	return hex.EncodeToString(h[:])
}

// Embed returns a cached embedding when available, otherwise computes
// and caches one.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.cacheKey(text)
	if vec, ok := c.cache.Get(key); ok {
		return vec, nil
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, vec)
	return vec, nil
}

// EmbedBatch passes through to the inner embedder. Document builds run
// once per corpus and are persisted separately, so batches skip the
// in-memory cache.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.EmbedBatch(ctx, texts)
}

// ModelName returns the inner model identifier.
func (c *CachedEmbedder) ModelName() string {
	return c.inner.ModelName()
}

// Source returns the inner provider identity.
func (c *CachedEmbedder) Source() string {
	return c.inner.Source()
}

var _ Embedder = (*CachedEmbedder)(nil)
