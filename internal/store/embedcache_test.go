package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCache_HitOnValidCache(t *testing.T) {
	c := NewEmbeddingCache(t.TempDir())
	vectors := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	require.NoError(t, c.Save("octocat", "openai/text-embedding-3-small", vectors))

	got, ok := c.Load("octocat", "openai/text-embedding-3-small", 2)
	require.True(t, ok)
	assert.Equal(t, vectors, got)
}

func TestEmbeddingCache_MissOnSourceMismatch(t *testing.T) {
	c := NewEmbeddingCache(t.TempDir())
	require.NoError(t, c.Save("octocat", "openai/text-embedding-3-small", [][]float32{{1}}))

	_, ok := c.Load("octocat", "openai/text-embedding-3-large", 1)
	assert.False(t, ok)
}

func TestEmbeddingCache_MissOnCountMismatch(t *testing.T) {
	c := NewEmbeddingCache(t.TempDir())
	require.NoError(t, c.Save("octocat", "openai/text-embedding-3-small", [][]float32{{1}, {2}}))

	// Corpus grew since the cache was written.
	_, ok := c.Load("octocat", "openai/text-embedding-3-small", 3)
	assert.False(t, ok)
}

func TestEmbeddingCache_MissOnMissingFile(t *testing.T) {
	c := NewEmbeddingCache(t.TempDir())

	_, ok := c.Load("nobody", "openai/text-embedding-3-small", 0)
	assert.False(t, ok)
}

func TestEmbeddingCache_MissOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	c := NewEmbeddingCache(dir)
	require.NoError(t, os.WriteFile(c.Path("octocat"), []byte("not json"), 0o644))

	_, ok := c.Load("octocat", "openai/text-embedding-3-small", 1)
	assert.False(t, ok)
}

func TestEmbeddingCache_SaveReplacesPrevious(t *testing.T) {
	c := NewEmbeddingCache(t.TempDir())
	require.NoError(t, c.Save("octocat", "a", [][]float32{{1}}))
	require.NoError(t, c.Save("octocat", "b", [][]float32{{2}, {3}}))

	got, ok := c.Load("octocat", "b", 2)
	require.True(t, ok)
	assert.Equal(t, [][]float32{{2}, {3}}, got)
}
