package searcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var starCorpus = []string{
	"owner/python-ml-project a machine learning project in python using scikit-learn machine-learning python",
	"owner/javascript-ui a modern ui library for building web apps frontend ui",
	"owner/random-repo misc utilities",
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"python", "machine", "learning"}, Tokenize("Python  Machine\tLearning"))
	assert.Empty(t, Tokenize("   "))
	assert.Empty(t, Tokenize(""))
}

func TestBM25_ScoreAll_RanksRelevantFirst(t *testing.T) {
	idx := NewBM25(starCorpus)

	scores := idx.ScoreAll("python machine learning")
	require.Len(t, scores, 3)
	assert.Greater(t, scores[0], 0.0)
	assert.Greater(t, scores[0], scores[1])
	assert.Greater(t, scores[0], scores[2])
}

func TestBM25_ScoreAll_NoOverlapScoresZero(t *testing.T) {
	idx := NewBM25(starCorpus)

	scores := idx.ScoreAll("nonexistent term xyz")
	require.Len(t, scores, 3)
	for i, s := range scores {
		assert.Zerof(t, s, "document %d", i)
	}
}

func TestBM25_ScoreAll_EmptyQuery(t *testing.T) {
	idx := NewBM25(starCorpus)

	scores := idx.ScoreAll("")
	assert.Equal(t, []float64{0, 0, 0}, scores)
}

func TestBM25_EmptyCorpus(t *testing.T) {
	idx := NewBM25(nil)

	assert.Zero(t, idx.Len())
	assert.Empty(t, idx.ScoreAll("anything"))
	assert.Empty(t, idx.TopN("anything", 5))
}

func TestBM25_TopN_ExcludesNonMatches(t *testing.T) {
	idx := NewBM25(starCorpus)

	top := idx.TopN("python", 10)
	assert.Equal(t, []int{0}, top)
}

func TestBM25_TopN_NoMatchesReturnsEmpty(t *testing.T) {
	idx := NewBM25(starCorpus)

	assert.Empty(t, idx.TopN("nonexistent term xyz", 5))
}

func TestBM25_TopN_RespectsLimit(t *testing.T) {
	idx := NewBM25([]string{"go tools", "go services", "python libs", "rust crates", "java beans"})

	top := idx.TopN("go", 1)
	assert.Len(t, top, 1)
}

func TestBM25_TopN_StableTies(t *testing.T) {
	// Documents 0 and 1 score identically; ties keep document order.
	idx := NewBM25([]string{"alpha x", "alpha y", "beta", "gamma", "delta"})

	top := idx.TopN("alpha", 5)
	assert.Equal(t, []int{0, 1}, top)
}

func TestBM25_Deterministic(t *testing.T) {
	a := NewBM25(starCorpus).ScoreAll("python machine learning")
	b := NewBM25(starCorpus).ScoreAll("python machine learning")
	assert.Equal(t, a, b)
}

func TestBM25_CommonTermStillScoresPositive(t *testing.T) {
	// "go" appears in every document; the IDF floor keeps it positive.
	idx := NewBM25([]string{"go tools", "go services", "go libraries extra words"})

	scores := idx.ScoreAll("go")
	for i, s := range scores {
		assert.Greaterf(t, s, 0.0, "document %d", i)
	}
}
