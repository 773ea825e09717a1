package searcher

import "math"

// Cosine returns the cosine similarity between two vectors. It is 0 when
// either vector has zero norm, avoiding a division by zero for empty or
// degenerate embeddings.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SimilarityAll returns the cosine similarity of the query vector against
// every document vector, one score per document index.
func SimilarityAll(query []float32, docs [][]float32) []float64 {
	sims := make([]float64, len(docs))
	for i, doc := range docs {
		sims[i] = Cosine(query, doc)
	}
	return sims
}
