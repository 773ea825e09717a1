package searcher

import (
	"math"
	"strings"
)

// BM25 tuning parameters, standard Okapi values.
const (
	bm25K1 = 1.5
	bm25B  = 0.75

	// bm25Epsilon floors negative IDF values at a fraction of the average
	// IDF so very common terms still contribute a small positive signal.
	bm25Epsilon = 0.25
)

// Tokenize splits text into lower-cased whitespace-separated terms.
// It is the single tokenization rule shared by every scorer.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// BM25 is an immutable Okapi BM25 index over a corpus of search texts.
// Scores are addressed by document index in build order.
type BM25 struct {
	termFreqs []map[string]int
	docLens   []float64
	avgDocLen float64
	idf       map[string]float64
}

// NewBM25 builds an index over the given search texts. An empty corpus
// yields a valid index that scores nothing.
func NewBM25(texts []string) *BM25 {
	b := &BM25{
		termFreqs: make([]map[string]int, len(texts)),
		docLens:   make([]float64, len(texts)),
		idf:       make(map[string]float64),
	}

	docFreq := make(map[string]int)
	var totalLen float64
	for i, text := range texts {
		tokens := Tokenize(text)
		freqs := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freqs[tok]++
		}
		b.termFreqs[i] = freqs
		b.docLens[i] = float64(len(tokens))
		totalLen += float64(len(tokens))
		for term := range freqs {
			docFreq[term]++
		}
	}
	if len(texts) > 0 {
		b.avgDocLen = totalLen / float64(len(texts))
	}

	// Probabilistic IDF can go negative for terms in most documents.
	// Those are floored to epsilon * average IDF, following rank-BM25.
	n := float64(len(texts))
	var idfSum float64
	var negative []string
	for term, freq := range docFreq {
		idf := math.Log(n-float64(freq)+0.5) - math.Log(float64(freq)+0.5)
		b.idf[term] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}
	if len(docFreq) > 0 {
		floor := bm25Epsilon * idfSum / float64(len(docFreq))
		for _, term := range negative {
			b.idf[term] = floor
		}
	}

	return b
}

// Len returns the number of indexed documents.
func (b *BM25) Len() int {
	return len(b.termFreqs)
}

// HasTerms reports whether the corpus produced any tokens at all. A
// degenerate corpus (every text empty or whitespace) builds an index
// that can never match; callers use this to fall back to substring
// matching instead.
func (b *BM25) HasTerms() bool {
	return len(b.idf) > 0
}

// ScoreAll scores every document against the query, returning one score
// per document index. A query with no term overlap scores every document
// zero; an empty corpus returns an empty slice.
func (b *BM25) ScoreAll(query string) []float64 {
	scores := make([]float64, len(b.termFreqs))
	terms := Tokenize(query)
	if len(terms) == 0 || b.avgDocLen == 0 {
		return scores
	}

	for i, freqs := range b.termFreqs {
		norm := bm25K1 * (1 - bm25B + bm25B*b.docLens[i]/b.avgDocLen)
		var score float64
		for _, term := range terms {
			tf := float64(freqs[term])
			if tf == 0 {
				continue
			}
			score += b.idf[term] * tf * (bm25K1 + 1) / (tf + norm)
		}
		scores[i] = score
	}
	return scores
}

// TopN returns up to n document indices with a positive BM25 score,
// ranked descending. Ties keep ascending document order. A query
// matching nothing returns an empty slice, never zero-score filler.
func (b *BM25) TopN(query string, n int) []int {
	scores := b.ScoreAll(query)
	order := make([]int, 0, len(scores))
	for _, idx := range RankDescending(scores) {
		if scores[idx] <= 0 {
			break
		}
		order = append(order, idx)
	}
	if len(order) > n {
		order = order[:n]
	}
	return order
}
