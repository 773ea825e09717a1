package searcher

import "sort"

// DefaultRRFConstant is the RRF smoothing constant. A large value damps
// the influence of any single top rank and rewards documents that rank
// reasonably in both signals.
const DefaultRRFConstant = 60

// Ranked pairs a document index with its relevance score.
type Ranked struct {
	Index int
	Score float64
}

// RankDescending returns document indices ordered by descending score.
// Equal scores keep ascending index order.
func RankDescending(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// positiveRanks maps each document with a positive score to its 0-based
// rank position among the positive-score subset, descending.
func positiveRanks(scores []float64) map[int]int {
	ranks := make(map[int]int)
	for _, idx := range RankDescending(scores) {
		if scores[idx] <= 0 {
			break
		}
		ranks[idx] = len(ranks)
	}
	return ranks
}

// FuseRRF merges lexical scores and vector similarities, both aligned to
// document index, into one ranking via Reciprocal Rank Fusion:
//
//	fused(d) = 1/(k + vectorRank(d)) + 1/(k + lexicalRank(d))
//
// Ranks are 0-based positions in each signal's positive-score ordering; a
// document absent from a signal gets a sentinel rank equal to the corpus
// size. Documents with zero signal in both lists are excluded entirely.
// The result is sorted by descending fused score, ties keeping ascending
// document order.
func FuseRRF(lexScores, vecSims []float64, k int) []Ranked {
	if k <= 0 {
		k = DefaultRRFConstant
	}
	n := len(lexScores)
	lexRanks := positiveRanks(lexScores)
	vecRanks := positiveRanks(vecSims)

	fused := make([]Ranked, 0, n)
	for i := 0; i < n; i++ {
		if lexScores[i] <= 0 {
			if _, ok := vecRanks[i]; !ok {
				continue
			}
		}
		vRank, ok := vecRanks[i]
		if !ok {
			vRank = n
		}
		lRank, ok := lexRanks[i]
		if !ok {
			lRank = n
		}
		score := 1.0/float64(k+vRank) + 1.0/float64(k+lRank)
		fused = append(fused, Ranked{Index: i, Score: score})
	}

	sort.SliceStable(fused, func(a, b int) bool {
		return fused[a].Score > fused[b].Score
	})
	return fused
}
