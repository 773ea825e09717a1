package searcher

import (
	"sort"
	"strings"
)

// SubstringRank scores each search text by how many query terms appear in
// it as substrings. It is the last-resort ranking used when no index
// could be built. Only documents matching at least one term are returned,
// sorted by descending match count, ties keeping ascending document order.
func SubstringRank(texts []string, query string) []Ranked {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return []Ranked{}
	}

	matched := make([]Ranked, 0, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		var count int
		for _, term := range terms {
			if strings.Contains(lower, term) {
				count++
			}
		}
		if count > 0 {
			matched = append(matched, Ranked{Index: i, Score: float64(count)})
		}
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return matched[a].Score > matched[b].Score
	})
	return matched
}
