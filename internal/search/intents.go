package search

import (
	"context"
	"regexp"
	"strings"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/store"
)

// intentSeparator splits multi-intent queries on a literal "and" or "&"
// between terms, e.g. "python web scraping and rust cli tools".
var intentSeparator = regexp.MustCompile(`\s+(?:and|&)\s+`)

// IntentResult is the ranking for one sub-query of a multi-intent search.
type IntentResult struct {
	Query string       `json:"query"`
	Repos []store.Repo `json:"repos"`
}

// SplitIntents splits a query into independent search intents. Queries
// without an "and"/"&" separator come back as a single intent. The
// split is a heuristic: quoted phrases are not respected and the terms
// themselves are lower-cased.
func SplitIntents(query string) []string {
	lower := strings.ToLower(query)
	if !strings.Contains(lower, " and ") && !strings.Contains(query, " & ") {
		return []string{query}
	}

	parts := intentSeparator.Split(lower, -1)
	intents := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			intents = append(intents, p)
		}
	}
	if len(intents) == 0 {
		return []string{query}
	}
	return intents
}

// SearchIntents runs one search per intent of a multi-intent query and
// returns the rankings in intent order. With splitting disabled, or for
// a single-intent query, it is equivalent to one Search call.
func (e *Engine) SearchIntents(ctx context.Context, query string, limit int) []IntentResult {
	intents := []string{query}
	if !e.splitOff {
		intents = SplitIntents(query)
	}

	results := make([]IntentResult, len(intents))
	for i, intent := range intents {
		results[i] = IntentResult{
			Query: intent,
			Repos: e.Search(ctx, intent, limit),
		}
	}
	return results
}
