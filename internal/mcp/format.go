package mcp

import (
	"fmt"
	"strings"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/search"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/store"
)

// descriptionSnippetLen bounds how much of a description each result
// shows; enough to judge relevance without flooding the model.
const descriptionSnippetLen = 150

// FormatSearchResults renders per-intent rankings as the text block the
// model reads: one header per intent naming the ranking source, then
// one entry per repository.
func FormatSearchResults(intents []search.IntentResult, source string) string {
	if len(intents) == 0 {
		return "No matches found."
	}

	var sb strings.Builder
	matched := false
	for i, intent := range intents {
		if len(intent.Repos) == 0 {
			continue
		}
		matched = true
		if i > 0 && sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("--- Results for: %s (via %s) ---\n",
			intent.Query, strings.ToUpper(source)))
		for _, repo := range intent.Repos {
			formatRepo(&sb, repo)
		}
	}
	if !matched {
		return "No matches found."
	}
	return sb.String()
}

func formatRepo(sb *strings.Builder, repo store.Repo) {
	sb.WriteString(fmt.Sprintf("%s | ★ %d\n", repo.FullName, repo.Stars))
	sb.WriteString(fmt.Sprintf("   %s\n", repo.URL))

	desc := repo.Description
	if desc == "" {
		desc = "No description"
	}
	if r := []rune(desc); len(r) > descriptionSnippetLen {
		desc = string(r[:descriptionSnippetLen])
	}
	sb.WriteString(fmt.Sprintf("   %s...\n\n", desc))
}

// FormatFetchResult renders the confirmation message after a fetch.
func FormatFetchResult(username string, count int, source string) string {
	suffix := ""
	if source != search.SourceKeyword {
		suffix = fmt.Sprintf(" (embedded via %s)", source)
	}
	return fmt.Sprintf("Successfully fetched %d starred repositories for %q%s.",
		count, username, suffix)
}
