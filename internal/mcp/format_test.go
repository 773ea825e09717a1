package mcp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/search"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/store"
)

func TestFormatSearchResults(t *testing.T) {
	intents := []search.IntentResult{
		{
			Query: "python machine learning",
			Repos: []store.Repo{
				{
					FullName:    "owner/python-ml-project",
					Description: "A machine learning project",
					URL:         "https://github.com/owner/python-ml-project",
					Stars:       150,
				},
			},
		},
	}

	out := FormatSearchResults(intents, "keyword")
	assert.Contains(t, out, "--- Results for: python machine learning (via KEYWORD) ---")
	assert.Contains(t, out, "owner/python-ml-project | ★ 150")
	assert.Contains(t, out, "https://github.com/owner/python-ml-project")
	assert.Contains(t, out, "A machine learning project...")
}

func TestFormatSearchResults_NoMatches(t *testing.T) {
	intents := []search.IntentResult{{Query: "xyz", Repos: nil}}
	assert.Equal(t, "No matches found.", FormatSearchResults(intents, "keyword"))
	assert.Equal(t, "No matches found.", FormatSearchResults(nil, "keyword"))
}

func TestFormatSearchResults_MultiIntent(t *testing.T) {
	intents := []search.IntentResult{
		{Query: "python", Repos: []store.Repo{{FullName: "owner/py", Stars: 10}}},
		{Query: "rust", Repos: []store.Repo{{FullName: "owner/rs", Stars: 20}}},
	}

	out := FormatSearchResults(intents, "openai/text-embedding-3-small")
	assert.Contains(t, out, "--- Results for: python (via OPENAI/TEXT-EMBEDDING-3-SMALL) ---")
	assert.Contains(t, out, "--- Results for: rust (via OPENAI/TEXT-EMBEDDING-3-SMALL) ---")
}

func TestFormatSearchResults_MissingDescription(t *testing.T) {
	intents := []search.IntentResult{
		{Query: "q", Repos: []store.Repo{{FullName: "owner/bare"}}},
	}
	assert.Contains(t, FormatSearchResults(intents, "keyword"), "No description...")
}

func TestFormatSearchResults_TruncatesLongDescription(t *testing.T) {
	long := strings.Repeat("x", 300)
	intents := []search.IntentResult{
		{Query: "q", Repos: []store.Repo{{FullName: "owner/long", Description: long}}},
	}

	out := FormatSearchResults(intents, "keyword")
	assert.NotContains(t, out, long)
	assert.Contains(t, out, strings.Repeat("x", descriptionSnippetLen)+"...")
}

func TestFormatFetchResult(t *testing.T) {
	assert.Equal(t,
		`Successfully fetched 42 starred repositories for "octocat".`,
		FormatFetchResult("octocat", 42, search.SourceKeyword))

	assert.Equal(t,
		`Successfully fetched 42 starred repositories for "octocat" (embedded via openai/text-embedding-3-small).`,
		FormatFetchResult("octocat", 42, "openai/text-embedding-3-small"))
}
