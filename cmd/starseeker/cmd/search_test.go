package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/search"
)

func TestSearchCmd(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	_, err := runCLI(t, "fetch", "octocat")
	require.NoError(t, err)

	out, err := runCLI(t, "search", "octocat", "python", "machine", "learning")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Results for: python machine learning")
	assert.Contains(t, out, "(via KEYWORD)")
	assert.Contains(t, out, "owner/python-ml-project")
	assert.Contains(t, out, "★ 150")
}

func TestSearchCmd_NoMatches(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	_, err := runCLI(t, "fetch", "octocat")
	require.NoError(t, err)

	out, err := runCLI(t, "search", "octocat", "nonexistent", "term", "xyz")
	require.NoError(t, err)
	assert.Contains(t, out, "No matches found.")
}

func TestSearchCmd_JSONFormat(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	_, err := runCLI(t, "fetch", "octocat")
	require.NoError(t, err)

	out, err := runCLI(t, "search", "octocat", "python", "--format", "json")
	require.NoError(t, err)

	var payload struct {
		Source  string                `json:"source"`
		Results []search.IntentResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "keyword", payload.Source)
	require.Len(t, payload.Results, 1)
	require.NotEmpty(t, payload.Results[0].Repos)
	assert.Equal(t, "owner/python-ml-project", payload.Results[0].Repos[0].FullName)
}

func TestSearchCmd_UnknownUser(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	out, err := runCLI(t, "search", "ghost", "python")
	require.Error(t, err)
	assert.Contains(t, out, "✗")
}
