package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCmd(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	out, err := runCLI(t, "fetch", "octocat")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetched 1 starred repositories for octocat")
	assert.Contains(t, out, "keyword-only")
}

func TestFetchCmd_InvalidUsername(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	out, err := runCLI(t, "fetch", "bad--name")
	require.Error(t, err)
	assert.Contains(t, out, "✗")
}

func TestFetchCmd_GitHubError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"rate limited"}`, http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)
	setupTestEnv(t, srv.URL)

	_, err := runCLI(t, "fetch", "octocat")
	assert.Error(t, err)
}

func TestFetchCmd_RequiresUsername(t *testing.T) {
	setupTestEnv(t, "")

	_, err := runCLI(t, "fetch")
	assert.Error(t, err)
}
