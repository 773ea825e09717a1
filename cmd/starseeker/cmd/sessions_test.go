package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsCmd_Empty(t *testing.T) {
	setupTestEnv(t, "")

	out, err := runCLI(t, "sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "No star data found")
}

func TestSessionsCmd_ListsFetchedUsers(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	_, err := runCLI(t, "fetch", "octocat")
	require.NoError(t, err)

	out, err := runCLI(t, "sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "octocat")
	assert.NotContains(t, out, "embeddings")
}

func TestDoctorCmd_CanceledContext(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"doctor"})

	err := cmd.ExecuteContext(ctx)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "GitHub API unreachable")
}

func TestDoctorCmd(t *testing.T) {
	srv := newGitHubStub(t)
	setupTestEnv(t, srv.URL)

	out, err := runCLI(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "Data directory writable")
	assert.Contains(t, out, "GITHUB_TOKEN not set")
	assert.Contains(t, out, "keyword-only")
	assert.Contains(t, out, "GitHub API reachable")
}

func TestConfigCmd_ShowsEffectiveConfig(t *testing.T) {
	setupTestEnv(t, "")
	t.Setenv("STARSEEKER_RRF_CONSTANT", "42")

	out, err := runCLI(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "rrf_constant: 42")
	assert.Contains(t, out, "provider: none")
}
