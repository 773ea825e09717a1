package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv isolates a CLI test run: temp home, temp data dir, no
// credentials, embeddings disabled.
func setupTestEnv(t *testing.T, apiBase string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STARSEEKER_DATA_DIR", t.TempDir())
	t.Setenv("STARSEEKER_EMBEDDINGS_PROVIDER", "none")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")
	if apiBase != "" {
		t.Setenv("STARSEEKER_GITHUB_API_BASE", apiBase)
	}
}

// newGitHubStub serves one starred repo for any user.
func newGitHubStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"full_name":        "owner/python-ml-project",
				"description":      "A machine learning project in Python",
				"html_url":         "https://github.com/owner/python-ml-project",
				"stargazers_count": 150,
				"topics":           []string{"python", "ml"},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runCLI executes the root command with args and captures output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make(map[string]bool)
	for _, sc := range cmd.Commands() {
		names[sc.Name()] = true
	}

	for _, want := range []string{"fetch", "search", "chat", "serve", "web", "sessions", "doctor", "logs", "config", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestRootCmd_DataDirFlag(t *testing.T) {
	cmd := NewRootCmd()

	flag := cmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestVersionCmd(t *testing.T) {
	setupTestEnv(t, "")

	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "starseeker version dev")
}

func TestVersionCmd_Verbose(t *testing.T) {
	setupTestEnv(t, "")

	out, err := runCLI(t, "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:")
	assert.Contains(t, out, "go:")
}
