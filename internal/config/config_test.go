package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, 60, cfg.Search.RRFConstant)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "openai", cfg.Embeddings.Provider)
	assert.Equal(t, 100, cfg.Embeddings.BatchSize)
	assert.Equal(t, 10, cfg.GitHub.StarThreshold)
	assert.Equal(t, 50, cfg.GitHub.MaxPages)
	assert.Equal(t, 16, cfg.Sessions.MaxSessions)
	require.NoError(t, cfg.Validate())
}

func TestLoadYAML_MergesNonZeroValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
search:
  rrf_constant: 90
  max_results: 10
embeddings:
  provider: none
  model: custom-model
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := New()
	require.NoError(t, cfg.loadYAML(path))

	assert.Equal(t, 90, cfg.Search.RRFConstant)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, "none", cfg.Embeddings.Provider)
	assert.Equal(t, "custom-model", cfg.Embeddings.Model)
	// Untouched fields keep defaults
	assert.Equal(t, 100, cfg.Embeddings.BatchSize)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadYAML_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [not a map"), 0o644))

	cfg := New()
	assert.Error(t, cfg.loadYAML(path))
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("STARSEEKER_DATA_DIR", "/tmp/stars-test")
	t.Setenv("STARSEEKER_RRF_CONSTANT", "30")
	t.Setenv("STARSEEKER_EMBEDDINGS_PROVIDER", "none")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := New()
	cfg.applyEnvOverrides()

	assert.Equal(t, "/tmp/stars-test", cfg.DataDir)
	assert.Equal(t, 30, cfg.Search.RRFConstant)
	assert.Equal(t, "none", cfg.Embeddings.Provider)
	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, "sk-test", cfg.Embeddings.APIKey)
}

func TestApplyEnvOverrides_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("STARSEEKER_RRF_CONSTANT", "not-a-number")
	t.Setenv("STARSEEKER_MAX_RESULTS", "-3")

	cfg := New()
	cfg.applyEnvOverrides()

	assert.Equal(t, 60, cfg.Search.RRFConstant)
	assert.Equal(t, 5, cfg.Search.MaxResults)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rrf constant", func(c *Config) { c.Search.RRFConstant = 0 }},
		{"negative max results", func(c *Config) { c.Search.MaxResults = -1 }},
		{"batch size too large", func(c *Config) { c.Embeddings.BatchSize = 101 }},
		{"unknown provider", func(c *Config) { c.Embeddings.Provider = "gemini" }},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "verbose" }},
		{"zero sessions", func(c *Config) { c.Sessions.MaxSessions = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := New()
	cfg.Search.RRFConstant = 42
	require.NoError(t, cfg.WriteYAML(path))

	loaded := New()
	require.NoError(t, loaded.loadYAML(path))
	assert.Equal(t, 42, loaded.Search.RRFConstant)
}
