// Package config loads Star-Seeker configuration.
//
// Precedence, lowest to highest:
//  1. Hardcoded defaults
//  2. User config (~/.config/star-seeker/config.yaml)
//  3. Environment variables (STARSEEKER_*, GITHUB_TOKEN, OPENAI_API_KEY)
//
// .env files are loaded from the working directory and the data directory
// before env overrides are applied, matching the layered dotenv behavior
// of the original deployment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSystemPrompt guides the chat agent when no override is configured.
const DefaultSystemPrompt = `You are the GitHub Stars Intelligence Agent.
Your goal is to help users manage, search, and discover repositories from their starred list.

IMPORTANT:
- Always use tools for data access.
- Never guess or predict the user's GitHub username; ask for it.`

// Config represents the complete Star-Seeker configuration.
type Config struct {
	Version    int              `yaml:"version" json:"version"`
	DataDir    string           `yaml:"data_dir" json:"data_dir"`
	GitHub     GitHubConfig     `yaml:"github" json:"github"`
	Search     SearchConfig     `yaml:"search" json:"search"`
	Embeddings EmbeddingsConfig `yaml:"embeddings" json:"embeddings"`
	Agent      AgentConfig      `yaml:"agent" json:"agent"`
	Server     ServerConfig     `yaml:"server" json:"server"`
	Sessions   SessionsConfig   `yaml:"sessions" json:"sessions"`
}

// GitHubConfig configures the starred-repository fetcher.
type GitHubConfig struct {
	// APIBase is the GitHub API base URL. Override for tests or GHE.
	APIBase string `yaml:"api_base" json:"api_base"`
	// Token is the personal access token. Usually set via GITHUB_TOKEN.
	Token string `yaml:"-" json:"-"`
	// StarThreshold filters out repositories with fewer stars.
	StarThreshold int `yaml:"star_threshold" json:"star_threshold"`
	// MaxPages caps pagination to bound rate-limit usage.
	MaxPages int `yaml:"max_pages" json:"max_pages"`
}

// SearchConfig configures hybrid search parameters.
type SearchConfig struct {
	// RRFConstant is the RRF fusion smoothing parameter (k).
	// Default: 60 (industry standard used by Azure AI Search, OpenSearch).
	RRFConstant int `yaml:"rrf_constant" json:"rrf_constant"`

	// MaxResults is the default result limit when the caller passes none.
	MaxResults int `yaml:"max_results" json:"max_results"`

	// SplitIntents enables splitting multi-intent queries on "and"/"&"
	// into independently searched sub-queries.
	SplitIntents bool `yaml:"split_intents" json:"split_intents"`
}

// EmbeddingsConfig configures the embedding provider.
type EmbeddingsConfig struct {
	// Provider selects the embedding backend: "openai" or "none".
	// "none" disables semantic search (lexical-only sessions).
	Provider string `yaml:"provider" json:"provider"`
	// Model is the embedding model identifier.
	Model string `yaml:"model" json:"model"`
	// BaseURL overrides the provider API endpoint (proxies, compat servers).
	BaseURL string `yaml:"base_url" json:"base_url"`
	// APIKey is usually set via OPENAI_API_KEY.
	APIKey string `yaml:"-" json:"-"`
	// BatchSize is texts per embedding API call. Capped at 100.
	BatchSize int `yaml:"batch_size" json:"batch_size"`
	// QueryCacheSize is the number of query embeddings kept in memory.
	QueryCacheSize int `yaml:"query_cache_size" json:"query_cache_size"`
	// MaxRetries is retry attempts per embedding call.
	MaxRetries int `yaml:"max_retries" json:"max_retries"`
}

// AgentConfig configures the chat agent.
type AgentConfig struct {
	// Model is the chat completion model.
	Model string `yaml:"model" json:"model"`
	// SystemPrompt overrides the built-in agent instructions.
	SystemPrompt string `yaml:"system_prompt" json:"system_prompt"`
	// MaxToolRounds bounds the tool-calling loop per user message.
	MaxToolRounds int `yaml:"max_tool_rounds" json:"max_tool_rounds"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address for the web API.
	Addr string `yaml:"addr" json:"addr"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" json:"log_level"`
	// WatchStars enables evicting cached engines when a user's stars
	// file changes on disk.
	WatchStars bool `yaml:"watch_stars" json:"watch_stars"`
}

// SessionsConfig configures the engine registry.
type SessionsConfig struct {
	// MaxSessions is the number of per-user engines kept in memory.
	MaxSessions int `yaml:"max_sessions" json:"max_sessions"`
}

// New returns a Config with sensible defaults.
func New() *Config {
	return &Config{
		Version: 1,
		DataDir: DefaultDataDir(),
		GitHub: GitHubConfig{
			APIBase:       "https://api.github.com",
			StarThreshold: 10,
			MaxPages:      50,
		},
		Search: SearchConfig{
			// k=60 dampens any single top rank and rewards documents
			// ranking reasonably in both signals.
			RRFConstant:  60,
			MaxResults:   5,
			SplitIntents: false,
		},
		Embeddings: EmbeddingsConfig{
			Provider:       "openai",
			Model:          "text-embedding-3-small",
			BatchSize:      100,
			QueryCacheSize: 256,
			MaxRetries:     3,
		},
		Agent: AgentConfig{
			Model:         "gpt-4o-mini",
			SystemPrompt:  DefaultSystemPrompt,
			MaxToolRounds: 5,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			LogLevel:   "info",
			WatchStars: true,
		},
		Sessions: SessionsConfig{
			MaxSessions: 16,
		},
	}
}

// DefaultDataDir returns the per-user data directory (~/.star-seeker).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".star-seeker")
	}
	return filepath.Join(home, ".star-seeker")
}

// UserConfigPath returns the path to the user configuration file,
// following the XDG Base Directory convention.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "star-seeker", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "star-seeker", "config.yaml")
	}
	return filepath.Join(home, ".config", "star-seeker", "config.yaml")
}

// Load builds the effective configuration: defaults, then the user config
// file if present, then .env files, then environment overrides.
func Load() (*Config, error) {
	cfg := New()

	if path := UserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	// Project-level .env first, then data-dir .env as fallback.
	// godotenv never overrides variables already set.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(cfg.DataDir, ".env"))

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	if other.GitHub.APIBase != "" {
		c.GitHub.APIBase = other.GitHub.APIBase
	}
	if other.GitHub.StarThreshold != 0 {
		c.GitHub.StarThreshold = other.GitHub.StarThreshold
	}
	if other.GitHub.MaxPages != 0 {
		c.GitHub.MaxPages = other.GitHub.MaxPages
	}

	if other.Search.RRFConstant != 0 {
		c.Search.RRFConstant = other.Search.RRFConstant
	}
	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if other.Search.SplitIntents {
		c.Search.SplitIntents = true
	}

	if other.Embeddings.Provider != "" {
		c.Embeddings.Provider = other.Embeddings.Provider
	}
	if other.Embeddings.Model != "" {
		c.Embeddings.Model = other.Embeddings.Model
	}
	if other.Embeddings.BaseURL != "" {
		c.Embeddings.BaseURL = other.Embeddings.BaseURL
	}
	if other.Embeddings.BatchSize != 0 {
		c.Embeddings.BatchSize = other.Embeddings.BatchSize
	}
	if other.Embeddings.QueryCacheSize != 0 {
		c.Embeddings.QueryCacheSize = other.Embeddings.QueryCacheSize
	}
	if other.Embeddings.MaxRetries != 0 {
		c.Embeddings.MaxRetries = other.Embeddings.MaxRetries
	}

	if other.Agent.Model != "" {
		c.Agent.Model = other.Agent.Model
	}
	if other.Agent.SystemPrompt != "" {
		c.Agent.SystemPrompt = other.Agent.SystemPrompt
	}
	if other.Agent.MaxToolRounds != 0 {
		c.Agent.MaxToolRounds = other.Agent.MaxToolRounds
	}

	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}

	if other.Sessions.MaxSessions != 0 {
		c.Sessions.MaxSessions = other.Sessions.MaxSessions
	}
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STARSEEKER_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("STARSEEKER_GITHUB_API_BASE"); v != "" {
		c.GitHub.APIBase = v
	}
	if v := os.Getenv("STARSEEKER_RRF_CONSTANT"); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			c.Search.RRFConstant = k
		}
	}
	if v := os.Getenv("STARSEEKER_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("STARSEEKER_EMBEDDINGS_PROVIDER"); v != "" {
		c.Embeddings.Provider = v
	}
	if v := os.Getenv("STARSEEKER_EMBEDDINGS_MODEL"); v != "" {
		c.Embeddings.Model = v
	}
	if v := os.Getenv("STARSEEKER_EMBEDDINGS_BASE_URL"); v != "" {
		c.Embeddings.BaseURL = v
	}
	if v := os.Getenv("STARSEEKER_AGENT_MODEL"); v != "" {
		c.Agent.Model = v
	}
	if v := os.Getenv("STARSEEKER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("STARSEEKER_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}

	// Credentials are only ever read from the environment.
	c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	c.Embeddings.APIKey = os.Getenv("OPENAI_API_KEY")
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Search.RRFConstant <= 0 {
		return fmt.Errorf("search.rrf_constant must be positive, got %d", c.Search.RRFConstant)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must be non-negative, got %d", c.Search.MaxResults)
	}
	if c.Embeddings.BatchSize < 1 || c.Embeddings.BatchSize > 100 {
		return fmt.Errorf("embeddings.batch_size must be between 1 and 100, got %d", c.Embeddings.BatchSize)
	}

	switch strings.ToLower(c.Embeddings.Provider) {
	case "openai", "none":
	default:
		return fmt.Errorf("embeddings.provider must be 'openai' or 'none', got %s", c.Embeddings.Provider)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("server.log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.Server.LogLevel)
	}

	if c.Sessions.MaxSessions <= 0 {
		return fmt.Errorf("sessions.max_sessions must be positive, got %d", c.Sessions.MaxSessions)
	}

	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
