// Package app wires configuration, storage, the GitHub client, and the
// search engine registry into the one service surface shared by the MCP
// server, the web API, and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/config"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/embed"
	seekererrors "github.com/HikmetCTK/Star-Seeker-mcp/internal/errors"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/github"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/search"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/session"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/store"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/telemetry"
)

// App owns the long-lived service state: stores, the embedding provider,
// and the per-user engine registry.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	stars    *store.StarStore
	embCache *store.EmbeddingCache
	embedder embed.Embedder
	registry *session.Registry
	metrics  *telemetry.Metrics
}

// FetchResult summarizes a completed star fetch.
type FetchResult struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
	// Source is the session capability after warming: the embedding
	// provider identity, or "keyword" when semantic search is off.
	Source string `json:"source"`
}

// New builds an App from configuration. An embedding provider is only
// constructed when one is configured with an API key; otherwise every
// session is keyword-only.
func New(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		stars:    store.NewStarStore(cfg.DataDir),
		embCache: store.NewEmbeddingCache(cfg.DataDir),
		embedder: newEmbedder(cfg),
		metrics:  telemetry.NewMetrics(telemetry.DefaultRecentSize),
	}
	a.registry = session.NewRegistry(cfg.Sessions.MaxSessions, a.buildEngine)

	if a.embedder == nil {
		logger.Info("semantic search disabled, sessions are keyword-only")
	}
	return a
}

func newEmbedder(cfg *config.Config) embed.Embedder {
	if cfg.Embeddings.Provider != "openai" || cfg.Embeddings.APIKey == "" {
		return nil
	}
	inner := embed.NewOpenAIEmbedder(
		cfg.Embeddings.APIKey,
		cfg.Embeddings.BaseURL,
		embed.WithModel(cfg.Embeddings.Model),
		embed.WithMaxRetries(cfg.Embeddings.MaxRetries),
	)
	return embed.NewCachedEmbedder(inner, cfg.Embeddings.QueryCacheSize)
}

// buildEngine is the registry factory: it loads a user's stored stars
// into a fresh engine. Users without fetched data are an error so
// callers can tell "no data" apart from "no matches".
func (a *App) buildEngine(username string) (*search.Engine, error) {
	if !a.stars.Exists(username) {
		return nil, seekererrors.New(seekererrors.ErrCodeStarsNotFound,
			fmt.Sprintf("no star data found for %q", username), nil).
			WithSuggestion("fetch stars for this user first")
	}
	repos, err := a.stars.Load(username)
	if err != nil {
		return nil, err
	}

	opts := []search.Option{
		search.WithEmbeddingCache(a.embCache),
		search.WithRRFConstant(a.cfg.Search.RRFConstant),
		search.WithBatchSize(a.cfg.Embeddings.BatchSize),
		search.WithLogger(a.logger),
	}
	if a.embedder != nil {
		opts = append(opts, search.WithEmbedder(a.embedder))
	}
	if !a.cfg.Search.SplitIntents {
		opts = append(opts, search.WithoutIntentSplitting())
	}

	eng := search.New(username, opts...)
	eng.Load(repos)
	return eng, nil
}

// FetchStars fetches a user's starred repositories, persists them, and
// warms a fresh engine so embeddings are ready before the first search.
// token overrides the configured GitHub token for this call.
func (a *App) FetchStars(ctx context.Context, username, token string) (FetchResult, error) {
	if token == "" {
		token = a.cfg.GitHub.Token
	}
	client := github.NewClient(
		github.WithAPIBase(a.cfg.GitHub.APIBase),
		github.WithToken(token),
		github.WithStarThreshold(a.cfg.GitHub.StarThreshold),
		github.WithMaxPages(a.cfg.GitHub.MaxPages),
		github.WithClientLogger(a.logger),
	)

	repos, err := client.FetchStars(ctx, username)
	if err != nil {
		return FetchResult{}, err
	}
	if err := a.stars.Save(username, repos); err != nil {
		return FetchResult{}, err
	}

	// Fresh data invalidates any resident engine.
	a.registry.Invalidate(username)

	eng, err := a.registry.Get(username)
	if err != nil {
		return FetchResult{}, err
	}
	eng.Warm(ctx)

	a.logger.Info("star database updated",
		slog.String("username", username),
		slog.Int("count", len(repos)),
		slog.String("source", eng.Source()))

	return FetchResult{Username: username, Count: len(repos), Source: eng.Source()}, nil
}

// Search runs a (possibly multi-intent) search over a user's stars.
// The returned source is the session capability used for the query.
func (a *App) Search(ctx context.Context, username, query string, limit int) ([]search.IntentResult, string, error) {
	if err := github.ValidateUsername(username); err != nil {
		return nil, "", err
	}
	// Guarded here so every surface shares the boundary check, including
	// tool calls where the model supplies the query.
	if strings.TrimSpace(query) == "" {
		return nil, "", seekererrors.New(seekererrors.ErrCodeQueryEmpty,
			"search query must not be empty", nil)
	}
	if limit <= 0 {
		limit = a.cfg.Search.MaxResults
	}

	eng, err := a.registry.Get(username)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	results := eng.SearchIntents(ctx, query, limit)
	source := eng.Source()

	total := 0
	for _, r := range results {
		total += len(r.Repos)
	}
	a.metrics.Record(telemetry.QueryEvent{
		Username:    username,
		Query:       query,
		Source:      source,
		ResultCount: total,
		Latency:     time.Since(start),
	})

	return results, source, nil
}

// Metrics returns a snapshot of query telemetry.
func (a *App) Metrics() telemetry.Snapshot {
	return a.metrics.Snapshot()
}

// Invalidate drops the resident engine for a username. Used by the
// stars-file watcher when data changes outside this process.
func (a *App) Invalidate(username string) {
	a.registry.Invalidate(username)
}

// Sessions returns usernames with resident engines.
func (a *App) Sessions() []string {
	return a.registry.Usernames()
}

// HasStars reports whether star data exists for a username.
func (a *App) HasStars(username string) bool {
	return a.stars.Exists(username)
}

// DataDir returns the resolved data directory.
func (a *App) DataDir() string {
	return a.cfg.DataDir
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}
