// Package search exposes the per-user search engine facade.
//
// An Engine owns one user's corpus and every index derived from it. It
// degrades through three levels chosen per query: hybrid RRF when vector
// and lexical indices are both available, lexical BM25 when vectors are
// not, and naive substring matching when no index could be built at all.
package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/embed"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/store"
	"github.com/HikmetCTK/Star-Seeker-mcp/pkg/searcher"
)

// DefaultLimit is the result count used when a caller passes no limit.
const DefaultLimit = 5

// SourceKeyword identifies a session without semantic ranking.
const SourceKeyword = "keyword"

// Engine is the search facade for a single user's starred repositories.
//
// Embeddings are built lazily on the first search that needs them. A
// provider failure during the build downgrades the session to keyword
// search; it never surfaces to the caller. All methods are safe for
// concurrent use.
type Engine struct {
	username string
	embedder embed.Embedder
	cache    *store.EmbeddingCache
	rrfK     int
	batch    int
	logger   *slog.Logger

	mu       sync.Mutex
	repos    []store.Repo
	texts    []string
	bm25     *searcher.BM25
	vectors  [][]float32
	attempt  bool
	demoted  bool
	splitOff bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithEmbedder sets the embedding provider. Without one the engine is a
// keyword-only session.
func WithEmbedder(e embed.Embedder) Option {
	return func(eng *Engine) { eng.embedder = e }
}

// WithEmbeddingCache sets the durable vector cache.
func WithEmbeddingCache(c *store.EmbeddingCache) Option {
	return func(eng *Engine) { eng.cache = c }
}

// WithRRFConstant overrides the RRF smoothing constant.
func WithRRFConstant(k int) Option {
	return func(eng *Engine) {
		if k > 0 {
			eng.rrfK = k
		}
	}
}

// WithBatchSize sets the document count per embedding request.
func WithBatchSize(n int) Option {
	return func(eng *Engine) {
		if n > 0 && n <= embed.MaxBatchSize {
			eng.batch = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(eng *Engine) { eng.logger = l }
}

// WithoutIntentSplitting disables multi-intent query splitting.
func WithoutIntentSplitting() Option {
	return func(eng *Engine) { eng.splitOff = true }
}

// New creates an engine for the given username with an empty corpus.
// Call Load to supply documents.
func New(username string, opts ...Option) *Engine {
	eng := &Engine{
		username: username,
		rrfK:     searcher.DefaultRRFConstant,
		batch:    embed.DefaultBatchSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Load replaces the corpus and rebuilds the lexical index. It may be
// called repeatedly; vectors are invalidated and rebuilt lazily on the
// next search that wants them.
func (e *Engine) Load(repos []store.Repo) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.repos = repos
	e.texts = store.SearchTexts(repos)
	e.bm25 = nil
	if len(e.texts) > 0 {
		if idx := searcher.NewBM25(e.texts); idx.HasTerms() {
			e.bm25 = idx
		}
	}
	e.vectors = nil
	e.attempt = false
	e.demoted = false
}

// Warm eagerly builds document embeddings so the first search does not
// pay the provider round trip. A build failure downgrades the session
// exactly as it would during a search.
func (e *Engine) Warm(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureVectorsLocked(ctx)
}

// Len returns the corpus size.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.repos)
}

// Source reports the session's current ranking capability: the embedding
// provider identity while semantic ranking is available, or "keyword"
// after a downgrade or when no provider is configured.
func (e *Engine) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sourceLocked()
}

func (e *Engine) sourceLocked() string {
	if e.embedder == nil || e.demoted {
		return SourceKeyword
	}
	return e.embedder.Source()
}

// Search returns up to limit repositories ranked by relevance. The
// ranking strategy is re-evaluated per call: hybrid RRF when vectors are
// available, BM25 otherwise, substring matching when no index exists. An
// empty corpus or a query matching nothing yields an empty slice.
func (e *Engine) Search(ctx context.Context, query string, limit int) []store.Repo {
	e.mu.Lock()
	defer e.mu.Unlock()

	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(e.repos) == 0 {
		return []store.Repo{}
	}
	// A query with no tokens matches nothing. Checked before any vector
	// work so the empty string never reaches the embedder, where every
	// document would pick up a cosine rank.
	if len(searcher.Tokenize(query)) == 0 {
		return []store.Repo{}
	}

	e.ensureVectorsLocked(ctx)

	if e.vectors != nil && e.bm25 != nil {
		if results, ok := e.hybridLocked(ctx, query, limit); ok {
			return results
		}
		// Transient vector failure: lexical for this query only.
	}
	if e.bm25 != nil {
		return e.takeLocked(e.bm25.TopN(query, limit))
	}
	return e.substringLocked(query, limit)
}

// hybridLocked runs the RRF path. ok is false when the query embedding
// failed and the caller should demote this single query to lexical.
func (e *Engine) hybridLocked(ctx context.Context, query string, limit int) ([]store.Repo, bool) {
	queryVec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		e.logger.Warn("query embedding failed, using keyword ranking",
			slog.String("username", e.username),
			slog.String("error", err.Error()))
		return nil, false
	}

	lexScores := e.bm25.ScoreAll(query)
	vecSims := searcher.SimilarityAll(queryVec, e.vectors)

	fused := searcher.FuseRRF(lexScores, vecSims, e.rrfK)
	if len(fused) > limit {
		fused = fused[:limit]
	}

	results := make([]store.Repo, len(fused))
	for i, r := range fused {
		results[i] = e.repos[r.Index]
	}
	return results, true
}

// ensureVectorsLocked builds document embeddings once per corpus load.
// Any batch failure aborts the build and downgrades the session to
// keyword search; the error never propagates.
func (e *Engine) ensureVectorsLocked(ctx context.Context) {
	if e.embedder == nil || e.demoted || e.attempt || len(e.texts) == 0 {
		return
	}
	e.attempt = true

	source := e.embedder.Source()
	if e.cache != nil {
		if vectors, ok := e.cache.Load(e.username, source, len(e.texts)); ok {
			e.vectors = vectors
			return
		}
	}

	e.logger.Info("building embeddings",
		slog.String("username", e.username),
		slog.Int("documents", len(e.texts)),
		slog.String("source", source))

	vectors := make([][]float32, 0, len(e.texts))
	for start := 0; start < len(e.texts); start += e.batch {
		end := start + e.batch
		if end > len(e.texts) {
			end = len(e.texts)
		}
		batch, err := e.embedder.EmbedBatch(ctx, e.texts[start:end])
		if err != nil {
			e.logger.Warn("embedding build failed, session downgraded to keyword search",
				slog.String("username", e.username),
				slog.Int("batch_start", start),
				slog.String("error", err.Error()))
			e.demoted = true
			return
		}
		vectors = append(vectors, batch...)
	}
	e.vectors = vectors

	if e.cache != nil {
		if err := e.cache.Save(e.username, source, vectors); err != nil {
			e.logger.Warn("embedding cache write failed",
				slog.String("username", e.username),
				slog.String("error", err.Error()))
		}
	}
}

func (e *Engine) takeLocked(indices []int) []store.Repo {
	results := make([]store.Repo, len(indices))
	for i, idx := range indices {
		results[i] = e.repos[idx]
	}
	return results
}

func (e *Engine) substringLocked(query string, limit int) []store.Repo {
	ranked := searcher.SubstringRank(e.texts, query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	results := make([]store.Repo, len(ranked))
	for i, r := range ranked {
		results[i] = e.repos[r.Index]
	}
	return results
}
