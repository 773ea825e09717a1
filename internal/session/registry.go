// Package session pools per-user search engines so repeated queries for
// the same username reuse already-built indices.
package session

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/search"
)

// DefaultMaxSessions bounds how many user engines stay resident. Each
// engine holds its corpus and vectors in memory.
const DefaultMaxSessions = 16

// BuildFunc constructs and loads an engine for a username. Called on
// registry miss, under the registry lock.
type BuildFunc func(username string) (*search.Engine, error)

// Registry is an LRU pool of per-user search engines. Safe for
// concurrent use; engine construction is serialized so two requests for
// the same user never build twice.
type Registry struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *search.Engine]
	build BuildFunc
}

// NewRegistry creates a registry evicting least-recently-used engines
// beyond maxSessions.
func NewRegistry(maxSessions int, build BuildFunc) *Registry {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	cache, _ := lru.New[string, *search.Engine](maxSessions)
	return &Registry{cache: cache, build: build}
}

// Get returns the engine for a username, building one on first use.
func (r *Registry) Get(username string) (*search.Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if eng, ok := r.cache.Get(username); ok {
		return eng, nil
	}

	eng, err := r.build(username)
	if err != nil {
		return nil, err
	}
	r.cache.Add(username, eng)
	return eng, nil
}

// Invalidate drops a user's engine so the next Get rebuilds it against
// fresh star data.
func (r *Registry) Invalidate(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Remove(username)
}

// Usernames returns the usernames with resident engines, least recently
// used first.
func (r *Registry) Usernames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Keys()
}

// Len returns the number of resident engines.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}
