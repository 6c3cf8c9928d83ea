package loader

import (
	"sync"
	"time"
)

// Group keys loaders by their parameter set (slug, filter combination), so
// each distinct query caches independently.
type Group[T any] struct {
	ttl time.Duration

	mu      sync.Mutex
	loaders map[string]*Loader[T]
}

// NewGroup builds a Group whose member loaders share one TTL.
func NewGroup[T any](ttl time.Duration) *Group[T] {
	return &Group[T]{ttl: ttl, loaders: make(map[string]*Loader[T])}
}

// Loader returns the loader for key, creating it with fetch on first use.
func (g *Group[T]) Loader(key string, fetch FetchFunc[T]) *Loader[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	if l, ok := g.loaders[key]; ok {
		return l
	}
	l := New(g.ttl, fetch)
	g.loaders[key] = l
	return l
}

// Close closes every member loader.
func (g *Group[T]) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, l := range g.loaders {
		l.Close()
	}
}
