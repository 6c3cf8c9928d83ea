// Package loader provides cached, race-safe data loading over the content
// client. A Loader keeps the last successful result visible while a refresh
// is in flight and discards stale completions, so a slow response issued
// before a newer request can never overwrite fresher data.
package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mo-sami19/zynk/models"
)

// ErrNoData marks a loader that has never completed a successful load.
var ErrNoData = errors.New("loader: no data loaded")

// FetchFunc produces one result. Meta is nil for unpaginated resources.
type FetchFunc[T any] func(ctx context.Context) (T, *models.PageMeta, error)

// Snapshot is the observable state of a Loader at one point in time.
type Snapshot[T any] struct {
	Data    T
	Meta    *models.PageMeta
	Err     error
	Loading bool
	// Fetched is the time of the last successful load; zero if none yet.
	Fetched time.Time
}

// HasData reports whether at least one load has succeeded. An empty result
// with a nil error still counts: empty-with-success is a valid terminal
// state, distinct from an error.
func (s Snapshot[T]) HasData() bool {
	return !s.Fetched.IsZero()
}

// Loader caches one fetched value with a TTL. Expired data is served stale
// while a background refresh runs; errors never clear previously loaded data.
type Loader[T any] struct {
	fetch FetchFunc[T]
	ttl   time.Duration

	mu       sync.Mutex
	snap     Snapshot[T]
	gen      uint64
	inFlight bool
	closed   bool
}

// New builds a Loader. A non-positive ttl means results never expire and
// only Refetch reloads them.
func New[T any](ttl time.Duration, fetch FetchFunc[T]) *Loader[T] {
	return &Loader[T]{fetch: fetch, ttl: ttl}
}

// Get returns the current snapshot, loading synchronously when nothing has
// been fetched yet. When cached data has expired it is returned immediately
// and refreshed in the background.
func (l *Loader[T]) Get(ctx context.Context) Snapshot[T] {
	l.mu.Lock()
	if l.closed {
		snap := l.snap
		l.mu.Unlock()
		return snap
	}

	if l.snap.HasData() {
		fresh := l.ttl <= 0 || time.Since(l.snap.Fetched) < l.ttl
		if !fresh && !l.inFlight {
			gen := l.begin()
			go l.run(context.WithoutCancel(ctx), gen)
		}
		snap := l.snap
		l.mu.Unlock()
		return snap
	}

	// First load: block the caller.
	gen := l.begin()
	l.mu.Unlock()

	data, meta, err := l.fetch(ctx)
	return l.apply(gen, data, meta, err)
}

// Refetch forces a synchronous reload (manual retry). If a newer fetch is
// triggered while this one runs, the newer result wins.
func (l *Loader[T]) Refetch(ctx context.Context) Snapshot[T] {
	l.mu.Lock()
	if l.closed {
		snap := l.snap
		l.mu.Unlock()
		return snap
	}
	gen := l.begin()
	l.mu.Unlock()

	data, meta, err := l.fetch(ctx)
	return l.apply(gen, data, meta, err)
}

// Snapshot returns the current state without triggering any fetch.
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Close stops the loader; in-flight completions are discarded.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

// begin marks a new fetch generation. Caller holds l.mu.
func (l *Loader[T]) begin() uint64 {
	l.gen++
	l.inFlight = true
	l.snap.Loading = true
	l.snap.Err = nil
	return l.gen
}

func (l *Loader[T]) run(ctx context.Context, gen uint64) {
	data, meta, err := l.fetch(ctx)
	l.apply(gen, data, meta, err)
}

// apply installs a completed fetch, unless a newer generation has been
// issued or the loader was closed in the meantime.
func (l *Loader[T]) apply(gen uint64, data T, meta *models.PageMeta, err error) Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || gen != l.gen {
		return l.snap
	}

	l.inFlight = false
	l.snap.Loading = false
	if err != nil {
		// Keep the previous Data/Meta visible; surface the error alongside.
		l.snap.Err = err
		return l.snap
	}
	l.snap.Data = data
	l.snap.Meta = meta
	l.snap.Err = nil
	l.snap.Fetched = time.Now()
	return l.snap
}
