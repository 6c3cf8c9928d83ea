package loader

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mo-sami19/zynk/models"
)

func TestGet_FirstLoadBlocks(t *testing.T) {
	l := New(time.Minute, func(ctx context.Context) ([]string, *models.PageMeta, error) {
		return []string{"a", "b"}, nil, nil
	})
	defer l.Close()

	snap := l.Get(context.Background())
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if len(snap.Data) != 2 {
		t.Fatalf("expected loaded data, got %v", snap.Data)
	}
	if !snap.HasData() {
		t.Fatal("snapshot should report data present")
	}
}

func TestGet_ErrorKeepsStaleData(t *testing.T) {
	var calls int
	l := New(time.Minute, func(ctx context.Context) ([]string, *models.PageMeta, error) {
		calls++
		if calls == 1 {
			return []string{"cached"}, nil, nil
		}
		return nil, nil, errors.New("backend down")
	})
	defer l.Close()

	l.Get(context.Background())
	snap := l.Refetch(context.Background())
	if snap.Err == nil {
		t.Fatal("expected surfaced error")
	}
	if len(snap.Data) != 1 || snap.Data[0] != "cached" {
		t.Fatalf("stale data must survive a failed refresh, got %v", snap.Data)
	}
	if !snap.HasData() {
		t.Fatal("HasData must stay true after a failed refresh")
	}
}

func TestGet_EmptySuccessIsTerminal(t *testing.T) {
	l := New(time.Minute, func(ctx context.Context) ([]string, *models.PageMeta, error) {
		return []string{}, nil, nil
	})
	defer l.Close()

	snap := l.Get(context.Background())
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if !snap.HasData() {
		t.Fatal("an empty successful result still counts as loaded")
	}
	if len(snap.Data) != 0 {
		t.Fatalf("expected empty data, got %v", snap.Data)
	}
}

func TestApply_StaleGenerationDiscarded(t *testing.T) {
	l := New(time.Minute, func(ctx context.Context) ([]string, *models.PageMeta, error) {
		return []string{"fresh"}, nil, nil
	})
	defer l.Close()

	// Simulate a slow fetch completing after a newer one was issued.
	l.mu.Lock()
	oldGen := l.begin()
	l.mu.Unlock()
	l.mu.Lock()
	newGen := l.begin()
	l.mu.Unlock()

	l.apply(newGen, []string{"new"}, nil, nil)
	snap := l.apply(oldGen, []string{"old"}, nil, nil)
	if len(snap.Data) != 1 || snap.Data[0] != "new" {
		t.Fatalf("stale completion must not overwrite newer data, got %v", snap.Data)
	}
}

func TestApply_AfterCloseDiscarded(t *testing.T) {
	l := New(time.Minute, func(ctx context.Context) ([]string, *models.PageMeta, error) {
		return nil, nil, nil
	})

	l.mu.Lock()
	gen := l.begin()
	l.mu.Unlock()
	l.Close()

	snap := l.apply(gen, []string{"late"}, nil, nil)
	if snap.HasData() {
		t.Fatalf("completions after Close must be dropped, got %v", snap.Data)
	}
}

func TestGet_StaleServedWhileRefreshing(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	l := New(time.Nanosecond, func(ctx context.Context) ([]string, *models.PageMeta, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n > 1 {
			<-release
		}
		return []string{"v1"}, nil, nil
	})
	defer l.Close()

	l.Get(context.Background())
	time.Sleep(time.Millisecond) // let the TTL lapse

	// The expired value comes back immediately; the refresh runs behind it.
	done := make(chan Snapshot[[]string], 1)
	go func() { done <- l.Get(context.Background()) }()
	select {
	case snap := <-done:
		if len(snap.Data) != 1 || snap.Data[0] != "v1" {
			t.Fatalf("expected stale value served immediately, got %v", snap.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("Get blocked on a background refresh")
	}
	close(release)
}

func TestGroup_KeysCacheIndependently(t *testing.T) {
	g := NewGroup[[]string](time.Minute)
	defer g.Close()

	fetchFor := func(v string) FetchFunc[[]string] {
		return func(ctx context.Context) ([]string, *models.PageMeta, error) {
			return []string{v}, nil, nil
		}
	}

	a := g.Loader("category=web", fetchFor("web"))
	b := g.Loader("category=seo", fetchFor("seo"))
	if a == b {
		t.Fatal("distinct keys must get distinct loaders")
	}
	if again := g.Loader("category=web", fetchFor("other")); again != a {
		t.Fatal("same key must return the same loader")
	}

	if snap := a.Get(context.Background()); snap.Data[0] != "web" {
		t.Fatalf("unexpected data for first key: %v", snap.Data)
	}
	if snap := b.Get(context.Background()); snap.Data[0] != "seo" {
		t.Fatalf("unexpected data for second key: %v", snap.Data)
	}
}
