package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "content:cache:"

// Cache is a small JSON cache for per-key upstream responses (settings
// groups, SEO payloads) that don't fit the list loaders. It is backed by
// Redis when available and by an in-process map otherwise.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration

	mu    sync.Mutex
	local map[string]localEntry
}

type localEntry struct {
	data    []byte
	expires time.Time
}

// NewCache builds a Cache; rdb may be nil.
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl, local: make(map[string]localEntry)}
}

// GetJSON loads key into out, reporting whether it was present.
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) bool {
	var raw []byte
	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, cachePrefix+key).Bytes()
		if err != nil {
			return false
		}
		raw = data
	} else {
		c.mu.Lock()
		entry, ok := c.local[key]
		if ok && time.Now().After(entry.expires) {
			delete(c.local, key)
			ok = false
		}
		c.mu.Unlock()
		if !ok {
			return false
		}
		raw = entry.data
	}
	return json.Unmarshal(raw, out) == nil
}

// SetJSON stores value under key for the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	if c.rdb != nil {
		return c.rdb.Set(ctx, cachePrefix+key, data, c.ttl).Err()
	}
	c.mu.Lock()
	c.local[key] = localEntry{data: data, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}
