// Package storage wires the gateway's optional backing stores: a Redis
// client for the content cache and chat session store, and a MySQL/GORM
// connection for the lead and contact archive. Both are optional; the
// gateway degrades to in-memory operation when they are not configured.
package storage

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared client, nil when REDIS_ADDR is not configured.
var Redis *redis.Client

// InitRedis connects to Redis when REDIS_ADDR is set. Connection problems
// are logged, not fatal: the gateway falls back to in-memory stores.
func InitRedis() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	addr = strings.ReplaceAll(addr, " ", "")

	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if dbn, err := strconv.Atoi(dbStr); err == nil {
			opts.DB = dbn
		}
	}

	rc := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		log.Printf("[storage] redis ping failed, continuing without redis: %v", err)
		return
	}
	Redis = rc
	log.Printf("[storage] redis connected at %s", addr)
}
