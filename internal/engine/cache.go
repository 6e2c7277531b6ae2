package engine

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache provides 2-tier caching: L1 in-memory + L2 Redis.
// L1 only lives for one process; L2 lets repeated runs skip the caption service.
var transcriptCache *tieredCache

// Cache hit/miss counters.
var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

// tieredCache implements L1 (memory) + L2 (Redis) caching.
type tieredCache struct {
	l1              sync.Map      // key → *cacheEntry
	rdb             *redis.Client // nil if Redis unavailable
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	size            atomic.Int64 // live L1 entries
	stop            chan struct{}
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// InitCache sets up the 2-tier cache. Call after Init().
// redisURL can be empty to disable L2.
func InitCache(redisURL string, ttl time.Duration, maxEntries int, cleanupInterval time.Duration) {
	CloseCache()

	c := &tieredCache{ttl: ttl, maxEntries: maxEntries, cleanupInterval: cleanupInterval, stop: make(chan struct{})}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		} else {
			rdb := redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("cache: redis unreachable, L2 disabled", slog.Any("error", err))
				_ = rdb.Close()
			} else {
				c.rdb = rdb
				slog.Info("cache: L2 redis connected", slog.String("addr", opts.Addr))
			}
		}
	}

	transcriptCache = c
	slog.Debug("cache: initialized", slog.Duration("ttl", ttl), slog.Bool("redis", c.rdb != nil), slog.Int("max_entries", maxEntries))

	go c.cleanupLoop()
}

// CloseCache stops the cleanup loop and releases the Redis connection.
func CloseCache() {
	c := transcriptCache
	if c == nil {
		return
	}
	transcriptCache = nil
	close(c.stop)
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			slog.Debug("cache: redis close failed", slog.Any("error", err))
		}
	}
}

// CacheKey builds a deterministic cache key from parts.
func CacheKey(parts ...string) string {
	joined := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("yt:%x", hash[:12]) // 24-char hex prefix
}

// CacheGet tries L1, then L2. On L2 hit, populates L1.
func CacheGet(ctx context.Context, key string) ([]byte, bool) {
	c := transcriptCache
	if c == nil {
		cacheMisses.Add(1)
		return nil, false
	}

	if val, ok := c.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			slog.Debug("cache: L1 hit", slog.String("key", key))
			cacheHits.Add(1)
			return entry.data, true
		}
		c.drop(key) // expired
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			slog.Debug("cache: L2 hit", slog.String("key", key))
			cacheHits.Add(1)
			c.store(key, data)
			return data, true
		}
	}

	cacheMisses.Add(1)
	return nil, false
}

// CacheSet stores value in both L1 and L2.
func CacheSet(ctx context.Context, key string, data []byte) {
	c := transcriptCache
	if c == nil {
		return
	}

	c.evictIfNeeded()

	c.store(key, data)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Debug("cache: L2 set failed", slog.Any("error", err))
		}
	}
}

// CacheStats returns current cache hit/miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

// CacheLoadJSON loads a cached value of type T.
// Returns the decoded value and true on hit; zero value and false on miss or decode error.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var out T
	data, ok := CacheGet(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it in the cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	CacheSet(ctx, key, data)
}

// store puts an L1 entry and keeps the size counter in step.
func (c *tieredCache) store(key string, data []byte) {
	if _, replaced := c.l1.Swap(key, &cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)}); !replaced {
		c.size.Add(1)
	}
}

// drop removes an L1 entry if it is still present.
func (c *tieredCache) drop(key any) {
	if _, ok := c.l1.LoadAndDelete(key); ok {
		c.size.Add(-1)
	}
}

// dropExpired removes every expired L1 entry.
func (c *tieredCache) dropExpired(now time.Time) {
	c.l1.Range(func(key, val any) bool {
		if now.After(val.(*cacheEntry).expiresAt) {
			c.drop(key)
		}
		return true
	})
}

// evictIfNeeded makes room for one more L1 entry: expired entries go first,
// then the ones closest to expiry.
func (c *tieredCache) evictIfNeeded() {
	if c.maxEntries <= 0 || c.size.Load() < int64(c.maxEntries) {
		return
	}
	c.dropExpired(time.Now())

	for c.size.Load() >= int64(c.maxEntries) {
		var oldest any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			if at := val.(*cacheEntry).expiresAt; oldest == nil || at.Before(oldestAt) {
				oldest, oldestAt = key, at
			}
			return true
		})
		if oldest == nil {
			return
		}
		c.drop(oldest)
	}
}

// cleanupLoop periodically removes expired L1 entries until CloseCache.
func (c *tieredCache) cleanupLoop() {
	interval := c.cleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.dropExpired(now)
		}
	}
}
