package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/miguelmlop25/gestion-vacantes/internal/delivery/http/response"
	"github.com/miguelmlop25/gestion-vacantes/pkg/logger"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	// KeyFunc extracts the counter key from the request; defaults to client IP.
	KeyFunc func(*gin.Context) string
}

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: {current_count, ttl_remaining}
const rateLimitScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// memoryLimiter is the in-process fallback counter. Expired entries are
// swept at most once per window so the map does not grow with every client
// IP the process ever saw.
type memoryLimiter struct {
	window    time.Duration
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	nextSweep time.Time
}

func newMemoryLimiter(window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		window:  window,
		entries: make(map[string]*memoryEntry),
	}
}

func (l *memoryLimiter) hit(key string, now time.Time) (count int, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		for k, e := range l.entries {
			if now.After(e.resetAt) {
				delete(l.entries, k)
			}
		}
		l.nextSweep = now.Add(l.window)
	}

	entry := l.entries[key]
	if entry == nil || now.After(entry.resetAt) {
		entry = &memoryEntry{resetAt: now.Add(l.window)}
		l.entries[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt.Sub(now)
}

func (l *memoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RateLimit limits requests per key within a fixed window. With a redis
// client the counter is shared across instances via an atomic Lua script;
// without one it falls back to an in-process map and fails open.
func RateLimit(rdb *goredis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:ip:"
	}

	memory := newMemoryLimiter(cfg.Window)

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + cfg.KeyFunc(c)

		var count int
		var retryAfter time.Duration

		if rdb != nil {
			res, err := rdb.Eval(c.Request.Context(), rateLimitScript, []string{key},
				int(cfg.Window.Seconds())).Result()
			if err != nil {
				// Redis down: let the request through rather than refuse traffic.
				logger.Log.Warn("rate limiter redis unavailable", "error", err)
				c.Next()
				return
			}
			vals := res.([]interface{})
			count = int(vals[0].(int64))
			retryAfter = time.Duration(vals[1].(int64)) * time.Second
		} else {
			count, retryAfter = memory.hit(key, time.Now())
		}

		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests, slow down", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
