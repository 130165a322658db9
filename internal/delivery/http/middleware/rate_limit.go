package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/pkg/audit"
	"go-jobtracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit  int
	Window time.Duration
	// Custom key extractor (default: caller id, else client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:")
	KeyPrefix string
	// Reject when Redis errors instead of falling back to memory
	FailClosed bool
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// RateLimiter counts requests in Redis when a client is configured and in
// process memory otherwise.
type RateLimiter struct {
	cfg     RateLimitConfig
	redis   *goredis.Client
	auditor *audit.Logger

	store       sync.Map
	cleanupOnce sync.Once
	now         func() time.Time
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// DefaultRateLimitConfig keys authenticated requests by caller and anonymous ones by IP.
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:",
		KeyFunc: func(c *gin.Context) string {
			if id := CallerID(c); id != "" {
				return "user:" + id
			}
			return "ip:" + c.ClientIP()
		},
	}
}

// NewRateLimiter builds a limiter; client may be nil.
func NewRateLimiter(cfg RateLimitConfig, client *goredis.Client, auditor *audit.Logger) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultRateLimitConfig(cfg.Limit, cfg.Window).KeyFunc
	}
	if auditor == nil {
		auditor = audit.Default()
	}
	return &RateLimiter{cfg: cfg, redis: client, auditor: auditor, now: time.Now}
}

// startCleanup drops expired in-memory entries every few minutes.
func (rl *RateLimiter) startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := rl.now()
			rl.store.Range(func(key, value any) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rl.store.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	if rl.redis == nil {
		rl.cleanupOnce.Do(rl.startCleanup)
	}

	return func(c *gin.Context) {
		fullKey := rl.cfg.KeyPrefix + rl.cfg.KeyFunc(c)

		var count int
		var resetAt time.Time

		if rl.redis != nil {
			var err error
			count, resetAt, err = rl.checkRedis(c.Request.Context(), fullKey)
			if err != nil {
				logger.Log.Warn("Rate limit redis error", "error", err)
				if rl.cfg.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				rl.cleanupOnce.Do(rl.startCleanup)
				count, resetAt = rl.checkInMemory(fullKey)
			}
		} else {
			count, resetAt = rl.checkInMemory(fullKey)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > rl.cfg.Limit {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			reqID, _ := c.Get(RequestIDKey)
			reqIDStr, _ := reqID.(string)
			rl.auditor.LogRateLimitTriggered(c.Request.Context(), CallerID(c), c.ClientIP(), reqIDStr, c.FullPath())

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.cfg.Limit-count))
		c.Next()
	}
}

// checkRedis checks rate limit using Redis with atomic Lua script
func (rl *RateLimiter) checkRedis(ctx context.Context, key string) (int, time.Time, error) {
	ttlSeconds := int(rl.cfg.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, rl.redis, []string{key}, ttlSeconds).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	resetAt := rl.now().Add(time.Duration(result[1]) * time.Second)
	return int(result[0]), resetAt, nil
}

// checkInMemory checks rate limit using in-memory store (fallback)
func (rl *RateLimiter) checkInMemory(key string) (int, time.Time) {
	now := rl.now()
	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{
		resetAt: now.Add(rl.cfg.Window),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(rl.cfg.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}
