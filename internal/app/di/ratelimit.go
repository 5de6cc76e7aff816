package di

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"goal_tracker/internal/platform/ratelimit"
)

// NewRateLimitMiddleware creates the rate limiting middleware.
// If Redis is available, counters are shared through it.
// Otherwise, it falls back to a per-process memory store.
// An empty rate disables rate limiting and returns nil.
func NewRateLimitMiddleware(rdb *redis.Client, rate string) (gin.HandlerFunc, error) {
	if rate == "" {
		return nil, nil
	}
	if rdb == nil {
		slog.Warn("Redis unavailable. Rate limit counters are kept in memory.")
	}
	store, err := ratelimit.NewStore(rdb)
	if err != nil {
		return nil, err
	}
	return ratelimit.Middleware(store, rate)
}
