// Package ratelimit はクライアントIP単位のレート制限ミドルウェアを提供します。
package ratelimit

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"goal_tracker/internal/api"
	"goal_tracker/internal/platform/http/handler"
)

// keyPrefix はストア上のキーの接頭辞です。
const keyPrefix = "goal_tracker:ratelimit"

// NewStore はRedisが利用可能ならRedisストア、そうでなければメモリストアを返します。
func NewStore(rdb *redis.Client) (limiter.Store, error) {
	if rdb != nil {
		store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: keyPrefix})
		if err != nil {
			return nil, fmt.Errorf("create redis limiter store: %w", err)
		}
		return store, nil
	}
	return memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          keyPrefix,
		CleanUpInterval: time.Minute,
	}), nil
}

// Middleware は "300-M" のような形式のレートでginミドルウェアを生成します。
// 上限に達したリクエストには429を返します。
func Middleware(store limiter.Store, formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}

	mw := mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// ストア障害時はリクエストを止めない
			slog.Error("rate limiter store failed", "error", err)
			c.Next()
		}),
	)

	return func(c *gin.Context) {
		if handler.IsProbePath(c.Request.URL.Path) {
			c.Next()
			return
		}
		mw(c)
	}, nil
}
