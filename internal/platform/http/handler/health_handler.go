// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// プローブ用エンドポイントのパス
const (
	HealthPath  = "/healthz"
	ReadyPath   = "/readyz"
	MetricsPath = "/metrics"
)

// IsProbePath はpathがヘルスチェックまたはメトリクスのパスかを返します。
// アクセスログとレート制限はこれらのパスを対象外にします。
func IsProbePath(path string) bool {
	switch path {
	case HealthPath, ReadyPath, MetricsPath:
		return true
	}
	return false
}

// Health はプロセスの生存確認用の /healthz エンドポイントを処理します。
// 依存先には問い合わせず、キャッシュを防止します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Pinger はデータベースの疎通確認を行います（*sql.DB が満たします）。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// readinessTimeout は依存先ごとの確認のタイムアウトです。
const readinessTimeout = 2 * time.Second

// Readiness は /readyz のハンドラーを返します。
// データベースとRedis（設定時のみ）に疎通できなければ503を返します。
func Readiness(db Pinger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		checks := gin.H{"database": "ok"}
		ready := true

		if err := db.PingContext(ctx); err != nil {
			slog.Warn("readiness: database ping failed", "error", err)
			checks["database"] = "unavailable"
			ready = false
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("readiness: redis ping failed", "error", err)
				checks["redis"] = "unavailable"
				ready = false
			}
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
	}
}
