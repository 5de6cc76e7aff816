// Package logger はアプリケーション全体のslogロガーとリクエストログのミドルウェアを提供します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"

	"goal_tracker/internal/platform/http/handler"
)

// Init はデフォルトロガーを初期化して返します。
// 開発環境はテキスト形式・Debugレベル、本番環境はJSON形式・Infoレベルで出力します。
// sentryDSN が設定されていればErrorレベル以上をSentryにも送信します。
func Init(isDev bool, sentryDSN string) *slog.Logger {
	handlers := []slog.Handler{newStdoutHandler(os.Stdout, isDev)}

	if sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN}); err != nil {
			slog.Warn("sentry init failed, continuing without it", "error", err)
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	l := slog.New(combine(handlers))
	slog.SetDefault(l)
	return l
}

// Flush は送信待ちのSentryイベントを送り切ります。
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

func newStdoutHandler(w io.Writer, isDev bool) slog.Handler {
	if isDev {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

func combine(handlers []slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return handlers[0]
	}
	return slogmulti.Fanout(handlers...)
}

// RequestLogger はメソッド・パス・ステータス・処理時間をログに出力するginミドルウェアです。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler.IsProbePath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
