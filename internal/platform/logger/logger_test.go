package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal_tracker/internal/platform/http/handler"
)

// TestNewStdoutHandler は環境ごとの出力形式とレベルを検証します。
func TestNewStdoutHandler(t *testing.T) {
	t.Parallel()

	var dev, prod bytes.Buffer
	devHandler := newStdoutHandler(&dev, true)
	prodHandler := newStdoutHandler(&prod, false)

	assert.True(t, devHandler.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, prodHandler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, prodHandler.Enabled(context.Background(), slog.LevelInfo))

	slog.New(prodHandler).Info("hello", "k", "v")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(prod.Bytes(), &rec), "production output should be JSON")
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "v", rec["k"])

	slog.New(devHandler).Debug("debug line")
	assert.Contains(t, dev.String(), "msg=\"debug line\"")
}

// TestCombine は複数ハンドラーがファンアウトされることを検証します。
func TestCombine(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	single := slog.NewJSONHandler(&a, nil)
	assert.Same(t, single, combine([]slog.Handler{single}))

	h := combine([]slog.Handler{slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil)})
	slog.New(h).Info("fanout")

	assert.Contains(t, a.String(), "fanout")
	assert.Contains(t, b.String(), "fanout")
}

// TestRequestLogger はアクセスログの出力内容とスキップ対象パスを検証します。
func TestRequestLogger(t *testing.T) {
	// デフォルトロガーを差し替えるため並列実行しません
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/goals", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	for _, path := range []string{handler.HealthPath, handler.ReadyPath, handler.MetricsPath} {
		r.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Empty(t, buf.String(), "probe requests should not be logged")

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/goals", nil))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "http request", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "GET", rec["method"])
	assert.Equal(t, "/goals", rec["path"])
	assert.EqualValues(t, 200, rec["status"])

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
}
