package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"

	"goal_tracker/internal/app/di"
	"goal_tracker/internal/app/router"
	"goal_tracker/internal/platform/config"
	"goal_tracker/internal/platform/db"
	"goal_tracker/internal/platform/http/handler"
	"goal_tracker/internal/platform/logger"
	"goal_tracker/internal/platform/metrics"
	infraredis "goal_tracker/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDev(), cfg.SentryDSN)
	defer logger.Flush(2 * time.Second)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if cfg.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		slog.Info("migrations applied")
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("Redis unavailable. Rate limit counters stay in process.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	rateLimit, err := di.NewRateLimitMiddleware(rdb, cfg.RateLimit)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. API routes are served without authentication.")
	}

	// ルータ生成
	r, err := router.NewRouter(di.NewFeatureHandlers(gdb), router.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Metrics:          metrics.New(reg),
		Gatherer:         reg,
		RateLimit:        rateLimit,
		Readiness:        handler.Readiness(sqlDB, rdb),
		JWTSecret:        cfg.JWTSecret,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
