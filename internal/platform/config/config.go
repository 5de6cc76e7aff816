// Package config はアプリケーション設定を環境変数（と任意の.envファイル）から読み込みます。
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"goal_tracker/internal/platform/db"
)

// Config はサーバー起動に必要な設定値です。
type Config struct {
	AppEnv string
	Port   string

	DB            db.Config
	RunMigrations bool

	// Redis（未設定の場合、レート制限はメモリストアを使います）
	RedisAddr     string
	RedisPassword string

	// RateLimit は ulule/limiter の形式（例: "300-M"）。空なら無効です。
	RateLimit string

	// JWTSecret が設定されている場合のみAPIに認証を要求します。
	JWTSecret string
	JWTExpiry time.Duration

	CORSAllowOrigins []string

	SentryDSN string
}

// Load は.envファイルがあれば読み込み、環境変数から設定を組み立てます。
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		AppEnv: envString("APP_ENV", "development"),
		Port:   envString("PORT", "8080"),

		DB:            db.LoadConfigFromEnv(),
		RunMigrations: envBool("RUN_MIGRATIONS", false),

		RedisAddr:     redisAddr(os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RateLimit: envString("RATE_LIMIT", "300-M"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 24*time.Hour),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),

		SentryDSN: os.Getenv("SENTRY_DSN"),
	}
}

// IsDev は開発環境かどうかを返します。
func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

// redisAddr はホストが未設定なら空文字を返します。
func redisAddr(host, port string) string {
	if host == "" {
		return ""
	}
	if port == "" {
		port = "6379"
	}
	return host + ":" + port
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList はカンマ区切りの値を分割します。
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
