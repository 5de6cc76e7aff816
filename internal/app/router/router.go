package router

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	dashboardhandler "goal_tracker/internal/feature/dashboard/transport/handler"
	goalhandler "goal_tracker/internal/feature/goals/transport/handler"
	"goal_tracker/internal/feature/goals/transport/http/dto"
	userhandler "goal_tracker/internal/feature/users/transport/handler"
	"goal_tracker/internal/platform/http/handler"
	jwtmw "goal_tracker/internal/platform/jwt"
	"goal_tracker/internal/platform/logger"
	"goal_tracker/internal/platform/metrics"
)

// Handlers はフィーチャーごとのHTTPハンドラーです。
type Handlers struct {
	Goals     *goalhandler.GoalHandler
	Users     *userhandler.UserHandler
	Dashboard *dashboardhandler.DashboardHandler
}

// Options は横断的なミドルウェアとプローブの設定です。nilのものは無効になります。
type Options struct {
	CORSAllowOrigins []string
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
	RateLimit        gin.HandlerFunc
	Readiness        gin.HandlerFunc
	// JWTSecret が空でなければAPIルートにBearer認証を要求します。
	JWTSecret string
}

var (
	registerOnce sync.Once
	registerErr  error
)

// registerValidators はginの共有バリデーターにカスタムタグを一度だけ登録します。
func registerValidators() error {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := dto.RegisterValidators(v); err != nil {
				registerErr = fmt.Errorf("register validators: %w", err)
			}
		}
	})
	return registerErr
}

func NewRouter(h Handlers, opt Options) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())
	if len(opt.CORSAllowOrigins) > 0 {
		r.Use(cors.New(corsConfig(opt.CORSAllowOrigins)))
	}
	if opt.Metrics != nil {
		r.Use(opt.Metrics.Middleware())
	}
	if opt.RateLimit != nil {
		r.Use(opt.RateLimit)
	}

	// 認証不要
	// 導通確認用
	r.GET(handler.HealthPath, handler.Health)
	r.HEAD(handler.HealthPath, handler.Health)
	if opt.Readiness != nil {
		r.GET(handler.ReadyPath, opt.Readiness)
	}
	if opt.Gatherer != nil {
		r.GET(handler.MetricsPath, metrics.Handler(opt.Gatherer))
	}

	api := r.Group("/")
	if opt.JWTSecret != "" {
		api.Use(jwtmw.AuthRequired(opt.JWTSecret))
	}
	{
		api.GET("/goals", h.Goals.List)
		api.POST("/goals", h.Goals.Create)
		api.GET("/goals/stats", h.Goals.Stats)
		api.GET("/goals/options", h.Goals.Options)
		api.POST("/goals/validate", h.Goals.Validate)
		api.GET("/goals/:id", h.Goals.Get)
		api.PUT("/goals/:id", h.Goals.Update)
		api.DELETE("/goals/:id", h.Goals.Delete)

		api.GET("/users", h.Users.List)
		api.GET("/dashboard", h.Dashboard.Get)
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
