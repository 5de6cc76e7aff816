// Package handler はダッシュボードのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goal_tracker/internal/api"
	"goal_tracker/internal/feature/dashboard/usecase"
	goaldto "goal_tracker/internal/feature/goals/transport/http/dto"
)

// DashboardUsecase はダッシュボード集計のユースケースインターフェースです。
type DashboardUsecase interface {
	Get(ctx context.Context) (*usecase.Dashboard, error)
}

// DashboardRes は GET /dashboard のレスポンスです。
type DashboardRes struct {
	TotalGoals      int               `json:"totalGoals"`
	TotalUsers      int64             `json:"totalUsers"`
	CompletedGoals  int               `json:"completedGoals"`
	InProgressGoals int               `json:"inProgressGoals"`
	OverdueGoals    int               `json:"overdueGoals"`
	CriticalGoals   int               `json:"criticalGoals"`
	RecentGoals     []goaldto.GoalRes `json:"recentGoals"`
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc  DashboardUsecase
	now func() time.Time
}

// NewDashboardHandler は新しい DashboardHandler を作成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc, now: time.Now}
}

// Get は集計値と最近作成されたゴールを返します。
func (h *DashboardHandler) Get(c *gin.Context) {
	d, err := h.uc.Get(c.Request.Context())
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternalError})
		return
	}

	c.JSON(http.StatusOK, DashboardRes{
		TotalGoals:      d.Summary.Total,
		TotalUsers:      d.TotalUsers,
		CompletedGoals:  d.Summary.Completed,
		InProgressGoals: d.Summary.InProgress,
		OverdueGoals:    d.Summary.Overdue,
		CriticalGoals:   d.Summary.Critical,
		RecentGoals:     goaldto.NewGoalList(d.Recent, h.now()),
	})
}
