// Package handler はgoalsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"goal_tracker/internal/api"
	"goal_tracker/internal/feature/goals/domain/entity"
	"goal_tracker/internal/feature/goals/form"
	"goal_tracker/internal/feature/goals/transport/http/dto"
	"goal_tracker/internal/feature/goals/usecase"
)

// GoalUsecase はゴール操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type GoalUsecase interface {
	ListGoals(ctx context.Context, f entity.Filter) ([]entity.Goal, error)
	GetGoal(ctx context.Context, id string) (*entity.Goal, error)
	CreateGoal(ctx context.Context, in usecase.CreateGoalInput) (*entity.Goal, error)
	UpdateGoal(ctx context.Context, id string, in usecase.UpdateGoalInput) (*entity.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	Stats(ctx context.Context, f entity.Filter) (entity.Summary, error)
}

// GoalHandler はゴールのHTTPリクエストを処理します。
type GoalHandler struct {
	uc  GoalUsecase
	now func() time.Time
}

// NewGoalHandler は指定されたusecaseでGoalHandlerの新しいインスタンスを生成します。
func NewGoalHandler(uc GoalUsecase) *GoalHandler {
	return &GoalHandler{uc: uc, now: time.Now}
}

// List はフィルター条件に一致するゴール一覧を返します。
//
// エンドポイント例:
// GET /goals?status=IN_PROGRESS&priority=HIGH&userId=...&search=react
func (h *GoalHandler) List(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}

	goals, err := h.uc.ListGoals(c.Request.Context(), f)
	if err != nil {
		writeError(c, err, "failed to list goals")
		return
	}
	c.JSON(http.StatusOK, dto.NewGoalList(goals, h.now()))
}

// Get はIDで指定したゴールを1件返します。
func (h *GoalHandler) Get(c *gin.Context) {
	g, err := h.uc.GetGoal(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to get goal")
		return
	}
	c.JSON(http.StatusOK, dto.NewGoalRes(*g, h.now()))
}

// Create は新しいゴールを作成し、201で返します。
func (h *GoalHandler) Create(c *gin.Context) {
	var req dto.CreateGoalReq
	if !bindJSON(c, &req) {
		return
	}

	in := usecase.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		Priority:    req.Priority,
		DueDate:     api.Value(req.DueDate),
	}
	g, err := h.uc.CreateGoal(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, dto.NewGoalRes(*g, h.now()))
}

// Update は指定されたフィールドのみゴールを更新します。
func (h *GoalHandler) Update(c *gin.Context) {
	var req dto.UpdateGoalReq
	if !bindJSON(c, &req) {
		return
	}

	in := usecase.UpdateGoalInput{
		Title:       req.Title,
		Description: usecase.Nullable{Set: req.Description.Set, Value: req.Description.Value},
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     usecase.Nullable{Set: req.DueDate.Set, Value: req.DueDate.Value},
	}
	g, err := h.uc.UpdateGoal(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err, "failed to update goal")
		return
	}
	c.JSON(http.StatusOK, dto.NewGoalRes(*g, h.now()))
}

// Delete はゴールを削除します。
func (h *GoalHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete goal")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Goal deleted successfully"})
}

// Stats は一覧と同じフィルターで絞り込んだゴールの集計値を返します。
func (h *GoalHandler) Stats(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}

	s, err := h.uc.Stats(c.Request.Context(), f)
	if err != nil {
		writeError(c, err, "failed to compute goal stats")
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsRes(s))
}

// Options はステータスと優先度の表示用ラベル・色を返します。
func (h *GoalHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewOptionsRes())
}

// Validate はフォーム入力を検証し、結果を常に200で返します。
//
// エンドポイント例:
// POST /goals/validate?mode=edit
func (h *GoalHandler) Validate(c *gin.Context) {
	mode, ok := form.ParseMode(c.DefaultQuery("mode", string(form.ModeCreate)))
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "mode must be create or edit"})
		return
	}

	var req dto.FormReq
	if !bindJSON(c, &req) {
		return
	}

	errs := form.Validate(mode, form.Values{
		Title:   req.Title,
		UserID:  req.UserID,
		Status:  req.Status,
		DueDate: req.DueDate,
	}, h.now())
	c.JSON(http.StatusOK, dto.ValidateRes{Valid: errs.Valid(), Errors: errs})
}

// bindFilter はクエリをフィルターに変換します。検索語は空白も含めてそのまま使います。
func bindFilter(c *gin.Context) (entity.Filter, bool) {
	p, err := api.BindListGoalsParams(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return entity.Filter{}, false
	}
	return entity.Filter{
		Status:   api.Value(p.Status),
		Priority: api.Value(p.Priority),
		UserID:   api.Value(p.UserID),
		Search:   api.Value(p.Search),
	}, true
}

// bindJSON はボディをバインドし、失敗時は400を書き込んでfalseを返します。
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
				Error:  api.MsgValidationError,
				Fields: dto.FieldErrors(verrs),
			})
			return false
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgInvalidRequest})
		return false
	}
	return true
}

// writeError はusecaseのエラーをHTTPステータスに変換して書き込みます。
// 想定外のエラーは詳細をログにのみ出力します。
func writeError(c *gin.Context, err error, msg string) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{Error: api.MsgValidationError, Fields: verr.Fields})
	case errors.Is(err, usecase.ErrOwnerNotFound):
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Error:  api.MsgValidationError,
			Fields: map[string]string{"userId": err.Error()},
		})
	case errors.Is(err, usecase.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error(msg, "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternalError})
	}
}
