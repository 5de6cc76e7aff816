// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"goal_tracker/internal/api"
	"goal_tracker/internal/feature/users/domain/entity"
	"goal_tracker/internal/feature/users/transport/http/dto"
)

// UserUsecase はユーザー情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
}

// UserHandler はユーザー情報に関するHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler は新しい UserHandler を作成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List はゴールの担当者選択に使うユーザー一覧を名前順で返します。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternalError})
		return
	}
	out := make([]dto.UserItem, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserItem{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)})
	}
	c.JSON(http.StatusOK, out)
}
