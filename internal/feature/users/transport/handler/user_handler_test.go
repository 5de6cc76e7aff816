package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"goal_tracker/internal/feature/users/domain/entity"
)

// mockUserUsecase はUserUsecaseインターフェースのモック実装です。
type mockUserUsecase struct {
	ListUsersFunc func(ctx context.Context) ([]entity.User, error)
}

func (m *mockUserUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

// TestNewUserHandler はNewUserHandlerコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewUserHandler(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockUserUsecase{})

	assert.NotNil(t, h, "handler should not be nil")
	assert.NotNil(t, h.uc, "usecase should not be nil")
}

// TestUserHandler_List はListハンドラーの各種シナリオをテーブル駆動テストで検証します。
func TestUserHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockList       func(ctx context.Context) ([]entity.User, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: returns list of users",
			mockList: func(ctx context.Context) ([]entity.User, error) {
				return []entity.User{
					{ID: "u1", Name: "Jane Smith", Email: "jane@company.com", Role: entity.RoleHRManager},
					{ID: "u2", Name: "John Doe", Email: "john@company.com", Role: entity.RoleEmployee},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[{"id":"u1","name":"Jane Smith","email":"jane@company.com","role":"HR_MANAGER"},` +
				`{"id":"u2","name":"John Doe","email":"john@company.com","role":"EMPLOYEE"}]`,
		},
		{
			name: "success: nil slice is rendered as empty array",
			mockList: func(ctx context.Context) ([]entity.User, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "error: usecase failure is hidden",
			mockList: func(ctx context.Context) ([]entity.User, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&mockUserUsecase{ListUsersFunc: tt.mockList})
			router := gin.New()
			router.GET("/users", h.List)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
