package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"goal_tracker/internal/app/di"
	"goal_tracker/internal/app/router"
	"goal_tracker/internal/feature/goals/transport/http/dto"
	useradapters "goal_tracker/internal/feature/users/adapters"
	"goal_tracker/internal/platform/db"
	jwtmw "goal_tracker/internal/platform/jwt"
	"goal_tracker/internal/platform/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestDB はマイグレーション済みのインメモリDBにユーザーを2人登録します。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, u := range []useradapters.UserModel{
		{ID: "u1", Email: "john.doe@company.com", Name: "John Doe", Role: "MANAGER", CreatedAt: now, UpdatedAt: now},
		{ID: "u2", Email: "jane.smith@company.com", Name: "Jane Smith", Role: "EMPLOYEE", CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, gdb.Create(&u).Error)
	}
	return gdb
}

func newTestRouter(t *testing.T, opt router.Options) *gin.Engine {
	t.Helper()
	r, err := router.NewRouter(di.NewFeatureHandlers(newTestDB(t)), opt)
	require.NoError(t, err)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// TestRouter_GoalLifecycle は作成→更新→絞り込み一覧→集計→削除の一連の流れを検証します。
func TestRouter_GoalLifecycle(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, router.Options{})

	w := do(t, r, http.MethodPost, "/goals",
		`{"title":"Complete React Training","description":"Obtain certification","userId":"u1","priority":"HIGH","dueDate":"2099-12-31"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.GoalRes](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "NOT_STARTED", created.Status)
	assert.Equal(t, "HIGH", created.Priority)
	assert.Equal(t, "John Doe", created.User.Name)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2099-12-31T00:00:00.000Z", *created.DueDate)
	assert.False(t, created.IsOverdue)

	w = do(t, r, http.MethodPost, "/goals", `{"title":"Tidy backlog","userId":"u2"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	other := decode[dto.GoalRes](t, w)
	assert.Equal(t, "MEDIUM", other.Priority)

	w = do(t, r, http.MethodPut, "/goals/"+created.ID, `{"status":"IN_PROGRESS","dueDate":null}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.GoalRes](t, w)
	assert.Equal(t, "IN_PROGRESS", updated.Status)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, "Complete React Training", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)

	w = do(t, r, http.MethodGet, "/goals?status=IN_PROGRESS&search=react", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]dto.GoalRes](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = do(t, r, http.MethodGet, "/goals", "", nil)
	list = decode[[]dto.GoalRes](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID, "HIGH is listed before MEDIUM")

	w = do(t, r, http.MethodGet, "/goals/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[dto.StatsRes](t, w)
	assert.Equal(t, dto.StatsRes{TotalGoals: 2, InProgressGoals: 1}, stats)

	w = do(t, r, http.MethodGet, "/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[map[string]any](t, w)
	assert.EqualValues(t, 2, dash["totalGoals"])
	assert.EqualValues(t, 2, dash["totalUsers"])
	assert.Len(t, dash["recentGoals"], 2)

	w = do(t, r, http.MethodDelete, "/goals/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Goal deleted successfully"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/goals/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"goal not found"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":"u2","name":"Jane Smith","email":"jane.smith@company.com","role":"EMPLOYEE"},
		{"id":"u1","name":"John Doe","email":"john.doe@company.com","role":"MANAGER"}
	]`, w.Body.String())
}

// TestRouter_CreateRejected は不正な作成リクエストが400となり、一覧が変わらないことを検証します。
func TestRouter_CreateRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{
			name:     "missing title",
			body:     `{"userId":"u1"}`,
			wantBody: `{"error":"validation failed","fields":{"title":"title is required"}}`,
		},
		{
			name:     "unknown priority",
			body:     `{"title":"x","userId":"u1","priority":"URGENT"}`,
			wantBody: `{"error":"validation failed","fields":{"priority":"priority must be one of LOW, MEDIUM, HIGH, CRITICAL"}}`,
		},
		{
			name:     "unknown owner",
			body:     `{"title":"x","userId":"ghost"}`,
			wantBody: `{"error":"validation failed","fields":{"userId":"user not found"}}`,
		},
		{
			name:     "malformed json",
			body:     `{"title":`,
			wantBody: `{"error":"invalid request"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRouter(t, router.Options{})

			w := do(t, r, http.MethodPost, "/goals", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())

			w = do(t, r, http.MethodGet, "/goals", "", nil)
			assert.JSONEq(t, `[]`, w.Body.String())
		})
	}
}

// TestRouter_SearchIsLiteralSubstring は検索語が空白を含めてそのまま部分一致に使われ、
// 非ASCII文字も大文字小文字を区別しないことを検証します。
func TestRouter_SearchIsLiteralSubstring(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, router.Options{})
	for _, title := range []string{"Shipping docs", "ÉCOLE plan"} {
		w := do(t, r, http.MethodPost, "/goals", `{"title":"`+title+`","userId":"u1"}`, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	tests := []struct {
		name       string
		query      string
		wantTitles []string
	}{
		{name: "trailing space must be matched", query: "ship%20", wantTitles: []string{}},
		{name: "whitespace-only term is not treated as absent", query: "%20%20%20", wantTitles: []string{}},
		{name: "accented term matches regardless of case", query: "%C3%A9cole", wantTitles: []string{"ÉCOLE plan"}},
		{name: "empty term lists everything", query: "", wantTitles: []string{"ÉCOLE plan", "Shipping docs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, "/goals?search="+tt.query, "", nil)
			require.Equal(t, http.StatusOK, w.Code)

			titles := []string{}
			for _, g := range decode[[]dto.GoalRes](t, w) {
				titles = append(titles, g.Title)
			}
			assert.ElementsMatch(t, tt.wantTitles, titles)
		})
	}
}

// TestRouter_CreateAcceptsLocalDateTime はタイムゾーンのない日時の期限をUTCとして受け付けることを検証します。
func TestRouter_CreateAcceptsLocalDateTime(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, router.Options{})

	w := do(t, r, http.MethodPost, "/goals", `{"title":"Ship v1","userId":"u1","dueDate":"2099-12-31T10:00:00"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	g := decode[dto.GoalRes](t, w)
	require.NotNil(t, g.DueDate)
	assert.Equal(t, "2099-12-31T10:00:00.000Z", *g.DueDate)
}

// TestRouter_StaticGoalRoutes は/goals/:idと衝突する固定パスが正しく振り分けられることを検証します。
func TestRouter_StaticGoalRoutes(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, router.Options{})

	w := do(t, r, http.MethodGet, "/goals/options", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	opts := decode[dto.OptionsRes](t, w)
	assert.Len(t, opts.Statuses, 4)
	assert.Len(t, opts.Priorities, 4)

	w = do(t, r, http.MethodPost, "/goals/validate?mode=edit", `{"title":"","userId":"u1","status":"COMPLETED","dueDate":"2000-01-01"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dto.ValidateRes](t, w)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "title")
	assert.NotContains(t, res.Errors, "dueDate", "past dates are allowed for completed goals in edit mode")
}

// TestRouter_Probes はヘルスチェック・メトリクスの公開を検証します。
func TestRouter_Probes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := newTestRouter(t, router.Options{
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
		Readiness: func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) },
	})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodHead, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/readyz", "", nil).Code)
	do(t, r, http.MethodGet, "/goals", "", nil)

	w := do(t, r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `goal_tracker_http_requests_total{method="GET",route="/goals",status="200"} 1`)
}

// TestRouter_Auth はJWTSecret設定時にAPIルートのみ認証が必要になることを検証します。
func TestRouter_Auth(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	r := newTestRouter(t, router.Options{JWTSecret: secret})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/goals", "", nil).Code)

	token, err := jwtmw.NewGenerator(secret, time.Hour).GenerateToken("u1", "john.doe@company.com")
	require.NoError(t, err)
	w := do(t, r, http.MethodGet, "/goals", "", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestRouter_CORS は許可オリジンへのプリフライト応答を検証します。
func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, router.Options{CORSAllowOrigins: []string{"http://localhost:3000"}})

	w := do(t, r, http.MethodOptions, "/goals", "", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"POST"},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST"))
}
