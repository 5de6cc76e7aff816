// Package usecase はgoalsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"goal_tracker/internal/feature/goals/domain/entity"
)

// dateLayout はフォームから送られる日付のみの形式です。
const dateLayout = "2006-01-02"

// dateTimeLayouts は受け付ける日時形式です。タイムゾーンのないものはUTCとして扱います。
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// MsgDueDateFormat は期限の形式エラーのメッセージです。
const MsgDueDateFormat = "dueDate must be YYYY-MM-DD, YYYY-MM-DDTHH:MM[:SS] or an RFC 3339 date-time"

// GoalRepository はゴールの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type GoalRepository interface {
	// List はフィルター条件に一致するゴールを優先度降順・作成日時降順で返します。
	List(ctx context.Context, f entity.Filter) ([]entity.Goal, error)

	// FindByID はIDでゴールを取得します。存在しない場合はErrGoalNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Goal, error)

	// Create は新しいゴールを保存します。
	Create(ctx context.Context, g *entity.Goal) error

	// Update はゴールの可変フィールドをすべて書き込みます。
	// 存在しない場合はErrGoalNotFoundを返します。
	Update(ctx context.Context, g *entity.Goal) error

	// Delete はゴールを物理削除します。存在しない場合はErrGoalNotFoundを返します。
	Delete(ctx context.Context, id string) error

	// OwnerExists は指定IDのユーザーが存在するかを返します。
	OwnerExists(ctx context.Context, userID string) (bool, error)
}

// CreateGoalInput はゴール作成の入力値です。
type CreateGoalInput struct {
	Title       string
	Description *string
	UserID      string
	Priority    string // 空の場合はMEDIUM
	DueDate     string // 空の場合は期限なし
}

// Nullable は「未指定」と「明示的なnull」を区別するための任意フィールドです。
type Nullable struct {
	Set   bool
	Value *string
}

// UpdateGoalInput はゴールの部分更新の入力値です。nilまたは未設定のフィールドは変更しません。
type UpdateGoalInput struct {
	Title       *string
	Description Nullable
	Status      *string
	Priority    *string
	// DueDate がnullまたは空文字で指定された場合は期限をクリアします。
	DueDate Nullable
}

// goalUsecase はゴールのCRUDと集計を実装します。
type goalUsecase struct {
	repo  GoalRepository
	now   func() time.Time
	newID func() string
}

// NewGoalUsecase はgoalUsecaseの新しいインスタンスを生成します。
func NewGoalUsecase(repo GoalRepository) *goalUsecase {
	return &goalUsecase{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// ListGoals はフィルター条件に一致するゴール一覧を返します。
func (u *goalUsecase) ListGoals(ctx context.Context, f entity.Filter) ([]entity.Goal, error) {
	return u.repo.List(ctx, f)
}

// GetGoal はIDでゴールを1件取得します。
func (u *goalUsecase) GetGoal(ctx context.Context, id string) (*entity.Goal, error) {
	return u.repo.FindByID(ctx, id)
}

// CreateGoal は入力を検証してゴールを作成し、オーナー情報付きで返します。
// ステータスは入力にかかわらず常にNOT_STARTEDで作成されます。
func (u *goalUsecase) CreateGoal(ctx context.Context, in CreateGoalInput) (*entity.Goal, error) {
	verr := &ValidationError{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.add("title", "title is required")
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		verr.add("userId", "userId is required")
	}

	priority := entity.PriorityMedium
	if in.Priority != "" {
		p, err := entity.ParsePriority(in.Priority)
		if err != nil {
			verr.add("priority", err.Error())
		}
		priority = p
	}

	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		verr.add("dueDate", err.Error())
	}

	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	exists, err := u.repo.OwnerExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOwnerNotFound
	}

	now := u.timestamp(time.Time{})
	g := &entity.Goal{
		ID:          u.newID(),
		Title:       title,
		Description: in.Description,
		Status:      entity.StatusNotStarted,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
	}
	if err := u.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	return u.repo.FindByID(ctx, g.ID)
}

// UpdateGoal は指定されたフィールドのみを既存のゴールにマージして保存します。
// updatedAtは常に前回値より大きい値に更新されます。
func (u *goalUsecase) UpdateGoal(ctx context.Context, id string, in UpdateGoalInput) (*entity.Goal, error) {
	g, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &ValidationError{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			verr.add("title", "title is required")
		}
		g.Title = title
	}
	if in.Description.Set {
		g.Description = in.Description.Value
	}
	if in.Status != nil {
		s, err := entity.ParseStatus(*in.Status)
		if err != nil {
			verr.add("status", err.Error())
		}
		g.Status = s
	}
	if in.Priority != nil {
		p, err := entity.ParsePriority(*in.Priority)
		if err != nil {
			verr.add("priority", err.Error())
		}
		g.Priority = p
	}
	if in.DueDate.Set {
		var raw string
		if in.DueDate.Value != nil {
			raw = *in.DueDate.Value
		}
		dueDate, err := parseDueDate(raw)
		if err != nil {
			verr.add("dueDate", err.Error())
		}
		g.DueDate = dueDate
	}

	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	g.UpdatedAt = u.timestamp(g.UpdatedAt)
	if err := u.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	return u.repo.FindByID(ctx, id)
}

// DeleteGoal はゴールを物理削除します。
func (u *goalUsecase) DeleteGoal(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, id)
}

// Stats はフィルター条件に一致するゴールの集計値を返します。
func (u *goalUsecase) Stats(ctx context.Context, f entity.Filter) (entity.Summary, error) {
	goals, err := u.repo.List(ctx, f)
	if err != nil {
		return entity.Summary{}, err
	}
	return entity.Summarize(goals, u.now()), nil
}

// timestamp はマイクロ秒精度のUTC現在時刻を返します。
// PostgreSQLのtimestamp精度に合わせ、prev以下にならないよう補正します。
func (u *goalUsecase) timestamp(prev time.Time) time.Time {
	now := u.now().UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		now = prev.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
	}
	return now
}

// parseDueDate は期限文字列を解析します。空文字の場合はnilを返します。
// YYYY-MM-DD形式はUTCの0時になります。
func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.New(MsgDueDateFormat)
}
