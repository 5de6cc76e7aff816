package dto

import (
	"time"

	"goal_tracker/internal/feature/goals/domain/entity"
)

// TimeFormat はレスポンスの日時形式です（UTC、ミリ秒精度）。
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// OwnerRes はゴールに埋め込むオーナー情報です。
type OwnerRes struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GoalRes はゴール1件のレスポンスです。isOverdueは読み出し時点で算出します。
type GoalRes struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	IsOverdue   bool     `json:"isOverdue"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	UserID      string   `json:"userId"`
	User        OwnerRes `json:"user"`
}

// NewGoalRes はエンティティをレスポンスに変換します。
func NewGoalRes(g entity.Goal, now time.Time) GoalRes {
	var due *string
	if g.DueDate != nil {
		s := FormatTime(*g.DueDate)
		due = &s
	}
	return GoalRes{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Status:      string(g.Status),
		Priority:    string(g.Priority),
		DueDate:     due,
		IsOverdue:   g.IsOverdue(now),
		CreatedAt:   FormatTime(g.CreatedAt),
		UpdatedAt:   FormatTime(g.UpdatedAt),
		UserID:      g.UserID,
		User: OwnerRes{
			ID:    g.Owner.ID,
			Name:  g.Owner.Name,
			Email: g.Owner.Email,
		},
	}
}

// NewGoalList はゴール一覧を変換します。空の場合も [] を返します。
func NewGoalList(goals []entity.Goal, now time.Time) []GoalRes {
	out := make([]GoalRes, 0, len(goals))
	for _, g := range goals {
		out = append(out, NewGoalRes(g, now))
	}
	return out
}

// FormatTime は日時をUTCのTimeFormatで文字列化します。
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// StatsRes は GET /goals/stats のレスポンスです。
type StatsRes struct {
	TotalGoals      int `json:"totalGoals"`
	CompletedGoals  int `json:"completedGoals"`
	InProgressGoals int `json:"inProgressGoals"`
	OverdueGoals    int `json:"overdueGoals"`
	CriticalGoals   int `json:"criticalGoals"`
}

// NewStatsRes は集計値をレスポンスに変換します。
func NewStatsRes(s entity.Summary) StatsRes {
	return StatsRes{
		TotalGoals:      s.Total,
		CompletedGoals:  s.Completed,
		InProgressGoals: s.InProgress,
		OverdueGoals:    s.Overdue,
		CriticalGoals:   s.Critical,
	}
}

// OptionRes は列挙値1件の表示用ラベルと色です。
type OptionRes struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// OptionsRes は GET /goals/options のレスポンスです。
type OptionsRes struct {
	Statuses   []OptionRes `json:"statuses"`
	Priorities []OptionRes `json:"priorities"`
}

// NewOptionsRes はステータスと優先度の選択肢を定義順に並べて返します。
func NewOptionsRes() OptionsRes {
	res := OptionsRes{
		Statuses:   make([]OptionRes, 0, len(entity.Statuses)),
		Priorities: make([]OptionRes, 0, len(entity.Priorities)),
	}
	for _, s := range entity.Statuses {
		res.Statuses = append(res.Statuses, OptionRes{Value: string(s), Label: s.Label(), Color: s.Color()})
	}
	for _, p := range entity.Priorities {
		res.Priorities = append(res.Priorities, OptionRes{Value: string(p), Label: p.Label(), Color: p.Color()})
	}
	return res
}

// ValidateRes は POST /goals/validate のレスポンスです。
type ValidateRes struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}
