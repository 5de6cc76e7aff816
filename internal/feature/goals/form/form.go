// Package form はゴール作成・編集フォームの入力チェックを行います。
// 結果は画面表示用の助言であり、APIの作成・更新処理では強制されません。
package form

import (
	"strings"
	"time"

	"goal_tracker/internal/feature/goals/domain/entity"
)

// Mode はフォームの種類です。
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ParseMode は文字列をModeに変換します。不明な値はfalseを返します。
func ParseMode(v string) (Mode, bool) {
	switch Mode(v) {
	case ModeCreate, ModeEdit:
		return Mode(v), true
	}
	return "", false
}

// Values はフォームの入力値です。DueDateは YYYY-MM-DD またはRFC 3339 形式です。
type Values struct {
	Title   string
	UserID  string
	Status  string
	DueDate string
}

// Errors はフィールド名（JSONキー）ごとのエラーメッセージです。
type Errors map[string]string

// Valid はエラーが1件もなければtrueを返します。
func (e Errors) Valid() bool {
	return len(e) == 0
}

// エラーメッセージ
const (
	MsgTitleRequired     = "Title is required"
	MsgOwnerRequired     = "Please select a team member"
	MsgDueDatePast       = "Due date cannot be in the past"
	MsgDueDatePastActive = "Due date cannot be in the past for active goals"
	MsgDueDateInvalid    = "Invalid due date"
)

// Validate はフォーム値を検証します。
// 期限は now のロケーションでの当日0時と比較し、当日は過去扱いしません。
// 編集時は完了済みのゴールであれば過去の期限を許可します。
func Validate(mode Mode, v Values, now time.Time) Errors {
	errs := Errors{}

	if strings.TrimSpace(v.Title) == "" {
		errs["title"] = MsgTitleRequired
	}
	if mode == ModeCreate && strings.TrimSpace(v.UserID) == "" {
		errs["userId"] = MsgOwnerRequired
	}

	if raw := strings.TrimSpace(v.DueDate); raw != "" {
		due, ok := parseDate(raw, now.Location())
		switch {
		case !ok:
			errs["dueDate"] = MsgDueDateInvalid
		case due.Before(startOfDay(now)):
			if mode == ModeCreate {
				errs["dueDate"] = MsgDueDatePast
			} else if entity.Status(v.Status) != entity.StatusCompleted {
				errs["dueDate"] = MsgDueDatePastActive
			}
		}
	}

	return errs
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// localLayouts はタイムゾーンを含まない形式で、locの時刻として解釈します。
var localLayouts = []string{"2006-01-02", "2006-01-02T15:04:05.999999999", "2006-01-02T15:04"}

func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999Z0700"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
