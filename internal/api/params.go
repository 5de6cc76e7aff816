package api

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// ListGoalsParams は GET /goals と GET /goals/stats のクエリパラメータです。
// 空文字の値は未指定として扱います。
type ListGoalsParams struct {
	Status   *string `form:"status" json:"status,omitempty"`
	Priority *string `form:"priority" json:"priority,omitempty"`
	UserID   *string `form:"userId" json:"userId,omitempty"`
	Search   *string `form:"search" json:"search,omitempty"`
}

// BindListGoalsParams はクエリ文字列をform形式でListGoalsParamsにバインドします。
func BindListGoalsParams(q url.Values) (ListGoalsParams, error) {
	var p ListGoalsParams

	binds := []struct {
		name string
		dest **string
	}{
		{"status", &p.Status},
		{"priority", &p.Priority},
		{"userId", &p.UserID},
		{"search", &p.Search},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return ListGoalsParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

// Value はnilを空文字として返します。
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
