// Package dto はgoals HTTP APIのリクエスト・レスポンス型を定義します。
package dto

import (
	"bytes"
	"encoding/json"
)

// CreateGoalReq は POST /goals のリクエストボディです。
// statusは受け付けず、作成時は常にNOT_STARTEDになります。
type CreateGoalReq struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	UserID      string  `json:"userId" binding:"required"`
	Priority    string  `json:"priority" binding:"omitempty,goal_priority"`
	DueDate     *string `json:"dueDate"`
}

// UpdateGoalReq は PUT /goals/:id のリクエストボディです。
// キーが存在しないフィールドは変更されません。
type UpdateGoalReq struct {
	Title       *string        `json:"title"`
	Description NullableString `json:"description"`
	Status      *string        `json:"status" binding:"omitempty,goal_status"`
	Priority    *string        `json:"priority" binding:"omitempty,goal_priority"`
	DueDate     NullableString `json:"dueDate"`
}

// NullableString はJSONのキー未指定・null・文字列の3状態を表します。
// キーが存在すればnullでもSetがtrueになります。
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON はキーが存在する場合にのみ呼ばれます。
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// FormReq は POST /goals/validate のリクエストボディです。
type FormReq struct {
	Title   string `json:"title"`
	UserID  string `json:"userId"`
	Status  string `json:"status"`
	DueDate string `json:"dueDate"`
}
