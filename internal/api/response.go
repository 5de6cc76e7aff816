// Package api はフィーチャー間で共有するHTTPのリクエスト・レスポンス型を定義します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse は入力検証エラーのレスポンスです。
// Fields のキーはJSONのフィールド名です。
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// MessageResponse は削除などボディを返さない操作の完了メッセージです。
type MessageResponse struct {
	Message string `json:"message"`
}

// 共通のエラーメッセージ
const (
	MsgInternalError   = "internal server error"
	MsgValidationError = "validation failed"
	MsgInvalidRequest  = "invalid request"
)
