package usecase

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrGoalNotFound is returned when no goal exists with the given ID.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrOwnerNotFound is returned when a goal references a user that does not exist.
	ErrOwnerNotFound = errors.New("user not found")
)

// ValidationError はリクエスト値の検証エラーをフィールド単位で保持します。
// キーはJSONのフィールド名（title, userId など）です。
type ValidationError struct {
	Fields map[string]string
}

// Error はフィールド名順に並べたメッセージを "; " で連結して返します。
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// errOrNil はフィールドエラーが1件もなければnilを返します。
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
