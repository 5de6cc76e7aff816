package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"goal_tracker/internal/feature/goals/domain/entity"
)

// RegisterValidators はゴールの列挙値を検証するカスタムタグを登録します。
// エラーのフィールド名にはJSONのキー名を使うようにします。
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("goal_status", func(fl validator.FieldLevel) bool {
		return entity.Status(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("register goal_status: %w", err)
	}
	if err := v.RegisterValidation("goal_priority", func(fl validator.FieldLevel) bool {
		return entity.Priority(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("register goal_priority: %w", err)
	}
	return nil
}

// FieldErrors はvalidatorのエラーをJSONフィールド名ごとのメッセージに変換します。
func FieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "goal_status":
		return fe.Field() + " must be one of " + joinValues(entity.Statuses)
	case "goal_priority":
		return fe.Field() + " must be one of " + joinValues(entity.Priorities)
	default:
		return fe.Field() + " is invalid"
	}
}

func joinValues[T ~string](vs []T) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}
