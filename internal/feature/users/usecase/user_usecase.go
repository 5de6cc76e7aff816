// Package usecase implements the business logic for user-related operations.
package usecase

import (
	"context"

	"goal_tracker/internal/feature/users/domain/entity"
)

// UserRepository abstracts the persistence layer for team members.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}

// UserUsecase provides read-only operations on team members.
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a new UserUsecase with the given repository.
func NewUserUsecase(r UserRepository) *UserUsecase {
	return &UserUsecase{repo: r}
}

// ListUsers returns all users ordered by name.
func (u *UserUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.repo.List(ctx)
}

// CountUsers returns the number of registered users.
func (u *UserUsecase) CountUsers(ctx context.Context) (int64, error) {
	return u.repo.Count(ctx)
}
