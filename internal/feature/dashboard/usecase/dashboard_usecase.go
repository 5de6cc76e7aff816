// Package usecase はダッシュボードの集計を実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"goal_tracker/internal/feature/goals/domain/entity"
)

// RecentLimit はダッシュボードに表示する最近のゴール件数です。
const RecentLimit = 5

// GoalLister はゴール一覧を取得します。
type GoalLister interface {
	List(ctx context.Context, f entity.Filter) ([]entity.Goal, error)
}

// UserCounter はユーザー数を取得します。
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Dashboard はダッシュボードの表示内容です。
type Dashboard struct {
	Summary    entity.Summary
	TotalUsers int64
	Recent     []entity.Goal
}

// DashboardUsecase はゴールとユーザーの集計をまとめます。
type DashboardUsecase struct {
	goals GoalLister
	users UserCounter
	now   func() time.Time
}

// NewDashboardUsecase は新しい DashboardUsecase を作成します。
func NewDashboardUsecase(goals GoalLister, users UserCounter) *DashboardUsecase {
	return &DashboardUsecase{goals: goals, users: users, now: time.Now}
}

// Get はゴール一覧とユーザー数を並行に取得して集計します。
// どちらかが失敗した場合はもう一方もキャンセルされます。
func (u *DashboardUsecase) Get(ctx context.Context) (*Dashboard, error) {
	var (
		goals []entity.Goal
		users int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if goals, err = u.goals.List(gctx, entity.Filter{}); err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if users, err = u.users.Count(gctx); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		Summary:    entity.Summarize(goals, u.now()),
		TotalUsers: users,
		Recent:     entity.MostRecent(goals, RecentLimit),
	}, nil
}
