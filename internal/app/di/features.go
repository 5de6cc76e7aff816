// Package di provides dependency injection factories for creating application components.
package di

import (
	"gorm.io/gorm"

	"goal_tracker/internal/app/router"
	dashboardhandler "goal_tracker/internal/feature/dashboard/transport/handler"
	dashboardusecase "goal_tracker/internal/feature/dashboard/usecase"
	goaladapters "goal_tracker/internal/feature/goals/adapters"
	goalhandler "goal_tracker/internal/feature/goals/transport/handler"
	goalusecase "goal_tracker/internal/feature/goals/usecase"
	useradapters "goal_tracker/internal/feature/users/adapters"
	userhandler "goal_tracker/internal/feature/users/transport/handler"
	userusecase "goal_tracker/internal/feature/users/usecase"
)

// NewFeatureHandlers wires repositories, usecases and handlers for every feature on db.
func NewFeatureHandlers(db *gorm.DB) router.Handlers {
	goalRepo := goaladapters.NewGoalRepository(db)
	userRepo := useradapters.NewUserRepository(db)

	return router.Handlers{
		Goals:     goalhandler.NewGoalHandler(goalusecase.NewGoalUsecase(goalRepo)),
		Users:     userhandler.NewUserHandler(userusecase.NewUserUsecase(userRepo)),
		Dashboard: dashboardhandler.NewDashboardHandler(dashboardusecase.NewDashboardUsecase(goalRepo, userRepo)),
	}
}
