// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"roadsuite_backend/internal/app"
	"roadsuite_backend/internal/auth"
	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/category"
	"roadsuite_backend/internal/config"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/jobs"
	"roadsuite_backend/internal/moderation"
	"roadsuite_backend/internal/notification"
	"roadsuite_backend/internal/platform/database"
	"roadsuite_backend/internal/platform/logger"
	"roadsuite_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Auth
		auth.NewJWTService,
		auth.NewService,
		auth.NewHandler,

		// Repositories
		user.NewGORMRepository,
		dealer.NewGORMRepository,
		category.NewGORMRepository,
		car.NewGORMRepository,
		moderation.NewGORMRepository,
		notification.NewGORMRepository,

		// Services
		dealer.NewService,
		category.NewService,
		notification.NewService,
		car.NewService,
		moderation.NewService,

		// Handlers
		dealer.NewHandler,
		category.NewHandler,
		car.NewHandler,
		moderation.NewHandler,
		notification.NewHandler,

		// Jobs
		jobs.NewPurgeJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
