//go:build wireinject
// +build wireinject

package main

import (
	"onboarding_backend/internal/app"
	"onboarding_backend/internal/auth"
	"onboarding_backend/internal/config"
	"onboarding_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		provideDB,

		// Identity
		auth.NewProvider,

		// Profiles
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
