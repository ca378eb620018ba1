package main

import (
	"log"

	"onboarding_backend/internal/config"
	"onboarding_backend/internal/platform/database"
	"onboarding_backend/internal/platform/logger"
	"onboarding_backend/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideDB opens the database and, when DB_AUTO_MIGRATE is set, creates the profile table.
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, cleanup, err := database.NewGORM(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db, &user.Profile{}); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return db, cleanup, nil
}

// provideLogger builds the zap logger and flushes it on cleanup.
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	appLogger, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return appLogger, func() {
		if err := appLogger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}, nil
}
