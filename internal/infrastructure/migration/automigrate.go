// Package migration applies the database schema via GORM AutoMigrate.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/logger"
)

// Models returns every persistence model in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.TicketHistoryModel{},
		&models.WatcherModel{},
		&models.TokenModel{},
	}
}

// Run migrates the schema for all models.
func Run(db *gorm.DB) error {
	targets := Models()

	logger.Info("starting database migration", "models_count", len(targets))

	if err := db.AutoMigrate(targets...); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	logger.Info("database migration completed")
	return nil
}
