package database

import (
	"fmt"

	"outage-notifier/internal/config"
	"outage-notifier/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and runs auto-migration.
// Sqlite is the default; Postgres is used when DB_HOST is set.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.UsePostgres() {
		dialector = postgres.Open(cfg.PostgresDSN())
	} else {
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.SendAudit{},
	); err != nil {
		return nil, fmt.Errorf("auto-migration: %w", err)
	}

	return db, nil
}
