package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/pomodorosvc/internal/infrastructure/repositories"
)

// Config returns the gorm settings shared by every connection.
// TranslateError maps unique violations to gorm.ErrDuplicatedKey.
func Config(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

// Open creates a new Postgres connection
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), Config(logger.Warn))
}

// AutoMigrate creates the users, settings and Casbin policy tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBUser{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}

	// user_id carries a unique index, one settings row per user
	if err := db.AutoMigrate(&repositories.DBPomodoroSettings{}); err != nil {
		return fmt.Errorf("failed to migrate pomodoro settings table: %w", err)
	}

	// The adapter creates casbin_rule on construction
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}

// Close releases the underlying sql.DB
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
