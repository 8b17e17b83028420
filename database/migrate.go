package database

import (
	"fmt"
	"time"

	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.Plan{},
		&models.Application{},
		&models.User{},
		&models.Identity{},
		&models.ContactSubmission{},
	}

	for _, model := range tables {
		start := time.Now()
		err := db.AutoMigrate(model)
		logger.DBLog("MIGRATE", tableName(db, model), time.Since(start), err)
		if err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	logger.Info("AutoMigrate completed", "tables", len(tables))
	return nil
}

func tableName(db *gorm.DB, model interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}
