package database

import (
	"fmt"

	"github.com/lathees-dev/Budget-App/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
