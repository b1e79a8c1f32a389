// File: internal/platform/database/migrate.go
package database

import (
	"fmt"

	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/category"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/moderation"
	"roadsuite_backend/internal/notification"
	"roadsuite_backend/internal/user"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model. Order matters:
// referenced tables first.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&dealer.Profile{},
		&category.Category{},
		&car.Car{},
		&moderation.Feedback{},
		&notification.Notification{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
