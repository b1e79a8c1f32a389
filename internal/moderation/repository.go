// File: internal/moderation/repository.go
package moderation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for moderation feedback data operations.
type Repository interface {
	Create(ctx context.Context, feedback *Feedback) error
	ListByCarID(ctx context.Context, carID uuid.UUID) ([]Feedback, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM moderation feedback repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new feedback record into the database.
func (r *gormRepository) Create(ctx context.Context, feedback *Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create moderation feedback: %w", err)
	}
	return nil
}

// ListByCarID retrieves the feedback history of a car, newest first.
func (r *gormRepository) ListByCarID(ctx context.Context, carID uuid.UUID) ([]Feedback, error) {
	var feedback []Feedback
	err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("created_utc DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, fmt.Errorf("fetching moderation feedback for car %s failed: %w", carID, err)
	}
	return feedback, nil
}
