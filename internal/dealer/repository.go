// File: internal/dealer/repository.go
package dealer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for dealer profile data operations.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM dealer profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new dealer profile record into the database.
func (r *gormRepository) Create(ctx context.Context, profile *Profile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return common.ErrConflict.WithDetails("A dealer profile already exists for this user.")
		}
		return err
	}
	return nil
}

// FindByID retrieves a dealer profile by its ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Dealer profile not found.")
		}
		return nil, err
	}
	return &profile, nil
}

// FindByUserID retrieves the dealer profile belonging to a user.
func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Dealer profile not found for this user.")
		}
		return nil, err
	}
	return &profile, nil
}

// Update saves changes to an existing dealer profile record.
func (r *gormRepository) Update(ctx context.Context, profile *Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete removes a dealer profile in one transaction. Cars that referenced
// the profile are kept and orphaned with a null dealer_profile_id.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("cars").Where("dealer_profile_id = ?", id).Update("dealer_profile_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach cars from dealer profile %s: %w", id, err)
		}
		result := tx.Delete(&Profile{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete dealer profile %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound.WithDetails("Dealer profile not found.")
		}
		return nil
	})
}
