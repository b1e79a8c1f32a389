// File: internal/car/repository.go
package car

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for car data operations.
type Repository interface {
	Create(ctx context.Context, car *Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*Car, error)
	Update(ctx context.Context, car *Car) error
	Search(ctx context.Context, spec FilterSpec, page common.PaginationQuery) ([]Car, *common.Pagination, error)
	DeletePermanently(ctx context.Context, id uuid.UUID) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM car repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) preloader(query *gorm.DB) *gorm.DB {
	return query.Preload("Category").Preload("DealerProfile")
}

// Create inserts a new car record into the database.
func (r *gormRepository) Create(ctx context.Context, car *Car) error {
	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

// FindByID retrieves a car by ID with its category and dealer profile.
// Soft-deleted rows are returned; visibility decisions belong to the service.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	var carModel Car
	err := r.preloader(r.db.WithContext(ctx)).First(&carModel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Car not found.")
		}
		return nil, err
	}
	return &carModel, nil
}

// Update saves changes to an existing car record.
func (r *gormRepository) Update(ctx context.Context, car *Car) error {
	// Save with associations disabled: category and dealer rows are never
	// written through a car update.
	err := r.db.WithContext(ctx).Omit("Category", "DealerProfile").Save(car).Error
	if err != nil {
		return fmt.Errorf("failed to update car %s: %w", car.ID, err)
	}
	return nil
}

// Search applies the given query plan and returns one page of cars together
// with pagination info. The total count is taken before skip/take so page
// counts reflect the whole filtered set.
func (r *gormRepository) Search(ctx context.Context, spec FilterSpec, page common.PaginationQuery) ([]Car, *common.Pagination, error) {
	var cars []Car
	var totalItems int64

	dbQuery := r.db.WithContext(ctx).Model(&Car{})
	for _, p := range spec.Predicates {
		dbQuery = dbQuery.Where(p.Expr, p.Args...)
	}

	if err := dbQuery.Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count cars: %w", err)
	}

	for _, clause := range spec.Sort {
		dbQuery = dbQuery.Order(clause)
	}

	dbQuery = r.preloader(dbQuery).Offset(page.Offset()).Limit(page.Limit())
	if err := dbQuery.Find(&cars).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to search cars: %w", err)
	}

	pagination := common.NewPagination(totalItems, page.Page, page.PageSize)
	return cars, pagination, nil
}

// DeletePermanently removes a car row and its dependents in one transaction:
// moderation feedback rows cascade, notification references are nulled out.
func (r *gormRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM moderation_feedbacks WHERE car_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete moderation feedback for car %s: %w", id, err)
		}
		if err := tx.Table("notifications").Where("car_id = ?", id).Update("car_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach notifications for car %s: %w", id, err)
		}
		result := tx.Delete(&Car{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete car %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound.WithDetails("Car not found.")
		}
		return nil
	})
}

// PurgeDeletedBefore hard-deletes soft-deleted cars whose DeletedUtc is older
// than the cutoff and returns how many rows were removed.
func (r *gormRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Car{}).
		Where("is_deleted = ? AND deleted_utc IS NOT NULL AND deleted_utc < ?", true, cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to collect purgeable cars: %w", err)
	}

	var purged int64
	for _, id := range ids {
		if err := r.DeletePermanently(ctx, id); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}
