// File: internal/category/repository.go
package category

import (
	"context"
	"errors"
	"strings"

	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for category data operations.
type Repository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountReferencingCars(ctx context.Context, id uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM category repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, category *Category) error {
	category.Slug = strings.ToLower(strings.TrimSpace(category.Slug))
	err := r.db.WithContext(ctx).Create(category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("Category with this name or slug already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Category not found.")
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	normalizedSlug := strings.ToLower(strings.TrimSpace(slug))
	err := r.db.WithContext(ctx).First(&category, "slug = ?", normalizedSlug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Category not found.")
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Category, error) {
	var categories []Category

	// The car_count column is computed per row so list responses can show
	// how many cars reference each category.
	subQuery := r.db.Table("cars").
		Select("count(*)").
		Where("cars.category_id = categories.id")

	err := r.db.WithContext(ctx).Model(&Category{}).
		Select("categories.*, (?) as car_count", subQuery).
		Order("categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *gormRepository) Update(ctx context.Context, category *Category) error {
	if category.Slug != "" {
		category.Slug = strings.ToLower(strings.TrimSpace(category.Slug))
	}
	err := r.db.WithContext(ctx).Save(category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("Category with this name or slug already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Category not found.")
	}
	return nil
}

// CountReferencingCars reports how many cars point at the category,
// soft-deleted ones included.
func (r *gormRepository) CountReferencingCars(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("cars").Where("category_id = ?", id).Count(&count).Error
	return count, err
}
