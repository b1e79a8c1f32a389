// File: internal/category/service.go
package category

import (
	"context"
	"strings"

	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for category-related business logic.
type Service interface {
	// Admin methods
	AdminCreateCategory(ctx context.Context, req AdminCreateCategoryRequest) (*Category, error)
	AdminUpdateCategory(ctx context.Context, id uuid.UUID, req AdminCreateCategoryRequest) (*Category, error)
	AdminDeleteCategory(ctx context.Context, id uuid.UUID) error

	// Public methods
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	GetAllCategories(ctx context.Context) ([]Category, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new category service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// --- Admin Methods ---

func (s *service) AdminCreateCategory(ctx context.Context, req AdminCreateCategoryRequest) (*Category, error) {
	finalSlug := strings.TrimSpace(req.Slug)
	if finalSlug == "" {
		finalSlug = slug.Make(req.Name)
	} else {
		finalSlug = slug.Make(finalSlug)
	}

	category := &Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        finalSlug,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}
	s.logger.Info("Category created successfully", zap.String("id", category.ID.String()), zap.String("name", category.Name))
	return category, nil
}

func (s *service) AdminUpdateCategory(ctx context.Context, id uuid.UUID, req AdminCreateCategoryRequest) (*Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(req.Name)
	if strings.TrimSpace(req.Slug) != "" {
		category.Slug = slug.Make(req.Slug)
	} else {
		category.Slug = slug.Make(req.Name)
	}
	category.Description = req.Description

	if err := s.repo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return category, nil
}

// AdminDeleteCategory removes a category. Deletion is refused while any car,
// soft-deleted or not, still references it.
func (s *service) AdminDeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountReferencingCars(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return common.ErrConflict.WithDetails("Category is still referenced by existing cars and cannot be deleted.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete category", zap.Error(err), zap.String("id", id.String()))
		return err
	}
	s.logger.Info("Category deleted", zap.String("id", id.String()))
	return nil
}

// --- Public Methods ---

func (s *service) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetCategoryBySlug(ctx context.Context, slugStr string) (*Category, error) {
	return s.repo.FindBySlug(ctx, slugStr)
}

func (s *service) GetAllCategories(ctx context.Context) ([]Category, error) {
	return s.repo.FindAll(ctx)
}
