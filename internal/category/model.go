// File: internal/category/model.go
package category

import (
	"time"

	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
)

// Category represents the category model in the database.
type Category struct {
	common.BaseModel
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name,unique"`
	Slug        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_slug,unique"`
	Description *string `gorm:"type:text"`
	CarCount    int     `gorm:"column:car_count;->"` // read-only, no writes
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// --- DTOs ---

// CategoryResponse defines the structure for category data sent in API responses.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CarCount    int       `json:"car_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a Category model to a CategoryResponse DTO.
func ToCategoryResponse(category *Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		CarCount:    category.CarCount,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// AdminCreateCategoryRequest for admin creating or updating categories.
type AdminCreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Slug        string  `json:"slug" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}
