// File: internal/car/model.go
package car

import (
	"time"

	"roadsuite_backend/internal/category"
	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/dealer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the moderation state of a car listing.
type Status string

const (
	StatusPending           Status = "pending"
	StatusApproved          Status = "approved"
	StatusRejected          Status = "rejected"
	StatusMarkedForDeletion Status = "marked_for_deletion"
)

// ParseStatus maps a request string onto a known status value.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusMarkedForDeletion:
		return Status(s), true
	}
	return "", false
}

// Delete action tokens accepted by the delete endpoint.
const (
	DeleteActionMark      = "mark"
	DeleteActionPermanent = "permanent"
)

// Car represents a car listing in the database.
//
// Status and IsDeleted are deliberately independent columns: soft delete sets
// both, but Approve clears IsDeleted without touching MarkedForDeletion rows
// reached through other paths. Folding the flag into the status enum is an
// open product question, so both are kept as stored.
type Car struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key"`
	Make            string            `gorm:"type:varchar(50);not null;index"`
	Model           string            `gorm:"type:varchar(50);not null"`
	Year            int               `gorm:"not null"`
	Price           float64           `gorm:"type:numeric(12,2);not null"`
	Description     string            `gorm:"type:text"`
	CategoryID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Category        category.Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT"`
	DealerProfileID *uuid.UUID        `gorm:"type:uuid;index"`
	DealerProfile   *dealer.Profile   `gorm:"foreignKey:DealerProfileID;references:ID;constraint:OnDelete:SET NULL"`
	Status          Status            `gorm:"type:varchar(30);not null;default:'pending';index"`
	CreatedUtc      time.Time         `gorm:"column:created_utc;not null"`
	UpdatedUtc      *time.Time        `gorm:"column:updated_utc"`
	IsDeleted       bool              `gorm:"not null;default:false;index"`
	DeletedUtc      *time.Time        `gorm:"column:deleted_utc"`
}

// TableName specifies the table name for the Car model.
func (Car) TableName() string {
	return "cars"
}

// BeforeCreate assigns an ID and creation stamp when the database defaults
// cannot (e.g. sqlite in tests).
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedUtc.IsZero() {
		c.CreatedUtc = time.Now().UTC()
	}
	return nil
}

// --- DTOs ---

// CreateCarRequest defines the structure for creating a car listing.
type CreateCarRequest struct {
	Make        string    `json:"make" binding:"required,max=50"`
	Model       string    `json:"model" binding:"required,max=50"`
	Year        int       `json:"year" binding:"required,gte=1990,lte=2100"`
	Price       float64   `json:"price" binding:"gte=0,lte=1000000"`
	Description string    `json:"description" binding:"omitempty,max=1000"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
}

// UpdateCarRequest defines the structure for editing a car listing.
// The ID must match the path parameter of the request.
type UpdateCarRequest struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	Make        string    `json:"make" binding:"required,max=50"`
	Model       string    `json:"model" binding:"required,max=50"`
	Year        int       `json:"year" binding:"required,gte=1990,lte=2100"`
	Price       float64   `json:"price" binding:"gte=0,lte=1000000"`
	Description string    `json:"description" binding:"omitempty,max=1000"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
}

// SearchQuery holds the filter, sort, and pagination parameters of the
// public listing and my-cars endpoints.
type SearchQuery struct {
	Make      string `form:"make"`
	Status    string `form:"status"`
	SortOrder string `form:"sort_order"`
	common.PaginationQuery

	// Parsed from the category_id query parameter by the handler.
	CategoryID *uuid.UUID `form:"-"`
}

// CarResponse defines the structure for car data sent in API responses.
type CarResponse struct {
	ID              uuid.UUID  `json:"id"`
	Make            string     `json:"make"`
	Model           string     `json:"model"`
	Year            int        `json:"year"`
	Price           float64    `json:"price"`
	Description     string     `json:"description,omitempty"`
	CategoryID      uuid.UUID  `json:"category_id"`
	CategoryName    string     `json:"category_name,omitempty"`
	DealerProfileID *uuid.UUID `json:"dealer_profile_id,omitempty"`
	DealerName      string     `json:"dealer_name,omitempty"`
	Status          Status     `json:"status"`
	CreatedUtc      time.Time  `json:"created_utc"`
	UpdatedUtc      *time.Time `json:"updated_utc,omitempty"`
	IsDeleted       bool       `json:"is_deleted,omitempty"`
	DeletedUtc      *time.Time `json:"deleted_utc,omitempty"`
}

// ToCarResponse converts a Car model to a CarResponse DTO.
func ToCarResponse(c *Car) CarResponse {
	resp := CarResponse{
		ID:              c.ID,
		Make:            c.Make,
		Model:           c.Model,
		Year:            c.Year,
		Price:           c.Price,
		Description:     c.Description,
		CategoryID:      c.CategoryID,
		DealerProfileID: c.DealerProfileID,
		Status:          c.Status,
		CreatedUtc:      c.CreatedUtc,
		UpdatedUtc:      c.UpdatedUtc,
		IsDeleted:       c.IsDeleted,
		DeletedUtc:      c.DeletedUtc,
	}
	if c.Category.ID != uuid.Nil {
		resp.CategoryName = c.Category.Name
	}
	if c.DealerProfile != nil {
		resp.DealerName = c.DealerProfile.DisplayName
	}
	return resp
}
