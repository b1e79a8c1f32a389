// File: internal/dealer/model.go
package dealer

import (
	"time"

	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
)

// Profile represents a dealer profile attached to a user account.
// A user has at most one profile.
type Profile struct {
	common.BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	DisplayName  string    `gorm:"type:varchar(100);not null"`
	ContactEmail *string   `gorm:"type:varchar(255)"`
	Phone        *string   `gorm:"type:varchar(30)"`
	City         *string   `gorm:"type:varchar(100)"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "dealer_profiles"
}

// UpdateProfileRequest defines the structure for profile update requests.
type UpdateProfileRequest struct {
	DisplayName  string  `json:"display_name" binding:"required,max=100"`
	ContactEmail *string `json:"contact_email,omitempty" binding:"omitempty,email,max=255"`
	Phone        *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	City         *string `json:"city,omitempty" binding:"omitempty,max=100"`
}

// ProfileResponse defines the structure for profile data sent in API responses.
type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	City         *string   `json:"city,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToProfileResponse converts a Profile model to a ProfileResponse DTO.
func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		DisplayName:  p.DisplayName,
		ContactEmail: p.ContactEmail,
		Phone:        p.Phone,
		City:         p.City,
		CreatedAt:    p.CreatedAt,
	}
}
