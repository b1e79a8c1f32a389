// File: internal/user/model.go
package user

import (
	"time"

	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel                // Embeds ID, CreatedAt, UpdatedAt
	Email            string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     string         `gorm:"type:varchar(255);not null"`
	DisplayName      string         `gorm:"type:varchar(100);not null"`
	Roles            pq.StringArray `gorm:"type:text[];not null"`
	LastLoginAt      *time.Time     `gorm:"column:last_login_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Roles:       u.Roles,
		CreatedAt:   u.CreatedAt,
	}
}
