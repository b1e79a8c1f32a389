// File: internal/auth/model.go
package auth

import (
	"time"

	"roadsuite_backend/internal/user"
)

// RegisterRequest defines the structure for dealer registration requests.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"` // bcrypt max is 72 bytes
	DisplayName string `json:"display_name" binding:"required,max=100"`
}

// LoginRequest defines the structure for login requests.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse defines the structure for token responses.
type TokenResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   time.Time         `json:"expires_at"`
	User        user.UserResponse `json:"user"`
}
