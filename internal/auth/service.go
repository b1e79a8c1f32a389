// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"time"

	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/config"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the interface for authentication operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*user.UserResponse, error)
}

type service struct {
	cfg        *config.Config
	users      user.Repository
	dealers    dealer.Repository
	tokens     TokenService
	logger     *zap.Logger
	bcryptCost int
}

// NewService creates a new authentication service.
func NewService(
	cfg *config.Config,
	users user.Repository,
	dealers dealer.Repository,
	tokens TokenService,
	logger *zap.Logger,
) Service {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &service{
		cfg:        cfg,
		users:      users,
		dealers:    dealers,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: cost,
	}
}

// Register creates a new dealer account with its dealer profile.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not process registration.")
	}

	newUser := &user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		Roles:        []string{common.RoleDealer},
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		return nil, err
	}

	contactEmail := newUser.Email
	profile := &dealer.Profile{
		UserID:       newUser.ID,
		DisplayName:  req.DisplayName,
		ContactEmail: &contactEmail,
	}
	if err := s.dealers.Create(ctx, profile); err != nil {
		s.logger.Error("Failed to create dealer profile for new user",
			zap.String("userID", newUser.ID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Dealer registered", zap.String("userID", newUser.ID.String()), zap.String("email", newUser.Email))
	return s.issueToken(newUser)
}

// Login verifies credentials and issues an access token.
func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) && apiErr.Code == common.ErrNotFound.Code {
			return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}

	now := time.Now()
	u.LastLoginAt = &now
	if err := s.users.Update(ctx, u); err != nil {
		// A failed login-timestamp update does not block the login itself.
		s.logger.Warn("Failed to update last login time", zap.String("userID", u.ID.String()), zap.Error(err))
	}

	return s.issueToken(u)
}

// GetCurrentUser returns the profile of the authenticated user.
func (s *service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*user.UserResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToUserResponse(u)
	return &resp, nil
}

func (s *service) issueToken(u *user.User) (*TokenResponse, error) {
	tokenString, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.Roles)
	if err != nil {
		return nil, common.ErrInternalServer.WithDetails("Could not issue access token.")
	}
	return &TokenResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user.ToUserResponse(u),
	}, nil
}
