// File: internal/dealer/service.go
package dealer

import (
	"context"

	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for dealer profile operations.
type Service interface {
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateOwnProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Profile, error)
	AdminDeleteProfile(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new dealer profile service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// GetOwnProfile returns the profile belonging to the given user.
func (s *service) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// UpdateOwnProfile updates the profile belonging to the given user.
func (s *service) UpdateOwnProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.DisplayName = req.DisplayName
	profile.ContactEmail = req.ContactEmail
	profile.Phone = req.Phone
	profile.City = req.City

	if err := s.repo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update dealer profile", zap.String("userID", userID.String()), zap.Error(err))
		return nil, err
	}
	return profile, nil
}

// AdminDeleteProfile removes a dealer profile. The profile's cars are kept
// as ownerless listings.
func (s *service) AdminDeleteProfile(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to delete dealer profile", zap.String("profileID", id.String()), zap.Error(err))
		}
		return err
	}
	s.logger.Info("Dealer profile deleted", zap.String("profileID", id.String()))
	return nil
}
