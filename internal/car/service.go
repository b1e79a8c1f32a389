// File: internal/car/service.go
package car

import (
	"context"
	"fmt"
	"time"

	"roadsuite_backend/internal/category"
	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for car listing business logic.
type Service interface {
	Create(ctx context.Context, caller common.Caller, req CreateCarRequest) (*Car, error)
	GetByID(ctx context.Context, caller common.Caller, id uuid.UUID) (*Car, error)
	Search(ctx context.Context, caller common.Caller, query SearchQuery) ([]Car, *common.Pagination, error)
	OwnListings(ctx context.Context, caller common.Caller, query SearchQuery) ([]Car, *common.Pagination, error)
	Update(ctx context.Context, caller common.Caller, id uuid.UUID, req UpdateCarRequest) (*Car, error)
	// Delete removes a car either softly ("mark") or permanently. Moderators
	// may delete only when the caller grants it for the call; admins and
	// owners always may.
	Delete(ctx context.Context, caller common.Caller, id uuid.UUID, action string, allowModerator bool) error
}

type service struct {
	repo       Repository
	categories category.Repository
	dealers    dealer.Repository
	notifier   notification.Service
	logger     *zap.Logger
}

// NewService creates a new car service.
func NewService(
	repo Repository,
	categories category.Repository,
	dealers dealer.Repository,
	notifier notification.Service,
	logger *zap.Logger,
) Service {
	return &service{
		repo:       repo,
		categories: categories,
		dealers:    dealers,
		notifier:   notifier,
		logger:     logger,
	}
}

// Create validates the request and persists a new car. Dealers start in
// pending; moderator and admin listings go live immediately.
func (s *service) Create(ctx context.Context, caller common.Caller, req CreateCarRequest) (*Car, error) {
	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Category with ID %s not found.", req.CategoryID))
	}

	profile, err := s.dealers.FindByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, common.NewValidationAPIError(map[string]string{
			"dealerProfile": "Dealer profile not found. Contact administrator.",
		})
	}

	status := StatusPending
	if caller.IsModeratorOrAbove() {
		status = StatusApproved
	}

	newCar := &Car{
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		Price:           req.Price,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		DealerProfileID: &profile.ID,
		Status:          status,
		CreatedUtc:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, newCar); err != nil {
		s.logger.Error("Failed to create car", zap.Error(err), zap.String("userID", caller.UserID.String()))
		return nil, err
	}

	s.logger.Info("Car created",
		zap.String("carID", newCar.ID.String()),
		zap.String("status", string(newCar.Status)),
		zap.String("userID", caller.UserID.String()),
	)
	return s.repo.FindByID(ctx, newCar.ID)
}

// GetByID returns a single car, applying the same visibility rules as the
// listing: soft-deleted cars are hidden from everyone on this path (the
// moderation detail view is where deleted rows surface), and non-approved
// cars are only shown to privileged callers and their owner.
func (s *service) GetByID(ctx context.Context, caller common.Caller, id uuid.UUID) (*Car, error) {
	carModel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if carModel.IsDeleted {
		return nil, common.ErrNotFound.WithDetails("Car not found.")
	}

	if caller.IsModeratorOrAbove() {
		return carModel, nil
	}

	isOwner, err := s.isOwner(ctx, caller, carModel)
	if err != nil {
		return nil, err
	}
	if isOwner {
		return carModel, nil
	}

	if carModel.Status != StatusApproved {
		return nil, common.ErrForbidden.WithDetails("This car is not publicly visible.")
	}
	return carModel, nil
}

// Search runs the public marketplace listing for the given caller.
func (s *service) Search(ctx context.Context, caller common.Caller, query SearchQuery) ([]Car, *common.Pagination, error) {
	query.Sanitize()
	spec := BuildFilter(caller, s.toCriteria(query))
	return s.repo.Search(ctx, spec, query.PaginationQuery)
}

// OwnListings runs the my-cars view for the authenticated caller.
func (s *service) OwnListings(ctx context.Context, caller common.Caller, query SearchQuery) ([]Car, *common.Pagination, error) {
	query.Sanitize()
	spec := BuildOwnerFilter(caller, s.toCriteria(query))
	return s.repo.Search(ctx, spec, query.PaginationQuery)
}

// Update applies an edit under the ownership guard. Edits by a dealer who is
// not also moderator or admin force the car back to pending review.
func (s *service) Update(ctx context.Context, caller common.Caller, id uuid.UUID, req UpdateCarRequest) (*Car, error) {
	if req.ID != id {
		return nil, common.ErrBadRequest.WithDetails("Car ID in path and payload do not match.")
	}

	carModel, err := s.loadGuarded(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Category with ID %s not found.", req.CategoryID))
	}

	now := time.Now().UTC()
	carModel.Make = req.Make
	carModel.Model = req.Model
	carModel.Year = req.Year
	carModel.Price = req.Price
	carModel.Description = req.Description
	carModel.CategoryID = req.CategoryID
	carModel.UpdatedUtc = &now

	reverted := false
	if caller.IsDealerOnly() {
		carModel.Status = StatusPending
		reverted = true
	}

	if err := s.repo.Update(ctx, carModel); err != nil {
		s.logger.Error("Failed to update car", zap.Error(err), zap.String("carID", id.String()))
		return nil, err
	}

	message := fmt.Sprintf("Your car %s %s was updated.", carModel.Make, carModel.Model)
	if reverted {
		message = fmt.Sprintf("Your car %s %s was updated and is awaiting approval.", carModel.Make, carModel.Model)
	}
	s.notifyOwner(ctx, carModel, message, true)

	s.logger.Info("Car updated",
		zap.String("carID", id.String()),
		zap.Bool("revertedToPending", reverted),
		zap.String("userID", caller.UserID.String()),
	)
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, caller common.Caller, id uuid.UUID, action string, allowModerator bool) error {
	if action != DeleteActionMark && action != DeleteActionPermanent {
		return common.NewValidationAPIError(map[string]string{
			"action": fmt.Sprintf("The action must be one of: %s, %s.", DeleteActionMark, DeleteActionPermanent),
		})
	}

	carModel, err := s.loadGuardedForDelete(ctx, caller, id, allowModerator)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Your car %s %s was removed.", carModel.Make, carModel.Model)
	keepCarRef := action == DeleteActionMark

	switch action {
	case DeleteActionMark:
		now := time.Now().UTC()
		carModel.IsDeleted = true
		carModel.Status = StatusMarkedForDeletion
		carModel.DeletedUtc = &now
		carModel.UpdatedUtc = &now
		if err := s.repo.Update(ctx, carModel); err != nil {
			s.logger.Error("Failed to soft delete car", zap.Error(err), zap.String("carID", id.String()))
			return err
		}
	case DeleteActionPermanent:
		if err := s.repo.DeletePermanently(ctx, id); err != nil {
			s.logger.Error("Failed to permanently delete car", zap.Error(err), zap.String("carID", id.String()))
			return err
		}
	}

	s.notifyOwner(ctx, carModel, message, keepCarRef)
	s.logger.Info("Car deleted",
		zap.String("carID", id.String()),
		zap.String("action", action),
		zap.String("userID", caller.UserID.String()),
	)
	return nil
}

func (s *service) toCriteria(query SearchQuery) Criteria {
	criteria := Criteria{
		Make:       query.Make,
		CategoryID: query.CategoryID,
		SortOrder:  query.SortOrder,
	}
	if query.Status != "" {
		if status, ok := ParseStatus(query.Status); ok {
			criteria.Status = &status
		}
	}
	return criteria
}

func (s *service) isOwner(ctx context.Context, caller common.Caller, carModel *Car) (bool, error) {
	if !caller.IsAuthenticated() || carModel.DealerProfileID == nil {
		return false, nil
	}
	profile, err := s.dealers.FindByUserID(ctx, caller.UserID)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrNotFound.Code {
			return false, nil
		}
		return false, err
	}
	return profile.ID == *carModel.DealerProfileID, nil
}

// loadGuarded fetches a car and checks write access. Failed guards surface as
// not-found so existence does not leak to outsiders.
func (s *service) loadGuarded(ctx context.Context, caller common.Caller, id uuid.UUID) (*Car, error) {
	carModel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.IsModeratorOrAbove() {
		return carModel, nil
	}

	isOwner, err := s.isOwner(ctx, caller, carModel)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, common.ErrNotFound.WithDetails("Car not found.")
	}
	return carModel, nil
}

func (s *service) loadGuardedForDelete(ctx context.Context, caller common.Caller, id uuid.UUID, allowModerator bool) (*Car, error) {
	carModel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.IsAdmin() {
		return carModel, nil
	}
	if caller.HasRole(common.RoleModerator) {
		if allowModerator {
			return carModel, nil
		}
		return nil, common.ErrForbidden.WithDetails("Moderators are not permitted to delete this car.")
	}

	isOwner, err := s.isOwner(ctx, caller, carModel)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, common.ErrNotFound.WithDetails("Car not found.")
	}
	return carModel, nil
}

// notifyOwner dispatches a notification to the car's dealer owner if one is
// resolvable. Cars without a dealer profile produce no notification. The car
// reference is dropped after a permanent delete since the row no longer exists.
func (s *service) notifyOwner(ctx context.Context, carModel *Car, message string, keepCarRef bool) {
	if carModel.DealerProfileID == nil {
		return
	}

	profile := carModel.DealerProfile
	if profile == nil {
		loaded, err := s.dealers.FindByID(ctx, *carModel.DealerProfileID)
		if err != nil {
			s.logger.Debug("No resolvable dealer owner for notification",
				zap.String("carID", carModel.ID.String()), zap.Error(err))
			return
		}
		profile = loaded
	}

	var carRef *uuid.UUID
	if keepCarRef {
		carID := carModel.ID
		carRef = &carID
	}
	s.notifier.Dispatch(ctx, []notification.Event{{
		UserID:  profile.UserID,
		Message: message,
		CarID:   carRef,
	}})
}
