// File: internal/moderation/service.go
package moderation

import (
	"context"
	"fmt"
	"time"

	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for moderation operations. All methods are
// reserved for moderator and admin callers; role gating happens at the
// transport layer.
type Service interface {
	PendingCars(ctx context.Context, page common.PaginationQuery) ([]car.Car, *common.Pagination, error)
	GetCar(ctx context.Context, id uuid.UUID) (*car.Car, []Feedback, error)
	Approve(ctx context.Context, caller common.Caller, id uuid.UUID) (*car.Car, error)
	Reject(ctx context.Context, caller common.Caller, id uuid.UUID, req RejectRequest) (*car.Car, error)
}

type service struct {
	cars     car.Repository
	feedback Repository
	dealers  dealer.Repository
	notifier notification.Service
	logger   *zap.Logger
}

// NewService creates a new moderation service.
func NewService(
	cars car.Repository,
	feedback Repository,
	dealers dealer.Repository,
	notifier notification.Service,
	logger *zap.Logger,
) Service {
	return &service{
		cars:     cars,
		feedback: feedback,
		dealers:  dealers,
		notifier: notifier,
		logger:   logger,
	}
}

// PendingCars lists the review queue, oldest submissions first.
func (s *service) PendingCars(ctx context.Context, page common.PaginationQuery) ([]car.Car, *common.Pagination, error) {
	page.Sanitize()
	spec := car.FilterSpec{
		Predicates: []car.Predicate{
			{Expr: "cars.is_deleted = ?", Args: []interface{}{false}},
			{Expr: "cars.status = ?", Args: []interface{}{car.StatusPending}},
		},
		Sort: []string{"cars.created_utc ASC"},
	}
	return s.cars.Search(ctx, spec, page)
}

// GetCar returns the full moderation view of a car, soft-deleted rows included.
func (s *service) GetCar(ctx context.Context, id uuid.UUID) (*car.Car, []Feedback, error) {
	carModel, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.feedback.ListByCarID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return carModel, history, nil
}

// Approve transitions a car to approved regardless of its current status.
// Approval also clears the soft-delete flag and stamp, un-deleting rows that
// were marked for deletion.
func (s *service) Approve(ctx context.Context, caller common.Caller, id uuid.UUID) (*car.Car, error) {
	carModel, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	carModel.Status = car.StatusApproved
	carModel.IsDeleted = false
	carModel.DeletedUtc = nil
	carModel.UpdatedUtc = &now

	if err := s.cars.Update(ctx, carModel); err != nil {
		s.logger.Error("Failed to approve car", zap.Error(err), zap.String("carID", id.String()))
		return nil, err
	}

	s.notifyOwner(ctx, carModel, fmt.Sprintf("Your car %s %s has been approved.", carModel.Make, carModel.Model))
	s.logger.Info("Car approved",
		zap.String("carID", id.String()),
		zap.String("moderatorID", caller.UserID.String()),
	)
	return s.cars.FindByID(ctx, id)
}

// Reject transitions a car to rejected and records the reason as a feedback
// row.
func (s *service) Reject(ctx context.Context, caller common.Caller, id uuid.UUID, req RejectRequest) (*car.Car, error) {
	carModel, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	carModel.Status = car.StatusRejected
	carModel.UpdatedUtc = &now

	if err := s.cars.Update(ctx, carModel); err != nil {
		s.logger.Error("Failed to reject car", zap.Error(err), zap.String("carID", id.String()))
		return nil, err
	}

	feedback := &Feedback{
		CarID:       carModel.ID,
		ModeratorID: caller.UserID,
		Reason:      req.Reason,
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		s.logger.Error("Failed to record moderation feedback", zap.Error(err), zap.String("carID", id.String()))
		return nil, err
	}

	s.notifyOwner(ctx, carModel, fmt.Sprintf("Your car %s %s was rejected: %s", carModel.Make, carModel.Model, req.Reason))
	s.logger.Info("Car rejected",
		zap.String("carID", id.String()),
		zap.String("moderatorID", caller.UserID.String()),
	)
	return s.cars.FindByID(ctx, id)
}

func (s *service) notifyOwner(ctx context.Context, carModel *car.Car, message string) {
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

	carID := carModel.ID
	s.notifier.Dispatch(ctx, []notification.Event{{
		UserID:  profile.UserID,
		Message: message,
		CarID:   &carID,
	}})
}
