// File: internal/notification/service.go
package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for notification operations.
type Service interface {
	// Dispatch persists the given events. It is best-effort: failures are
	// logged and never surfaced to the operation that produced the events.
	Dispatch(ctx context.Context, events []Event)
	GetRecentForUser(ctx context.Context, userID uuid.UUID) ([]Notification, int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Dispatch(ctx context.Context, events []Event) {
	for _, ev := range events {
		n := &Notification{
			UserID:  ev.UserID,
			Message: ev.Message,
			CarID:   ev.CarID,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			s.logger.Warn("Failed to dispatch notification",
				zap.String("userID", ev.UserID.String()),
				zap.String("message", ev.Message),
				zap.Error(err),
			)
		}
	}
}

func (s *service) GetRecentForUser(ctx context.Context, userID uuid.UUID) ([]Notification, int64, error) {
	notifications, err := s.repo.GetRecentByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Marked notifications as read",
		zap.String("userID", userID.String()), zap.Int64("count", count))
	return count, nil
}
