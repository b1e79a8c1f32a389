// File: internal/notification/repository.go
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecentLimit caps how many notifications the list endpoint returns.
const RecentLimit = 50

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	GetRecentByUserID(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// GORMRepository implements the Repository interface using GORM.
type GORMRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM notification repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &GORMRepository{db: db}
}

// Create inserts a new notification into the database.
func (r *GORMRepository) Create(ctx context.Context, notification *Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetRecentByUserID retrieves the newest notifications for a user, capped at RecentLimit.
func (r *GORMRepository) GetRecentByUserID(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	var notifications []Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_utc DESC").
		Limit(RecentLimit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("fetching notifications for user %s failed: %w", userID, err)
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *GORMRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications for user %s failed: %w", userID, err)
	}
	return count, nil
}

// MarkAllAsRead flags every unread notification of a user as read and
// returns how many rows changed.
func (r *GORMRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("marking notifications as read for user %s failed: %w", userID, result.Error)
	}
	return result.RowsAffected, nil
}
