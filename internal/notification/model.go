// File: internal/notification/model.go
package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification represents a dealer-facing notification row.
// Notifications are immutable once created except for the read flag.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_user_read" json:"user_id"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	CarID     *uuid.UUID `gorm:"type:uuid" json:"car_id,omitempty"` // Nullable, cleared when the car is purged
	IsRead    bool       `gorm:"not null;default:false;index:idx_notifications_user_read" json:"is_read"`
	CreatedAt time.Time  `gorm:"column:created_utc;not null;default:current_timestamp" json:"created_utc"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns an ID when the database default cannot (e.g. sqlite in tests).
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// Event describes a notification to be dispatched after the listing
// operation that produced it has been committed.
type Event struct {
	UserID  uuid.UUID
	Message string
	CarID   *uuid.UUID
}
