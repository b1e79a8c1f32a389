// File: internal/moderation/model.go
package moderation

import (
	"time"

	"roadsuite_backend/internal/car"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback records one moderation decision on a car, currently only
// rejections carry feedback. Rows are removed together with their car.
type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CarID       uuid.UUID `gorm:"type:uuid;not null;index" json:"car_id"`
	ModeratorID uuid.UUID `gorm:"type:uuid;not null" json:"moderator_id"`
	Reason      string    `gorm:"type:varchar(500);not null" json:"reason"`
	CreatedAt   time.Time `gorm:"column:created_utc;not null;default:current_timestamp" json:"created_utc"`
}

// TableName specifies the table name for the Feedback model.
func (Feedback) TableName() string {
	return "moderation_feedbacks"
}

// BeforeCreate assigns an ID when the database default cannot (e.g. sqlite in tests).
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// RejectRequest defines the structure for reject requests.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// CarDetailResponse is the moderation view of a car: the full record plus
// its feedback history.
type CarDetailResponse struct {
	Car      car.CarResponse `json:"car"`
	Feedback []Feedback      `json:"feedback"`
}
