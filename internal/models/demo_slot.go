package models

import (
	"time"

	"github.com/google/uuid"
)

// Demo slot lifecycle. A slot is created pending; confirmed and canceled are
// terminal states.
const (
	DemoSlotPending   = "pending"
	DemoSlotConfirmed = "confirmed"
	DemoSlotCanceled  = "canceled"
)

// DemoSlot is a member's request to present at an event.
type DemoSlot struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID           uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	LumaEventID        string    `gorm:"size:255;not null;index" json:"luma_event_id"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	Description        string    `gorm:"type:text" json:"description"`
	RequestedTime      time.Time `json:"requested_time"`
	DurationMinutes    int       `gorm:"default:5" json:"duration_minutes"`
	Status             string    `gorm:"size:20;default:'pending'" json:"status"`
	OrganizerConfirmed bool      `gorm:"default:false" json:"organizer_confirmed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
