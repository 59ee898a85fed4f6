package models

import (
	"time"

	"github.com/google/uuid"
)

const AttendanceCheckedIn = "checked_in"

// Attendance links a profile to one external event occurrence.
// The composite unique index is what makes concurrent duplicate check-ins
// resolve to exactly one winner.
type Attendance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_member_event" json:"member_id"`
	LumaEventID string    `gorm:"size:255;not null;uniqueIndex:idx_attendance_member_event" json:"luma_event_id"`
	Status      string    `gorm:"size:20;default:'checked_in'" json:"status"`
	CheckedInAt time.Time `json:"checked_in_at"`
	CreatedAt   time.Time `json:"created_at"`
}
