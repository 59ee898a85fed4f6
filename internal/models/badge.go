package models

import (
	"time"

	"github.com/google/uuid"
)

// Badge is an achievement definition, globally unique by name.
type Badge struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemberBadge awards a badge to a profile. One award per (badge, member).
type MemberBadge struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BadgeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_member_badge" json:"badge_id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_member_badge" json:"member_id"`
	AwardedAt time.Time `json:"awarded_at"`
}
