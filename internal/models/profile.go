package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Verification states for a member profile.
const (
	VerificationUnverified = "unverified"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
)

// Profile is the member record every mutable entity hangs off.
// ExternalID is the identity provider's subject claim; it stays nil until the
// member links an account, and at most one profile may claim a given subject.
type Profile struct {
	ID                uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID        *string                    `gorm:"size:255;uniqueIndex" json:"-"`
	Email             string                     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name              string                     `gorm:"size:255" json:"name"`
	Bio               string                     `gorm:"type:text" json:"bio"`
	Skills            datatypes.JSONSlice[string] `json:"skills"`
	GithubURL         string                     `gorm:"size:512" json:"github_url"`
	LinkedinURL       string                     `gorm:"size:512" json:"linkedin_url"`
	WebsiteURL        string                     `gorm:"size:512" json:"website_url"`
	VerificationState string                     `gorm:"size:20;default:'unverified'" json:"verification_state"`
	IsAdmin           bool                       `gorm:"default:false" json:"is_admin"`
	AttendanceStreak  int                        `gorm:"default:0" json:"attendance_streak"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}
