package models

import (
	"time"

	"github.com/google/uuid"
)

// APIKey authenticates check-in kiosks at events. The raw key is shown once
// at mint time; only a bcrypt hash is stored, with a sha256 lookup hash so
// verification does not scan the table.
type APIKey struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	LookupHash string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	KeyHash    string     `gorm:"size:100;not null" json:"-"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid" json:"created_by"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
