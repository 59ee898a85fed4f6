package models

import (
	"time"

	"github.com/google/uuid"
)

// Event mirrors an occurrence from the external calendar provider (Luma).
// Rows are upserted by the sync worker, keyed on the provider's event id.
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LumaEventID string    `gorm:"size:255;not null;uniqueIndex" json:"luma_event_id"`
	Name        string    `gorm:"size:255" json:"name"`
	URL         string    `gorm:"size:512" json:"url"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
