package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog stores the audit trail of mutation outcomes. Rejected, duplicate
// and unauthorized attempts all land here via the async logging handler.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Level     string         `gorm:"size:10;not null;index" json:"level"`
	Message   string         `gorm:"type:text" json:"message"`
	Subject   string         `gorm:"size:255;index" json:"subject"`
	Mutation  string         `gorm:"size:100;index" json:"mutation"`
	Outcome   string         `gorm:"size:30" json:"outcome"`
	Error     string         `gorm:"type:text" json:"error"`
	Extra     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
}
