package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is a showcase artifact owned by exactly one profile.
type Project struct {
	ID          uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID    uuid.UUID                  `gorm:"type:uuid;not null;index" json:"member_id"`
	Title       string                     `gorm:"size:255;not null" json:"title"`
	Description string                     `gorm:"type:text" json:"description"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	ImageURLs   datatypes.JSONSlice[string] `json:"image_urls"`
	RepoURL     string                     `gorm:"size:512" json:"repo_url"`
	DemoURL     string                     `gorm:"size:512" json:"demo_url"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}
