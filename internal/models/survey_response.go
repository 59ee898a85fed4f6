package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SurveyResponse holds a member's answer set for one survey. Re-submission
// updates the existing row (upsert on the member+survey unique index).
type SurveyResponse struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID    string            `gorm:"size:100;not null;uniqueIndex:idx_survey_response_member" json:"survey_id"`
	MemberID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_survey_response_member" json:"member_id"`
	Answers     datatypes.JSONMap `json:"answers"`
	Completed   bool              `gorm:"default:false" json:"completed"`
	SubmittedAt time.Time         `json:"submitted_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
