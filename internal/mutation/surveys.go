package mutation

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/models"
)

type surveyResponseSubmitArgs struct {
	MemberID  string         `json:"memberId"`
	SurveyID  string         `json:"surveyId"`
	Answers   map[string]any `json:"answers"`
	Completed bool           `json:"completed"`
}

// surveyResponsesSubmit upserts on (member, survey): the second submission
// replaces the first row's answers, it never creates a duplicate. Required-
// question validation is the caller layer's job; this handler only persists.
func surveyResponsesSubmit(tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args surveyResponseSubmitArgs
	if err := parseArgs(raw, &args); err != nil {
		return nil, err
	}
	memberID, err := parseID(args.MemberID, "memberId")
	if err != nil {
		return nil, err
	}

	member, err := findProfile(tx, memberID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ec, member, false); err != nil {
		return nil, err
	}

	now := tx.NowFunc()

	var existing models.SurveyResponse
	err = tx.First(&existing, "member_id = ? AND survey_id = ?", member.ID, args.SurveyID).Error
	switch {
	case err == nil:
		existing.Answers = datatypes.JSONMap(args.Answers)
		existing.Completed = args.Completed
		existing.SubmittedAt = now
		if err := tx.Save(&existing).Error; err != nil {
			return nil, err
		}
		return map[string]any{"id": existing.ID.String(), "updated": true}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		response := models.SurveyResponse{
			ID:          uuid.New(),
			SurveyID:    args.SurveyID,
			MemberID:    member.ID,
			Answers:     datatypes.JSONMap(args.Answers),
			Completed:   args.Completed,
			SubmittedAt: now,
		}
		if err := tx.Create(&response).Error; err != nil {
			return nil, err
		}
		return map[string]any{"id": response.ID.String(), "updated": false}, nil
	default:
		return nil, err
	}
}
