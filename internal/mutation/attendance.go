package mutation

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/database"
	"github.com/clubos/community-backend/internal/models"
)

type attendanceCheckInArgs struct {
	MemberID    string `json:"memberId"`
	LumaEventID string `json:"lumaEventId"`
}

// attendanceCheckIn records a check-in for (member, event). A duplicate
// attempt is a distinct conflict outcome so the client can render "already
// checked in"; concurrent racers are settled by the unique index.
func attendanceCheckIn(tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args attendanceCheckInArgs
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

	var existing models.Attendance
	err = tx.First(&existing, "member_id = ? AND luma_event_id = ?", member.ID, args.LumaEventID).Error
	if err == nil {
		return nil, Conflict("already checked in to this event")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record, err := CheckIn(tx, member, args.LumaEventID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":          record.ID.String(),
		"checkedInAt": record.CheckedInAt,
	}, nil
}

// CheckIn performs the attendance write and streak bump inside tx. It is
// shared with the kiosk check-in path, which authenticates by API key rather
// than by subject.
func CheckIn(tx *gorm.DB, member *models.Profile, lumaEventID string) (*models.Attendance, error) {
	record := models.Attendance{
		ID:          uuid.New(),
		MemberID:    member.ID,
		LumaEventID: lumaEventID,
		Status:      models.AttendanceCheckedIn,
		CheckedInAt: tx.NowFunc(),
	}
	if err := tx.Create(&record).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, Conflict("already checked in to this event")
		}
		return nil, err
	}

	// Streak counter rides in the same transaction as the check-in.
	err := tx.Model(&models.Profile{}).
		Where("id = ?", member.ID).
		UpdateColumn("attendance_streak", gorm.Expr("attendance_streak + 1")).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
