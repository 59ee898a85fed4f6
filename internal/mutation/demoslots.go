package mutation

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/models"
)

type demoSlotRequestArgs struct {
	MemberID        string `json:"memberId"`
	LumaEventID     string `json:"lumaEventId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	RequestedTime   string `json:"requestedTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// demoSlotsRequest creates a slot for the caller's own profile. The initial
// status is always pending, whatever the client sends.
func demoSlotsRequest(tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args demoSlotRequestArgs
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

	var requestedTime time.Time
	if args.RequestedTime != "" {
		requestedTime, err = time.Parse(time.RFC3339, args.RequestedTime)
		if err != nil {
			return nil, Invalid("requestedTime must be RFC 3339")
		}
	}

	duration := args.DurationMinutes
	if duration == 0 {
		duration = 5
	}

	slot := models.DemoSlot{
		ID:              uuid.New(),
		MemberID:        member.ID,
		LumaEventID:     args.LumaEventID,
		Title:           args.Title,
		Description:     args.Description,
		RequestedTime:   requestedTime,
		DurationMinutes: duration,
		Status:          models.DemoSlotPending,
	}
	if err := tx.Create(&slot).Error; err != nil {
		return nil, err
	}
	return map[string]any{"id": slot.ID.String(), "status": slot.Status}, nil
}

type demoSlotUpdateStatusArgs struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// demoSlotsUpdateStatus moves a pending slot to confirmed or canceled. The
// slot owner may do this, and this is the one operation with an admin
// override. Confirmed and canceled are terminal: any further transition,
// including a replay of the current status, is a conflict.
func demoSlotsUpdateStatus(env *Env, tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args demoSlotUpdateStatusArgs
	if err := parseArgs(raw, &args); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID, "id")
	if err != nil {
		return nil, err
	}

	var slot models.DemoSlot
	if err := tx.First(&slot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("demo slot not found")
		}
		return nil, err
	}

	owner, err := findProfile(tx, slot.MemberID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ec, owner, true); err != nil {
		return nil, err
	}

	if slot.Status != models.DemoSlotPending {
		return nil, Conflict("slot is already %s", slot.Status)
	}

	slot.Status = args.Status
	if ec.Role == RoleAdmin && args.Status == models.DemoSlotConfirmed {
		slot.OrganizerConfirmed = true
	}
	if err := tx.Save(&slot).Error; err != nil {
		return nil, err
	}

	if env != nil && env.Notifier != nil {
		notified := slot
		email := owner.Email
		ec.Defer(func() {
			env.Notifier.DemoSlotStatusChanged(notified, email)
		})
	}

	return map[string]any{"id": slot.ID.String(), "status": slot.Status}, nil
}
