package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/models"
	"github.com/clubos/community-backend/internal/mutation"
	"github.com/clubos/community-backend/internal/services"
)

// KioskHandler is the door-device check-in path. It authenticates with an
// organizer API key instead of a member token, so the usual ownership check
// does not apply; the uniqueness invariant is the same one the gateway
// enforces.
type KioskHandler struct {
	db      *gorm.DB
	apiKeys *services.APIKeyService
}

func NewKioskHandler(db *gorm.DB, apiKeys *services.APIKeyService) *KioskHandler {
	return &KioskHandler{db: db, apiKeys: apiKeys}
}

type kioskCheckInRequest struct {
	MemberID    string `json:"member_id"`
	MemberEmail string `json:"member_email"`
	LumaEventID string `json:"luma_event_id"`
}

// CheckIn handles POST /kiosk/checkin.
func (h *KioskHandler) CheckIn(c *fiber.Ctx) error {
	key, err := h.apiKeys.Verify(c.Get("X-API-Key"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var req kioskCheckInRequest
	if err := c.BodyParser(&req); err != nil || req.LumaEventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "luma_event_id and a member reference are required",
		})
	}

	member, err := h.resolveMember(req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Member not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid member reference",
		})
	}

	var record *models.Attendance
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Attendance
		err := tx.First(&existing, "member_id = ? AND luma_event_id = ?", member.ID, req.LumaEventID).Error
		if err == nil {
			return mutation.Conflict("already checked in to this event")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		record, err = mutation.CheckIn(tx, member, req.LumaEventID)
		return err
	})
	if err != nil {
		if mutation.IsKind(err, mutation.KindConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": "Already checked in",
			})
		}
		slog.Error("kiosk check-in failed", "kiosk", key.Name, "error", err)
		return fiber.ErrInternalServerError
	}

	slog.Info("kiosk check-in", "kiosk", key.Name, "member", member.ID, "event", req.LumaEventID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            record.ID,
		"member_id":     member.ID,
		"luma_event_id": record.LumaEventID,
		"checked_in_at": record.CheckedInAt,
	})
}

func (h *KioskHandler) resolveMember(req kioskCheckInRequest) (*models.Profile, error) {
	var member models.Profile
	if req.MemberID != "" {
		id, err := uuid.Parse(req.MemberID)
		if err != nil {
			return nil, err
		}
		if err := h.db.First(&member, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &member, nil
	}
	if req.MemberEmail != "" {
		if err := h.db.First(&member, "email = ?", req.MemberEmail).Error; err != nil {
			return nil, err
		}
		return &member, nil
	}
	return nil, gorm.ErrRecordNotFound
}
