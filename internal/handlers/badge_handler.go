package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/clubos/community-backend/internal/services"
)

type BadgeHandler struct {
	badges *services.BadgeService
}

func NewBadgeHandler(badges *services.BadgeService) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

// List handles GET /badges.
func (h *BadgeHandler) List(c *fiber.Ctx) error {
	badges, err := h.badges.List()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"badges": badges})
}

// MemberBadges handles GET /members/:id/badges.
func (h *BadgeHandler) MemberBadges(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid member id",
		})
	}

	badges, err := h.badges.ListForMember(memberID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"badges": badges})
}

type createBadgeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Create handles POST /admin/badges.
func (h *BadgeHandler) Create(c *fiber.Ctx) error {
	var req createBadgeRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Badge name is required",
		})
	}

	badge, err := h.badges.Create(req.Name, req.Description, req.ImageURL)
	if err != nil {
		if errors.Is(err, services.ErrBadgeNameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": "Badge name already exists",
			})
		}
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(badge)
}

type awardBadgeRequest struct {
	MemberID string `json:"member_id"`
}

// Award handles POST /admin/badges/:id/award.
func (h *BadgeHandler) Award(c *fiber.Ctx) error {
	badgeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid badge id",
		})
	}

	var req awardBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Malformed award payload",
		})
	}
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid member id",
		})
	}

	award, err := h.badges.Award(badgeID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadgeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Badge not found",
			})
		case errors.Is(err, services.ErrAlreadyAwarded):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": "Badge already awarded to this member",
			})
		default:
			return fiber.ErrInternalServerError
		}
	}
	return c.Status(fiber.StatusCreated).JSON(award)
}
