package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/middleware"
	"github.com/clubos/community-backend/internal/models"
)

// ProfileHandler serves the thin read surface the UI consumes. All state
// changes go through the mutation gateway instead.
type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Me handles GET /profiles/me - the caller's own profile, by subject.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	subject := middleware.Subject(c)
	if subject == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var profile models.Profile
	if err := h.db.First(&profile, "external_id = ?", subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "No profile linked to this account",
			})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(profile)
}

// MemberProjects handles GET /members/:id/projects.
func (h *ProfileHandler) MemberProjects(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid member id",
		})
	}

	var projects []models.Project
	if err := h.db.Where("member_id = ?", memberID).Order("created_at DESC").Find(&projects).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"projects": projects, "total": len(projects)})
}

// GetProject handles GET /projects/:id.
func (h *ProfileHandler) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid project id",
		})
	}

	var project models.Project
	if err := h.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Project not found",
			})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(project)
}

// ListEvents handles GET /events - synced calendar events, soonest first.
func (h *ProfileHandler) ListEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var events []models.Event
	if err := h.db.Order("starts_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"events": events, "total": len(events)})
}
