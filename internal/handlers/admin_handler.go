package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/middleware"
	"github.com/clubos/community-backend/internal/models"
	"github.com/clubos/community-backend/internal/services"
)

// AdminHandler covers organizer tooling: kiosk key management and image
// upload presigning.
type AdminHandler struct {
	db      *gorm.DB
	apiKeys *services.APIKeyService
	images  *services.ImageService
}

func NewAdminHandler(db *gorm.DB, apiKeys *services.APIKeyService, images *services.ImageService) *AdminHandler {
	return &AdminHandler{db: db, apiKeys: apiKeys, images: images}
}

type mintKeyRequest struct {
	Name string `json:"name"`
}

// MintAPIKey handles POST /admin/apikeys. The raw key appears in this
// response only.
func (h *AdminHandler) MintAPIKey(c *fiber.Ctx) error {
	var req mintKeyRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Key name is required",
		})
	}

	var creator models.Profile
	createdBy := uuid.Nil
	if err := h.db.First(&creator, "external_id = ?", middleware.Subject(c)).Error; err == nil {
		createdBy = creator.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.ErrInternalServerError
	}

	raw, key, err := h.apiKeys.Mint(req.Name, createdBy)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   key.ID,
		"name": key.Name,
		"key":  raw,
	})
}

// RevokeAPIKey handles DELETE /admin/apikeys/:id.
func (h *AdminHandler) RevokeAPIKey(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid key id",
		})
	}
	if err := h.apiKeys.Revoke(id); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type presignRequest struct {
	Prefix      string `json:"prefix"`
	ContentType string `json:"content_type"`
}

// PresignUpload handles POST /uploads/presign: returns a presigned PUT URL
// so the client uploads image bytes straight to the bucket.
func (h *AdminHandler) PresignUpload(c *fiber.Ctx) error {
	if h.images == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": true, "message": "Image uploads are not configured",
		})
	}

	var req presignRequest
	if err := c.BodyParser(&req); err != nil || req.ContentType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "content_type is required",
		})
	}
	prefix := req.Prefix
	if prefix == "" {
		prefix = "uploads"
	}

	key, uploadURL, err := h.images.PresignUpload(c.UserContext(), prefix, req.ContentType)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{
		"key":        key,
		"upload_url": uploadURL,
	})
}
