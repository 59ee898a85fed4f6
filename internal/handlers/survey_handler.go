package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clubos/community-backend/internal/config"
)

// SurveyHandler exposes survey definitions and the required-question
// completeness check. The submit handler in the mutation layer persists
// whatever it is given; completeness is this caller-facing layer's job.
type SurveyHandler struct {
	defs map[string]config.SurveyDefinition
}

func NewSurveyHandler(defs map[string]config.SurveyDefinition) *SurveyHandler {
	return &SurveyHandler{defs: defs}
}

// Get handles GET /surveys/:id.
func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	def, ok := h.defs[c.Params("id")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Survey not found",
		})
	}
	return c.JSON(def)
}

type validateAnswersRequest struct {
	Answers map[string]any `json:"answers"`
}

// Validate handles POST /surveys/:id/validate - reports which required
// questions are still unanswered, without persisting anything.
func (h *SurveyHandler) Validate(c *fiber.Ctx) error {
	def, ok := h.defs[c.Params("id")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Survey not found",
		})
	}

	var req validateAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Malformed answers payload",
		})
	}

	missing := def.MissingRequired(req.Answers)
	return c.JSON(fiber.Map{
		"complete": len(missing) == 0,
		"missing":  missing,
	})
}
