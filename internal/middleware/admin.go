package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/auth"
	"github.com/clubos/community-backend/internal/mutation"
)

// AdminRequired gates organizer-only routes on the profile's admin flag.
// Must run after JWTProtected.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject := Subject(c)
		if subject == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": true, "message": "Unauthorized",
			})
		}
		if auth.ResolveRole(db, subject) != mutation.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": true, "message": "Admin access required",
			})
		}
		return c.Next()
	}
}
