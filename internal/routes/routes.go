package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/config"
	"github.com/clubos/community-backend/internal/gateway"
	"github.com/clubos/community-backend/internal/handlers"
	"github.com/clubos/community-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	gw *gateway.Gateway,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	surveyHandler *handlers.SurveyHandler,
	badgeHandler *handlers.BadgeHandler,
	kioskHandler *handlers.KioskHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health and metrics (no auth)
	api.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// The mutation gateway. POST only; the router answers 405 for other
	// methods on this path.
	api.Post("/mutation", gw.Handle)

	// Public reads
	api.Get("/events", profileHandler.ListEvents)
	api.Get("/projects/:id", profileHandler.GetProject)
	api.Get("/members/:id/projects", profileHandler.MemberProjects)
	api.Get("/badges", badgeHandler.List)
	api.Get("/members/:id/badges", badgeHandler.MemberBadges)
	api.Get("/surveys/:id", surveyHandler.Get)
	api.Post("/surveys/:id/validate", surveyHandler.Validate)

	// Personal reads (JWT required)
	api.Get("/profiles/me", middleware.JWTProtected(cfg), profileHandler.Me)

	// Kiosk check-in — authenticated by organizer API key, not JWT
	api.Post("/kiosk/checkin", kioskHandler.CheckIn)

	// Organizer tooling (JWT + admin profile flag)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))
	admin.Post("/badges", badgeHandler.Create)
	admin.Post("/badges/:id/award", badgeHandler.Award)
	admin.Post("/apikeys", adminHandler.MintAPIKey)
	admin.Delete("/apikeys/:id", adminHandler.RevokeAPIKey)
	admin.Post("/uploads/presign", adminHandler.PresignUpload)
}
