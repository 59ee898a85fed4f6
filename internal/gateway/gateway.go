package gateway

import (
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/auth"
	"github.com/clubos/community-backend/internal/metrics"
	"github.com/clubos/community-backend/internal/mutation"
)

// batchRequest is the wire shape of one gateway call.
type batchRequest struct {
	Mutations []mutation.Request `json:"mutations"`
}

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Gateway is the single entry point for state changes: it authenticates the
// caller, resolves the role, and hands the batch to the coordinator. A
// mutation rejected for business reasons is not a transport failure; the
// batch answer is 200 with per-mutation results.
type Gateway struct {
	db          *gorm.DB
	verifier    *auth.Verifier
	coordinator *mutation.Coordinator
}

func New(db *gorm.DB, verifier *auth.Verifier, coordinator *mutation.Coordinator) *Gateway {
	return &Gateway{db: db, verifier: verifier, coordinator: coordinator}
}

// Handle serves POST /api/mutation. Non-POST methods never reach here; the
// router answers 405 for them.
func (g *Gateway) Handle(c *fiber.Ctx) error {
	ctx := c.UserContext()

	subject, err := g.verifier.Verify(ctx, bearerToken(c))
	if err != nil {
		metrics.ObserveBatch("unauthorized", 0)
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var batch batchRequest
	if err := c.BodyParser(&batch); err != nil {
		metrics.ObserveBatch("bad_request", 0)
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error: true, Message: "Malformed mutation batch",
		})
	}

	ec := &mutation.Context{
		Subject: subject,
		Role:    auth.ResolveRole(g.db, subject),
	}

	results, err := g.coordinator.Execute(ctx, ec, batch.Mutations)
	if err != nil {
		sentry.CaptureException(err)
		slog.Error("mutation batch failed", "subject", subject, "error", err)
		metrics.ObserveBatch("fault", len(batch.Mutations))
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	metrics.ObserveBatch("ok", len(batch.Mutations))
	return c.JSON(results)
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
