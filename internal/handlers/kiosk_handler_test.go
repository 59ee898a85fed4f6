package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clubos/community-backend/internal/database"
	"github.com/clubos/community-backend/internal/handlers"
	"github.com/clubos/community-backend/internal/models"
	"github.com/clubos/community-backend/internal/services"
)

type kioskFixture struct {
	app    *fiber.App
	db     *gorm.DB
	rawKey string
	member *models.Profile
}

func newKioskFixture(t *testing.T) *kioskFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	apiKeys := services.NewAPIKeyService(db)
	raw, _, err := apiKeys.Mint("test kiosk", uuid.New())
	if err != nil {
		t.Fatalf("mint kiosk key: %v", err)
	}

	member := &models.Profile{ID: uuid.New(), Email: "member@example.org"}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}

	app := fiber.New()
	h := handlers.NewKioskHandler(db, apiKeys)
	app.Post("/api/kiosk/checkin", h.CheckIn)

	return &kioskFixture{app: app, db: db, rawKey: raw, member: member}
}

func (f *kioskFixture) post(t *testing.T, apiKey string, body map[string]any) int {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(fiber.MethodPost, "/api/kiosk/checkin", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestKioskCheckIn(t *testing.T) {
	f := newKioskFixture(t)

	body := map[string]any{
		"member_id":     f.member.ID.String(),
		"luma_event_id": "evt-kiosk",
	}
	if status := f.post(t, f.rawKey, body); status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	// The kiosk path bumps the streak like the gateway path does.
	var after models.Profile
	f.db.First(&after, "id = ?", f.member.ID)
	if after.AttendanceStreak != 1 {
		t.Fatalf("streak not bumped: %d", after.AttendanceStreak)
	}

	if status := f.post(t, f.rawKey, body); status != fiber.StatusConflict {
		t.Fatalf("duplicate check-in: expected 409, got %d", status)
	}
	var count int64
	f.db.Model(&models.Attendance{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 attendance row, got %d", count)
	}
}

func TestKioskCheckInByEmail(t *testing.T) {
	f := newKioskFixture(t)
	status := f.post(t, f.rawKey, map[string]any{
		"member_email":  "member@example.org",
		"luma_event_id": "evt-kiosk",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
}

func TestKioskCheckInRejections(t *testing.T) {
	f := newKioskFixture(t)

	valid := map[string]any{
		"member_id":     f.member.ID.String(),
		"luma_event_id": "evt-kiosk",
	}
	if status := f.post(t, "", valid); status != fiber.StatusUnauthorized {
		t.Fatalf("missing key: expected 401, got %d", status)
	}
	if status := f.post(t, "wrong-key", valid); status != fiber.StatusUnauthorized {
		t.Fatalf("bad key: expected 401, got %d", status)
	}

	if status := f.post(t, f.rawKey, map[string]any{"member_id": f.member.ID.String()}); status != fiber.StatusBadRequest {
		t.Fatalf("missing event: expected 400, got %d", status)
	}
	if status := f.post(t, f.rawKey, map[string]any{
		"member_id":     uuid.NewString(),
		"luma_event_id": "evt-kiosk",
	}); status != fiber.StatusNotFound {
		t.Fatalf("unknown member: expected 404, got %d", status)
	}
}
