package services_test

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clubos/community-backend/internal/database"
	"github.com/clubos/community-backend/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestAPIKeyMintAndVerify(t *testing.T) {
	db := newTestDB(t)
	s := services.NewAPIKeyService(db)

	raw, key, err := s.Mint("front-desk kiosk", uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if raw == "" || key == nil {
		t.Fatal("mint returned empty key")
	}
	if key.KeyHash == raw {
		t.Fatal("raw key stored verbatim")
	}

	got, err := s.Verify(raw)
	if err != nil {
		t.Fatalf("verify minted key: %v", err)
	}
	if got.ID != key.ID {
		t.Fatalf("verify resolved wrong key: %s vs %s", got.ID, key.ID)
	}
}

func TestAPIKeyVerifyRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	s := services.NewAPIKeyService(db)

	if _, _, err := s.Mint("kiosk", uuid.New()); err != nil {
		t.Fatalf("mint: %v", err)
	}

	for _, raw := range []string{"", "wrong-key", "bm90LXRoZS1rZXk"} {
		if _, err := s.Verify(raw); !errors.Is(err, services.ErrInvalidAPIKey) {
			t.Fatalf("raw %q: expected ErrInvalidAPIKey, got %v", raw, err)
		}
	}
}

func TestAPIKeyRevoke(t *testing.T) {
	db := newTestDB(t)
	s := services.NewAPIKeyService(db)

	raw, key, err := s.Mint("kiosk", uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if err := s.Revoke(key.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := s.Verify(raw); !errors.Is(err, services.ErrInvalidAPIKey) {
		t.Fatalf("revoked key must not verify, got %v", err)
	}

	// Revocation is idempotent.
	if err := s.Revoke(key.ID); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
}
