package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/models"
)

var ErrInvalidAPIKey = errors.New("invalid or revoked API key")

// APIKeyService mints and verifies organizer keys for check-in kiosks. The
// raw key is shown once; storage keeps a bcrypt hash plus a sha256 lookup
// hash so verification is a single indexed read.
type APIKeyService struct {
	db *gorm.DB
}

func NewAPIKeyService(db *gorm.DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// Mint creates a key and returns its one-time raw value.
func (s *APIKeyService) Mint(name string, createdBy uuid.UUID) (string, *models.APIKey, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("generate API key: %w", err)
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash API key: %w", err)
	}

	key := models.APIKey{
		ID:         uuid.New(),
		Name:       name,
		LookupHash: lookupHash(raw),
		KeyHash:    string(hash),
		CreatedBy:  createdBy,
	}
	if err := s.db.Create(&key).Error; err != nil {
		return "", nil, fmt.Errorf("store API key: %w", err)
	}
	return raw, &key, nil
}

// Verify resolves a raw key to its record, rejecting revoked keys.
func (s *APIKeyService) Verify(raw string) (*models.APIKey, error) {
	if raw == "" {
		return nil, ErrInvalidAPIKey
	}

	var key models.APIKey
	err := s.db.First(&key, "lookup_hash = ? AND revoked_at IS NULL", lookupHash(raw)).Error
	if err != nil {
		return nil, ErrInvalidAPIKey
	}
	if bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(raw)) != nil {
		return nil, ErrInvalidAPIKey
	}
	return &key, nil
}

// Revoke disables a key. Revocation is idempotent.
func (s *APIKeyService) Revoke(id uuid.UUID) error {
	return s.db.Model(&models.APIKey{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func lookupHash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
