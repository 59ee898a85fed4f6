package mutation

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/models"
)

// Shared resolution helpers. Every handler follows the same shape: resolve
// the target (or its parent), NotFound if missing, compare the owning
// profile's external subject against the caller, then write.

func parseArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return Invalid("malformed arguments: %v", err)
	}
	return nil
}

func parseID(s, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, Invalid("%s is not a valid id", field)
	}
	return id, nil
}

func findProfile(tx *gorm.DB, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := tx.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("profile not found")
		}
		return nil, err
	}
	return &profile, nil
}

// ownedBy reports whether the caller's verified subject is the profile's
// linked external identity. A profile with no linked identity is owned by
// nobody.
func ownedBy(ec *Context, profile *models.Profile) bool {
	return profile.ExternalID != nil && *profile.ExternalID == ec.Subject
}

// requireOwner enforces the uniform ownership rule. adminOverride is only
// granted where the operation explicitly permits it.
func requireOwner(ec *Context, profile *models.Profile, adminOverride bool) error {
	if ownedBy(ec, profile) {
		return nil
	}
	if adminOverride && ec.Role == RoleAdmin {
		return nil
	}
	return Unauthorized("not allowed to modify this resource")
}
