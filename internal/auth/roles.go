package auth

import (
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/models"
	"github.com/clubos/community-backend/internal/mutation"
)

// ResolveRole maps a verified subject to its application role via the linked
// profile. Resolution never fails the request: no profile, or any lookup
// error, degrades to the least-privileged role.
func ResolveRole(db *gorm.DB, subject string) mutation.Role {
	var profile models.Profile
	if err := db.First(&profile, "external_id = ?", subject).Error; err != nil {
		return mutation.RoleUser
	}
	if profile.IsAdmin {
		return mutation.RoleAdmin
	}
	return mutation.RoleUser
}
