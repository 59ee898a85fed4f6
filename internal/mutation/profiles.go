package mutation

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/database"
	"github.com/clubos/community-backend/internal/models"
)

type profileCreateArgs struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	GithubURL   string   `json:"githubUrl"`
	LinkedinURL string   `json:"linkedinUrl"`
	WebsiteURL  string   `json:"websiteUrl"`
}

// profilesCreate links the verified subject to a new profile. At most one
// profile per subject and one per email.
func profilesCreate(tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args profileCreateArgs
	if err := parseArgs(raw, &args); err != nil {
		return nil, err
	}

	var existing models.Profile
	if err := tx.First(&existing, "external_id = ?", ec.Subject).Error; err == nil {
		return nil, Conflict("account is already linked to a profile")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := ec.Subject
	profile := models.Profile{
		ID:                uuid.New(),
		ExternalID:        &subject,
		Email:             args.Email,
		Name:              args.Name,
		Bio:               args.Bio,
		Skills:            datatypes.NewJSONSlice(args.Skills),
		GithubURL:         args.GithubURL,
		LinkedinURL:       args.LinkedinURL,
		WebsiteURL:        args.WebsiteURL,
		VerificationState: models.VerificationUnverified,
	}
	if err := tx.Create(&profile).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, Conflict("a profile with this email already exists")
		}
		return nil, err
	}

	return map[string]any{"id": profile.ID.String()}, nil
}

type profileUpdateArgs struct {
	ID          string    `json:"id"`
	Name        *string   `json:"name"`
	Bio         *string   `json:"bio"`
	Skills      *[]string `json:"skills"`
	GithubURL   *string   `json:"githubUrl"`
	LinkedinURL *string   `json:"linkedinUrl"`
	WebsiteURL  *string   `json:"websiteUrl"`
}

// profilesUpdate only accepts the profile's own linked subject. There is no
// admin override for editing another member's profile.
func profilesUpdate(tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args profileUpdateArgs
	if err := parseArgs(raw, &args); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID, "id")
	if err != nil {
		return nil, err
	}

	profile, err := findProfile(tx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ec, profile, false); err != nil {
		return nil, err
	}

	if args.Name != nil {
		profile.Name = *args.Name
	}
	if args.Bio != nil {
		profile.Bio = *args.Bio
	}
	if args.Skills != nil {
		profile.Skills = datatypes.NewJSONSlice(*args.Skills)
	}
	if args.GithubURL != nil {
		profile.GithubURL = *args.GithubURL
	}
	if args.LinkedinURL != nil {
		profile.LinkedinURL = *args.LinkedinURL
	}
	if args.WebsiteURL != nil {
		profile.WebsiteURL = *args.WebsiteURL
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := tx.Save(profile).Error; err != nil {
		return nil, err
	}
	return map[string]any{"id": profile.ID.String()}, nil
}
