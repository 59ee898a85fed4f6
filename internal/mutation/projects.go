package mutation

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/models"
)

type projectCreateArgs struct {
	MemberID    string   `json:"memberId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ImageURLs   []string `json:"imageUrls"`
	RepoURL     string   `json:"repoUrl"`
	DemoURL     string   `json:"demoUrl"`
}

// projectsCreate requires memberId to reference the caller's own profile.
func projectsCreate(tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args projectCreateArgs
	if err := parseArgs(raw, &args); err != nil {
		return nil, err
	}
	memberID, err := parseID(args.MemberID, "memberId")
	if err != nil {
		return nil, err
	}

	owner, err := findProfile(tx, memberID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ec, owner, false); err != nil {
		return nil, err
	}

	project := models.Project{
		ID:          uuid.New(),
		MemberID:    owner.ID,
		Title:       args.Title,
		Description: args.Description,
		Tags:        datatypes.NewJSONSlice(args.Tags),
		ImageURLs:   datatypes.NewJSONSlice(args.ImageURLs),
		RepoURL:     args.RepoURL,
		DemoURL:     args.DemoURL,
	}
	if err := tx.Create(&project).Error; err != nil {
		return nil, err
	}
	return map[string]any{"id": project.ID.String()}, nil
}

type projectUpdateArgs struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	ImageURLs   *[]string `json:"imageUrls"`
	RepoURL     *string   `json:"repoUrl"`
	DemoURL     *string   `json:"demoUrl"`
}

func projectsUpdate(tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args projectUpdateArgs
	if err := parseArgs(raw, &args); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID, "id")
	if err != nil {
		return nil, err
	}

	project, owner, err := findProjectWithOwner(tx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ec, owner, false); err != nil {
		return nil, err
	}

	if args.Title != nil {
		if *args.Title == "" {
			return nil, Invalid("title must not be empty")
		}
		project.Title = *args.Title
	}
	if args.Description != nil {
		project.Description = *args.Description
	}
	if args.Tags != nil {
		project.Tags = datatypes.NewJSONSlice(*args.Tags)
	}
	if args.ImageURLs != nil {
		project.ImageURLs = datatypes.NewJSONSlice(*args.ImageURLs)
	}
	if args.RepoURL != nil {
		project.RepoURL = *args.RepoURL
	}
	if args.DemoURL != nil {
		project.DemoURL = *args.DemoURL
	}

	if err := tx.Save(project).Error; err != nil {
		return nil, err
	}
	return map[string]any{"id": project.ID.String()}, nil
}

type projectDeleteArgs struct {
	ID string `json:"id"`
}

func projectsDelete(tx *gorm.DB, ec *Context, raw json.RawMessage) (any, error) {
	var args projectDeleteArgs
	if err := parseArgs(raw, &args); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID, "id")
	if err != nil {
		return nil, err
	}

	project, owner, err := findProjectWithOwner(tx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ec, owner, false); err != nil {
		return nil, err
	}

	if err := tx.Delete(project).Error; err != nil {
		return nil, err
	}
	return map[string]any{"id": project.ID.String(), "deleted": true}, nil
}

// findProjectWithOwner resolves the project and walks the one-hop ownership
// chain to its profile.
func findProjectWithOwner(tx *gorm.DB, id uuid.UUID) (*models.Project, *models.Profile, error) {
	var project models.Project
	if err := tx.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, NotFound("project not found")
		}
		return nil, nil, err
	}
	owner, err := findProfile(tx, project.MemberID)
	if err != nil {
		return nil, nil, err
	}
	return &project, owner, nil
}
