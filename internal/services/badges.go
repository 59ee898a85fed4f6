package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubos/community-backend/internal/database"
	"github.com/clubos/community-backend/internal/models"
)

var (
	ErrBadgeNameTaken = errors.New("badge name already exists")
	ErrAlreadyAwarded = errors.New("badge already awarded to this member")
	ErrBadgeNotFound  = errors.New("badge not found")
)

// BadgeService manages achievement definitions and awards. Badges are
// read-mostly and organizer-curated, so they live behind admin routes rather
// than the mutation registry.
type BadgeService struct {
	db *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{db: db}
}

func (s *BadgeService) Create(name, description, imageURL string) (*models.Badge, error) {
	badge := models.Badge{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
	}
	if err := s.db.Create(&badge).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrBadgeNameTaken
		}
		return nil, err
	}
	return &badge, nil
}

func (s *BadgeService) Award(badgeID, memberID uuid.UUID) (*models.MemberBadge, error) {
	var badge models.Badge
	if err := s.db.First(&badge, "id = ?", badgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadgeNotFound
		}
		return nil, err
	}

	award := models.MemberBadge{
		ID:        uuid.New(),
		BadgeID:   badgeID,
		MemberID:  memberID,
		AwardedAt: s.db.NowFunc(),
	}
	if err := s.db.Create(&award).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyAwarded
		}
		return nil, err
	}
	return &award, nil
}

func (s *BadgeService) List() ([]models.Badge, error) {
	var badges []models.Badge
	if err := s.db.Order("name").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (s *BadgeService) ListForMember(memberID uuid.UUID) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.db.
		Joins("JOIN member_badges ON member_badges.badge_id = badges.id").
		Where("member_badges.member_id = ?", memberID).
		Order("badges.name").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}
	return badges, nil
}
