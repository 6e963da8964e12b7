package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/models"
	"gorm.io/gorm"
)

// ErrProfileNotFound is returned when the user has no athlete profile.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileService handles athlete profile operations
type ProfileService struct {
	db  *gorm.DB
	now func() time.Time
}

// Ensure ProfileService implements ProfileProvider
var _ ProfileProvider = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db, now: time.Now}
}

// GetProfile loads the profile with its allergens and maps it to the engine
// view. A profile without a season gets one from the sport calendar.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*engine.UserProfile, error) {
	var row models.AthleteProfile
	err := s.db.WithContext(ctx).
		Preload("Allergens").
		Where("user_id = ?", userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	p := row.ToEngine(s.now())
	return &p, nil
}

// UpsertProfile creates or replaces the user's profile and allergen list.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, p models.AthleteProfile, allergens []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.AthleteProfile
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p.UserID = userID
			p.Allergens = nil
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to load profile: %w", err)
		default:
			existing.Goal = p.Goal
			existing.Season = p.Season
			existing.Sport = p.Sport
			existing.ActivityLevel = p.ActivityLevel
			existing.Diet = p.Diet
			existing.WeightKg = p.WeightKg
			if err := tx.Omit("Allergens").Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Allergen{}).Error; err != nil {
			return fmt.Errorf("failed to clear allergens: %w", err)
		}
		for _, name := range allergens {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if err := tx.Create(&models.Allergen{UserID: userID, AllergenName: name, SeverityLevel: 1}).Error; err != nil {
				return fmt.Errorf("failed to add allergen %q: %w", name, err)
			}
		}
		return nil
	})
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)
