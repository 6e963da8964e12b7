package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"gorm.io/gorm"
)

// AthleteProfile holds the nutrition-relevant profile of a user. Goal and
// Season are stored as entered and parsed when mapped to the engine.
type AthleteProfile struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Goal          string         `gorm:"size:50" json:"goal"`
	Season        string         `gorm:"size:50" json:"season"`
	Sport         string         `gorm:"size:100" json:"sport"`
	ActivityLevel string         `gorm:"size:50" json:"activity_level"`
	Diet          string         `gorm:"size:100" json:"diet"`
	WeightKg      float64        `json:"weight_kg"`
	Allergens     []Allergen     `gorm:"foreignKey:UserID;references:UserID" json:"allergens"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AthleteProfile) TableName() string {
	return "athlete_profiles"
}

func (p *AthleteProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Allergen represents an allergen entry for a user.
type Allergen struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AllergenName  string         `gorm:"size:50;not null" json:"allergen_name"`
	SeverityLevel int            `gorm:"not null;default:1" json:"severity_level"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Allergen) TableName() string {
	return "allergens"
}

func (a *Allergen) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ToEngine maps the row to the engine profile. Season falls back to the
// sport calendar when the profile has none.
func (p *AthleteProfile) ToEngine(now time.Time) engine.UserProfile {
	season := engine.ParseSeason(p.Season)
	if strings.TrimSpace(p.Season) == "" {
		season = engine.DetectSeason(p.Sport, now.Month())
	}

	names := make([]string, 0, len(p.Allergens))
	for _, a := range p.Allergens {
		if n := strings.TrimSpace(a.AllergenName); n != "" {
			names = append(names, n)
		}
	}

	return engine.UserProfile{
		Goal:          engine.ParseGoal(p.Goal),
		Season:        season,
		Sport:         p.Sport,
		ActivityLevel: p.ActivityLevel,
		Diet:          p.Diet,
		Allergies:     strings.Join(names, ", "),
	}
}
