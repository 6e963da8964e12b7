package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"gorm.io/gorm"
)

// InventoryItem is one food item a user keeps on hand.
type InventoryItem struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Category  string         `gorm:"size:30;not null" json:"category"`
	Calories  float64        `json:"calories"`
	Protein   float64        `json:"protein"`
	Carbs     float64        `json:"carbs"`
	Fat       float64        `json:"fat"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ToEngine maps the row to the engine item.
func (i InventoryItem) ToEngine() engine.InventoryItem {
	return engine.InventoryItem{
		Name:     i.Name,
		Category: engine.Category(i.Category),
		Calories: i.Calories,
		Protein:  i.Protein,
		Carbs:    i.Carbs,
		Fat:      i.Fat,
	}
}
