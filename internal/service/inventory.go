package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/models"
	"gorm.io/gorm"
)

// InventoryService handles a user's food inventory
type InventoryService struct {
	db *gorm.DB
}

// Ensure InventoryService implements InventoryProvider
var _ InventoryProvider = (*InventoryService)(nil)

// NewInventoryService creates a new InventoryService instance
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// GetInventory returns the user's items ordered by position, then by
// insertion time.
func (s *InventoryService) GetInventory(ctx context.Context, userID uuid.UUID) ([]engine.InventoryItem, error) {
	var rows []models.InventoryItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	items := make([]engine.InventoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.ToEngine())
	}
	return items, nil
}

// ReplaceInventory swaps the user's inventory for items, keeping their
// order.
func (s *InventoryService) ReplaceInventory(ctx context.Context, userID uuid.UUID, items []engine.InventoryItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.InventoryItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear inventory: %w", err)
		}
		for i, item := range items {
			row := models.InventoryItem{
				UserID:   userID,
				Name:     item.Name,
				Category: string(item.Category),
				Calories: item.Calories,
				Protein:  item.Protein,
				Carbs:    item.Carbs,
				Fat:      item.Fat,
				Position: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to add %q: %w", item.Name, err)
			}
		}
		return nil
	})
}

// Ensure InventoryService implements IInventoryService
var _ IInventoryService = (*InventoryService)(nil)
