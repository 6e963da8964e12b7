package types

import (
	"github.com/pageza/fuelplate/backend/internal/engine"
)

// ChatRequest represents one chat message. An empty SessionID starts a new
// conversation.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required,max=2000"`
}

// UpdateProfileRequest replaces the caller's athlete profile
type UpdateProfileRequest struct {
	Goal          string   `json:"goal" binding:"max=50"`
	Season        string   `json:"season" binding:"max=50"`
	Sport         string   `json:"sport" binding:"max=100"`
	ActivityLevel string   `json:"activity_level" binding:"max=50"`
	Diet          string   `json:"diet" binding:"max=100"`
	WeightKg      float64  `json:"weight_kg" binding:"gte=0"`
	Allergens     []string `json:"allergens" binding:"dive,max=50"`
}

// InventoryItemRequest is one inventory entry
type InventoryItemRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Category string  `json:"category" binding:"required,oneof=Meat Grains Vegetables Fruits Dairy Other"`
	Calories float64 `json:"calories" binding:"gte=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
}

// ReplaceInventoryRequest replaces the caller's whole inventory, in order
type ReplaceInventoryRequest struct {
	Items []InventoryItemRequest `json:"items" binding:"dive"`
}

// ToEngine converts the request items to engine items
func (r ReplaceInventoryRequest) ToEngine() []engine.InventoryItem {
	items := make([]engine.InventoryItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, engine.InventoryItem{
			Name:     it.Name,
			Category: engine.Category(it.Category),
			Calories: it.Calories,
			Protein:  it.Protein,
			Carbs:    it.Carbs,
			Fat:      it.Fat,
		})
	}
	return items
}

// AcceptMealRequest hands a composed meal to the meal log
type AcceptMealRequest struct {
	Meal *engine.ComposedMeal `json:"meal" binding:"required"`
}
