package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemNames(items []InventoryItem) []string {
	names := make([]string, 0, len(items))
	for _, i := range items {
		names = append(names, i.Name)
	}
	return names
}

func TestDietaryFilter(t *testing.T) {
	inventory := []InventoryItem{
		{Name: "Chicken Breast", Category: CategoryMeat, Calories: 165, Protein: 31},
		{Name: "Rice", Category: CategoryGrains, Calories: 200, Carbs: 45},
		{Name: "Broccoli", Category: CategoryVegetables, Calories: 55, Carbs: 6},
	}

	t.Run("vegetarian drops meat", func(t *testing.T) {
		out := DietaryFilter(inventory, "vegetarian", "", nil)
		assert.Equal(t, []string{"Rice", "Broccoli"}, itemNames(out))
	})

	t.Run("vegan and fish rows", func(t *testing.T) {
		withFish := append([]InventoryItem{{Name: "Salmon", Category: "Fish"}}, inventory...)
		out := DietaryFilter(withFish, "Strict VEGAN", "", nil)
		assert.Equal(t, []string{"Rice", "Broccoli"}, itemNames(out))
	})

	t.Run("keto keeps low carb only", func(t *testing.T) {
		out := DietaryFilter(inventory, "keto", "", nil)
		assert.Equal(t, []string{"Chicken Breast", "Broccoli"}, itemNames(out))
	})

	t.Run("allergies are comma separated substrings", func(t *testing.T) {
		out := DietaryFilter(inventory, "", " CHICKEN , broc", nil)
		assert.Equal(t, []string{"Rice"}, itemNames(out))
	})

	t.Run("exclusions match case-insensitively", func(t *testing.T) {
		out := DietaryFilter(inventory, "", "", []string{"Rice"})
		assert.Equal(t, []string{"Chicken Breast", "Broccoli"}, itemNames(out))
		out = DietaryFilter(inventory, "", "", []string{"breast"})
		assert.Equal(t, []string{"Rice", "Broccoli"}, itemNames(out))
	})

	t.Run("rules intersect", func(t *testing.T) {
		out := DietaryFilter(inventory, "vegetarian keto", "", []string{"Broccoli"})
		assert.Empty(t, out)
	})

	t.Run("input is not modified", func(t *testing.T) {
		before := make([]InventoryItem, len(inventory))
		copy(before, inventory)
		_ = DietaryFilter(inventory, "vegan", "rice", []string{"Broccoli"})
		assert.Equal(t, before, inventory)
	})

	t.Run("empty inventory falls back to defaults", func(t *testing.T) {
		out := DietaryFilter(nil, "", "", nil)
		require.Len(t, out, 10)

		cats := map[Category]bool{}
		for _, i := range out {
			cats[i.Category] = true
		}
		for _, c := range []Category{CategoryMeat, CategoryGrains, CategoryVegetables, CategoryDairy, CategoryFruits} {
			assert.True(t, cats[c], "default inventory is missing %s", c)
		}

		veg := DietaryFilter([]InventoryItem{}, "vegetarian", "", nil)
		assert.Len(t, veg, 8)
	})
}
