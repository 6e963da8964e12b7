package engine

import "strings"

// ketoCarbLimit is the exclusive per-item carb ceiling for keto diets.
const ketoCarbLimit = 10

// DefaultInventory is used whenever the user's inventory is empty.
func DefaultInventory() []InventoryItem {
	return []InventoryItem{
		{Name: "Chicken Breast", Category: CategoryMeat, Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
		{Name: "Ground Turkey", Category: CategoryMeat, Calories: 170, Protein: 21, Carbs: 0, Fat: 9},
		{Name: "Brown Rice", Category: CategoryGrains, Calories: 216, Protein: 5, Carbs: 45, Fat: 1.8},
		{Name: "Oatmeal", Category: CategoryGrains, Calories: 150, Protein: 5, Carbs: 27, Fat: 3},
		{Name: "Broccoli", Category: CategoryVegetables, Calories: 55, Protein: 3.7, Carbs: 11, Fat: 0.6},
		{Name: "Spinach", Category: CategoryVegetables, Calories: 23, Protein: 2.9, Carbs: 3.6, Fat: 0.4},
		{Name: "Greek Yogurt", Category: CategoryDairy, Calories: 100, Protein: 17, Carbs: 6, Fat: 0.7},
		{Name: "Milk", Category: CategoryDairy, Calories: 103, Protein: 8, Carbs: 12, Fat: 2.4},
		{Name: "Banana", Category: CategoryFruits, Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4},
		{Name: "Apple", Category: CategoryFruits, Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3},
	}
}

// DietaryFilter removes inventory items that violate a diet, an allergy list
// or the accumulated exclusions. Each rule is applied independently and an
// item survives only if no rule drops it. The input slice is never modified.
//
// An empty inventory is replaced by DefaultInventory before filtering.
func DietaryFilter(inventory []InventoryItem, diet, allergies string, exclusions []string) []InventoryItem {
	if len(inventory) == 0 {
		inventory = DefaultInventory()
	}

	dietLower := strings.ToLower(diet)
	plantBased := strings.Contains(dietLower, "vegetarian") || strings.Contains(dietLower, "vegan")
	keto := strings.Contains(dietLower, "keto")

	banned := append(splitAllergies(allergies), foldTerms(exclusions)...)

	out := make([]InventoryItem, 0, len(inventory))
	for _, item := range inventory {
		if plantBased && (item.Category == CategoryMeat || item.Category == categoryFish) {
			continue
		}
		if keto && item.Carbs >= ketoCarbLimit {
			continue
		}
		if nameContainsAny(item.Name, banned) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func splitAllergies(allergies string) []string {
	var terms []string
	for _, a := range strings.Split(allergies, ",") {
		if t := foldTerm(a); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func foldTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if f := foldTerm(t); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// nameContainsAny reports whether the lower-cased name contains any of the
// already folded terms.
func nameContainsAny(name string, folded []string) bool {
	lower := strings.ToLower(name)
	for _, t := range folded {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
