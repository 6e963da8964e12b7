package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoEligibleItems is returned by Compose when filtering left nothing to
// cook with.
var ErrNoEligibleItems = errors.New("no eligible inventory items")

// Meal types detected from the message.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeGeneral   = "general"
)

const (
	basePrepMinutes  = 15
	quickPrepMinutes = 10
	meatGrainBonus   = 5

	proteinRichThreshold = 10
)

// Requirements is what the composer derived from the message and profile.
type Requirements struct {
	MealType     string          `json:"meal_type"`
	Quick        bool            `json:"quick"`
	ProteinFocus bool            `json:"protein_focus"`
	CarbFocus    bool            `json:"carb_focus"`
	FatFocus     bool            `json:"fat_focus"`
	Target       NutritionTarget `json:"target"`
}

func containsAnyWord(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// ClassifyRequirements reads meal type, prep speed and macro focus from the
// message (which may be empty) and attaches the conversational target.
func ClassifyRequirements(message string, profile UserProfile) Requirements {
	text := strings.ToLower(message)

	req := Requirements{MealType: MealTypeGeneral}
	for _, t := range []string{MealTypeBreakfast, MealTypeLunch, MealTypeDinner} {
		if strings.Contains(text, t) {
			req.MealType = t
			break
		}
	}
	req.Quick = containsAnyWord(text, "quick", "fast", "time")
	req.ProteinFocus = containsAnyWord(text, "protein", "muscle") ||
		strings.TrimSpace(profile.Sport) != "" ||
		strings.EqualFold(profile.ActivityLevel, ActivityActive)
	req.CarbFocus = containsAnyWord(text, "carb", "energy")
	req.FatFocus = containsAnyWord(text, "fat", "keto")
	req.Target = ConversationPreset.Target(profile.Goal, profile.Season)
	return req
}

type cookStep struct {
	minutes      int
	quickMinutes int
	verb         string
	quickVerb    string
}

var cookSteps = map[Category]cookStep{
	CategoryMeat:       {minutes: 12, quickMinutes: 8, verb: "Grill or bake", quickVerb: "Pan-fry"},
	CategoryGrains:     {minutes: 8, quickMinutes: 3, verb: "Boil", quickVerb: "Microwave"},
	CategoryVegetables: {minutes: 6, quickMinutes: 4, verb: "Roast", quickVerb: "Steam"},
	CategoryFruits:     {verb: "Slice", quickVerb: "Slice"},
	CategoryDairy:      {verb: "Add", quickVerb: "Add"},
}

var defaultCookStep = cookStep{verb: "Prepare", quickVerb: "Prepare"}

func stepFor(c Category) cookStep {
	if s, ok := cookSteps[c]; ok {
		return s
	}
	return defaultCookStep
}

func (s cookStep) time(quick bool) int {
	if quick {
		return s.quickMinutes
	}
	return s.minutes
}

func isProteinItem(item InventoryItem) bool {
	return item.Protein > proteinRichThreshold || item.Category == CategoryMeat
}

// selectItems picks the meal's ingredients from an already filtered
// inventory, in priority order: breakfast, protein focus, one per main
// category, then the first three items.
func selectItems(inventory []InventoryItem, req Requirements) []InventoryItem {
	var picked []InventoryItem

	switch {
	case req.MealType == MealTypeBreakfast:
		picked = pickByCategories(inventory, 3, CategoryGrains, CategoryDairy, CategoryFruits)
	case req.ProteinFocus:
		var rest []InventoryItem
		for _, item := range inventory {
			if isProteinItem(item) {
				if len(picked) < 2 {
					picked = append(picked, item)
				}
			} else {
				rest = append(rest, item)
			}
		}
		if len(rest) > 0 {
			picked = append(picked, rest[0])
		}
	default:
		for _, c := range []Category{CategoryMeat, CategoryGrains, CategoryVegetables} {
			if item, ok := firstOfCategory(inventory, c); ok {
				picked = append(picked, item)
			}
		}
	}

	if len(picked) == 0 {
		n := 3
		if len(inventory) < n {
			n = len(inventory)
		}
		picked = append(picked, inventory[:n]...)
	}
	return picked
}

// pickByCategories takes the first item of each category in order, then
// tops up with further items from the same categories until limit.
func pickByCategories(inventory []InventoryItem, limit int, cats ...Category) []InventoryItem {
	var picked []InventoryItem
	used := make(map[int]bool)
	for _, c := range cats {
		for i, item := range inventory {
			if len(picked) == limit {
				return picked
			}
			if item.Category == c {
				picked = append(picked, item)
				used[i] = true
				break
			}
		}
	}
	for _, c := range cats {
		for i, item := range inventory {
			if len(picked) == limit {
				return picked
			}
			if !used[i] && item.Category == c {
				picked = append(picked, item)
				used[i] = true
			}
		}
	}
	return picked
}

func firstOfCategory(inventory []InventoryItem, c Category) (InventoryItem, bool) {
	for _, item := range inventory {
		if item.Category == c {
			return item, true
		}
	}
	return InventoryItem{}, false
}

// SumNutrition adds up the nutrition of items, quantity one each.
func SumNutrition(items []InventoryItem) NutritionTotals {
	var t NutritionTotals
	for _, item := range items {
		t.Calories += item.Calories
		t.Protein += item.Protein
		t.Carbs += item.Carbs
		t.Fat += item.Fat
	}
	return t
}

func hasCategory(items []InventoryItem, c Category) bool {
	_, ok := firstOfCategory(items, c)
	return ok
}

func prepTime(items []InventoryItem, quick bool) int {
	minutes := basePrepMinutes
	if quick {
		minutes = quickPrepMinutes
	}
	if hasCategory(items, CategoryMeat) && hasCategory(items, CategoryGrains) {
		minutes += meatGrainBonus
	}
	return minutes
}

func instructions(items []InventoryItem, quick bool) []string {
	ordered := make([]InventoryItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return stepFor(ordered[i].Category).time(quick) < stepFor(ordered[j].Category).time(quick)
	})

	steps := make([]string, 0, len(ordered)+1)
	for i, item := range ordered {
		s := stepFor(item.Category)
		verb := s.verb
		if quick {
			verb = s.quickVerb
		}
		line := fmt.Sprintf("%d. %s %s", i+1, verb, item.Name)
		if m := s.time(quick); m > 0 {
			line += fmt.Sprintf(" (about %d min)", m)
		}
		steps = append(steps, line)
	}
	steps = append(steps, fmt.Sprintf("%d. Combine all ingredients and season to taste.", len(ordered)+1))
	return steps
}

func mealName(items []InventoryItem, req Requirements) string {
	switch {
	case req.MealType == MealTypeBreakfast:
		return "Power Breakfast"
	case req.ProteinFocus:
		return "Protein Power Bowl"
	}
	if meat, ok := firstOfCategory(items, CategoryMeat); ok && hasCategory(items, CategoryGrains) {
		return meat.Name + " Bowl"
	}
	return "Nutrient-Rich Meal"
}

// Compose builds a meal from an already filtered inventory.
func Compose(inventory []InventoryItem, req Requirements) (*ComposedMeal, error) {
	if len(inventory) == 0 {
		return nil, ErrNoEligibleItems
	}
	items := selectItems(inventory, req)

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	return &ComposedMeal{
		Name:            mealName(items, req),
		Ingredients:     names,
		Instructions:    instructions(items, req.Quick),
		NutritionTotals: SumNutrition(items),
		PrepTimeMinutes: prepTime(items, req.Quick),
	}, nil
}
