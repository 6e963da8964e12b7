// Package engine holds the meal-recommendation rules: nutrition targets,
// constraint extraction, dietary filtering, recipe feasibility and meal
// composition. Everything here is deterministic and free of I/O.
package engine

import "math"

// Category is the inventory category of a food item.
type Category string

const (
	CategoryMeat       Category = "Meat"
	CategoryGrains     Category = "Grains"
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryDairy      Category = "Dairy"
	CategoryOther      Category = "Other"

	// categoryFish is not part of the inventory enumeration, but rows
	// written by older clients may still carry it.
	categoryFish Category = "Fish"
)

// InventoryItem is one food item the user has on hand. Nutrition values are
// per stated unit and treated as a quantity of one.
type InventoryItem struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
}

// Goal is the user's nutrition objective.
type Goal string

const (
	GoalGainWeight         Goal = "GainWeight"
	GoalLoseWeight         Goal = "LoseWeight"
	GoalMaintainWeight     Goal = "MaintainWeight"
	GoalBuildMuscle        Goal = "BuildMuscle"
	GoalImprovePerformance Goal = "ImprovePerformance"
)

// Season is the training-cycle phase.
type Season string

const (
	SeasonInseason   Season = "Inseason"
	SeasonOffseason  Season = "Offseason"
	SeasonPreSeason  Season = "PreSeason"
	SeasonPostSeason Season = "PostSeason"
)

// ActivityActive is the activity level that turns on protein focus.
const ActivityActive = "Active"

// UserProfile carries the profile fields the engine reads. Zero values are
// valid: an empty Goal behaves as MaintainWeight, an empty Season as
// Offseason, and empty Diet/Allergies apply no restriction.
type UserProfile struct {
	Goal          Goal   `json:"goal"`
	Season        Season `json:"season"`
	Sport         string `json:"sport"`
	ActivityLevel string `json:"activity_level"`
	Diet          string `json:"diet"`
	Allergies     string `json:"allergies"`
}

// NutritionTarget is the calorie and macro adjustment for a goal and season.
type NutritionTarget struct {
	CalorieDelta      float64 `json:"calorie_delta"`
	ProteinDeltaPerKg float64 `json:"protein_delta_per_kg"`
	CarbDeltaPerKg    float64 `json:"carb_delta_per_kg"`
	FatDeltaPerKg     float64 `json:"fat_delta_per_kg"`
}

// Add returns the element-wise sum of t and o.
func (t NutritionTarget) Add(o NutritionTarget) NutritionTarget {
	return NutritionTarget{
		CalorieDelta:      t.CalorieDelta + o.CalorieDelta,
		ProteinDeltaPerKg: t.ProteinDeltaPerKg + o.ProteinDeltaPerKg,
		CarbDeltaPerKg:    t.CarbDeltaPerKg + o.CarbDeltaPerKg,
		FatDeltaPerKg:     t.FatDeltaPerKg + o.FatDeltaPerKg,
	}
}

// MaxCandidateIngredients is the number of ingredient slots a catalog recipe
// can carry.
const MaxCandidateIngredients = 20

// CandidateIngredient is one ingredient line of a catalog recipe.
type CandidateIngredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// CandidateMeal is a recipe from the external catalog. List lookups only
// fill ID, Name and Thumbnail; detail lookups fill the rest.
type CandidateMeal struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Category     string                `json:"category"`
	Ingredients  []CandidateIngredient `json:"ingredients"`
	Instructions string                `json:"instructions"`
	Thumbnail    string                `json:"thumbnail"`
}

// IngredientNames returns the names of the recipe's ingredients in order.
func (m CandidateMeal) IngredientNames() []string {
	names := make([]string, 0, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// NutritionTotals is the summed nutrition of a composed meal.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Rounded returns the totals rounded to the nearest integer for display.
func (n NutritionTotals) Rounded() NutritionTotals {
	return NutritionTotals{
		Calories: math.Round(n.Calories),
		Protein:  math.Round(n.Protein),
		Carbs:    math.Round(n.Carbs),
		Fat:      math.Round(n.Fat),
	}
}

// ComposedMeal is a meal built from the user's own inventory.
type ComposedMeal struct {
	Name            string          `json:"name"`
	Ingredients     []string        `json:"ingredients"`
	Instructions    []string        `json:"instructions"`
	NutritionTotals NutritionTotals `json:"nutrition_totals"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
}
