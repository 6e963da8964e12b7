package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func meal(name, category, instructions string, ingredients ...string) CandidateMeal {
	m := CandidateMeal{ID: "52772", Name: name, Category: category, Instructions: instructions}
	for _, i := range ingredients {
		m.Ingredients = append(m.Ingredients, CandidateIngredient{Name: i, Measure: "1 cup"})
	}
	return m
}

func TestClassify(t *testing.T) {
	inventory := []string{"Chicken Breast", "Rice", "Broccoli"}

	tests := []struct {
		name   string
		meal   CandidateMeal
		reason RejectReason
	}{
		{
			name: "plain stovetop dish",
			meal: meal("Chicken Fried Rice", "Chicken", "Fry the chicken in a pan for 10 minutes.", "Chicken", "Rice", "Salt"),
		},
		{
			name:   "dessert category",
			meal:   meal("Chicken Surprise", "dessert", "Fry it.", "Chicken"),
			reason: RejectCategory,
		},
		{
			name:   "dessert keyword in name",
			meal:   meal("Rice Pudding", "Miscellaneous", "Simmer in a pot.", "Rice"),
			reason: RejectKeyword,
		},
		{
			name:   "only staples",
			meal:   meal("Crepes", "Breakfast", "Fry in a pan.", "Milk", "Flour", "Butter", "Salt"),
			reason: RejectInventory,
		},
		{
			name:   "nothing in common",
			meal:   meal("Beef Stew", "Beef", "Simmer in a pot.", "Beef", "Carrots"),
			reason: RejectInventory,
		},
		{
			name:   "oven required",
			meal:   meal("Chicken Traybake", "Chicken", "Preheat the OVEN to 200C.", "Chicken"),
			reason: RejectEquipment,
		},
		{
			name:   "long simmer",
			meal:   meal("Chicken Broth", "Chicken", "Simmer in a pot for 4 hours.", "Chicken"),
			reason: RejectDuration,
		},
		{
			name:   "category wins over keyword and inventory",
			meal:   meal("Chocolate Cake", "Dessert", "Bake for 3 hours.", "Sugar"),
			reason: RejectCategory,
		},
		{
			name:   "inventory wins over equipment",
			meal:   meal("Roast Lamb", "Lamb", "Roast for 5 hours.", "Lamb"),
			reason: RejectInventory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Classify(tt.meal, inventory)
			if tt.reason == RejectNone {
				assert.True(t, v.Accepted)
				assert.Empty(t, v.Message)
				return
			}
			assert.False(t, v.Accepted)
			assert.Equal(t, tt.reason, v.Reason)
			assert.Equal(t, tt.reason.Message(), v.Message)
			assert.NotEmpty(t, v.Message)
		})
	}
}

func TestScreenCatalogOnlyUsesListData(t *testing.T) {
	// List lookups carry no ingredients or instructions.
	assert.True(t, ScreenCatalog(CandidateMeal{ID: "1", Name: "Teriyaki Chicken"}).Accepted)
	assert.Equal(t, RejectKeyword, ScreenCatalog(CandidateMeal{ID: "2", Name: "Banana Ice Cream"}).Reason)
}

func TestMatchesInventory(t *testing.T) {
	assert.True(t, MatchesInventory([]string{"chicken"}, []string{"Chicken Breast"}))
	assert.True(t, MatchesInventory([]string{"Chicken Breasts"}, []string{"chicken breast"}))
	assert.False(t, MatchesInventory([]string{"Salt", "Water", "olive oil"}, []string{"Spinach"}))
	assert.False(t, MatchesInventory([]string{"Milk"}, []string{"Milk"}), "staples never count as a match")
	assert.False(t, MatchesInventory([]string{"", "  "}, []string{"Rice"}))
	assert.False(t, MatchesInventory([]string{"Rice"}, nil))
}

func TestTooLong(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Bake for 1 hour then marinate for 3 hours", false},
		{"Marinate for 4 hours then pan fry", false},
		{"Simmer for 2 hours", false},
		{"Simmer for 10 hours", true},
		{"Leave to rest 3hour", true},
		{"Rest for 30 minutes", false},
		{"Cook 1 hour, stir, then cook another 3 hours until thick", true},
		{"Cure for 99999999999999999999 hours", true},
		{"Marinate for 99999999999999999999 hours", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, TooLong(tt.text))
		})
	}
}
