package engine

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// RejectReason identifies why a catalog recipe was turned down.
type RejectReason string

const (
	RejectNone      RejectReason = ""
	RejectCategory  RejectReason = "category"
	RejectKeyword   RejectReason = "keyword"
	RejectInventory RejectReason = "inventory"
	RejectEquipment RejectReason = "equipment"
	RejectDuration  RejectReason = "duration"
)

var rejectMessages = map[RejectReason]string{
	RejectCategory:  "This meal is a dessert and doesn't fit your nutrition plan.",
	RejectKeyword:   "This meal looks like a dessert and doesn't fit your nutrition plan.",
	RejectInventory: "This meal does not match your inventory.",
	RejectEquipment: "This meal needs equipment beyond a pan, pot, microwave or stovetop.",
	RejectDuration:  "This meal takes too long to prepare.",
}

// Message is the user-facing explanation for the reason.
func (r RejectReason) Message() string {
	return rejectMessages[r]
}

// Verdict is the classifier outcome for one recipe.
type Verdict struct {
	Accepted bool         `json:"accepted"`
	Reason   RejectReason `json:"reason,omitempty"`
	Message  string       `json:"message,omitempty"`
}

func accept() Verdict { return Verdict{Accepted: true} }

func reject(r RejectReason) Verdict {
	return Verdict{Reason: r, Message: r.Message()}
}

var (
	// ExcludedCategories are catalog categories never offered.
	ExcludedCategories = []string{"Dessert"}

	// DessertKeywords are matched against the lower-cased meal name.
	DessertKeywords = []string{"cake", "pudding", "tart", "gateau", "brownie", "cookie", "pie", "mousse", "ice cream"}

	// Staples are assumed to always be available and are ignored when
	// matching a recipe against the inventory.
	Staples = []string{"milk", "butter", "salt", "pepper", "oil", "sugar", "flour", "water", "baking powder", "baking soda"}

	// DisallowedEquipment rejects a recipe when its instructions mention any
	// of these.
	DisallowedEquipment = []string{"oven", "bake", "roast", "grill", "deep fry", "broil", "slow cooker", "pressure cooker", "air fryer"}

	// SupportedEquipment describes the kitchen recipes are expected to fit.
	// It is informational; rejection is driven by DisallowedEquipment only.
	SupportedEquipment = []string{"pan", "pot", "microwave", "stovetop", "boil", "fry"}
)

const (
	maxHours       = 2
	durationWindow = 20
	marinateStem   = "marinat"
)

var hoursPattern = regexp.MustCompile(`(\d+)\s*hours?`)

// ScreenCatalog applies the rules that only need list data: category and
// dessert keyword.
func ScreenCatalog(meal CandidateMeal) Verdict {
	for _, c := range ExcludedCategories {
		if strings.EqualFold(strings.TrimSpace(meal.Category), c) {
			return reject(RejectCategory)
		}
	}
	name := strings.ToLower(meal.Name)
	for _, k := range DessertKeywords {
		if strings.Contains(name, k) {
			return reject(RejectKeyword)
		}
	}
	return accept()
}

// ScreenSelection applies the rules that need recipe details: inventory
// match, equipment and duration, in that order.
func ScreenSelection(meal CandidateMeal, inventoryNames []string) Verdict {
	if !MatchesInventory(meal.IngredientNames(), inventoryNames) {
		return reject(RejectInventory)
	}
	instructions := strings.ToLower(meal.Instructions)
	for _, e := range DisallowedEquipment {
		if strings.Contains(instructions, e) {
			return reject(RejectEquipment)
		}
	}
	if TooLong(instructions) {
		return reject(RejectDuration)
	}
	return accept()
}

// Classify runs all five rules in order; the first failing rule wins.
func Classify(meal CandidateMeal, inventoryNames []string) Verdict {
	if v := ScreenCatalog(meal); !v.Accepted {
		return v
	}
	return ScreenSelection(meal, inventoryNames)
}

// MatchesInventory reports whether at least one non-staple ingredient
// matches an inventory name. A match is a case-insensitive containment in
// either direction, so "chicken" matches "Chicken Breast".
func MatchesInventory(ingredients, inventoryNames []string) bool {
	staples := make(map[string]bool, len(Staples))
	for _, s := range Staples {
		staples[s] = true
	}
	inv := foldTerms(inventoryNames)

	for _, ing := range ingredients {
		name := foldTerm(ing)
		if name == "" || staples[name] {
			continue
		}
		for _, n := range inv {
			if strings.Contains(n, name) || strings.Contains(name, n) {
				return true
			}
		}
	}
	return false
}

// TooLong reports whether the instructions mention a step of more than two
// hours that is not a marination. Each "<n> hour(s)" match is inspected
// with a 20 character window on either side.
func TooLong(instructions string) bool {
	lower := strings.ToLower(instructions)
	for _, loc := range hoursPattern.FindAllStringSubmatchIndex(lower, -1) {
		// A count too large for an int is still more than two hours.
		hours, err := strconv.Atoi(lower[loc[2]:loc[3]])
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		if err == nil && hours <= maxHours {
			continue
		}
		start := loc[0] - durationWindow
		if start < 0 {
			start = 0
		}
		end := loc[1] + durationWindow
		if end > len(lower) {
			end = len(lower)
		}
		if !strings.Contains(lower[start:end], marinateStem) {
			return true
		}
	}
	return false
}
