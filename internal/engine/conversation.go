package engine

// ConversationState is the per-session memory carried between turns. It is
// a value: the methods return an updated copy and never touch the receiver.
type ConversationState struct {
	ExcludedIngredients []string      `json:"excluded_ingredients"`
	LastMeal            *ComposedMeal `json:"last_meal,omitempty"`
}

// HasExclusion reports whether term is already excluded, ignoring case.
func (s ConversationState) HasExclusion(term string) bool {
	f := foldTerm(term)
	for _, e := range s.ExcludedIngredients {
		if foldTerm(e) == f {
			return true
		}
	}
	return false
}

// RecordExclusions adds the terms not yet present. The first spelling seen
// is kept for display. Exclusions are never removed within a session.
func (s ConversationState) RecordExclusions(terms []string) ConversationState {
	next := s.clone()
	for _, t := range terms {
		if foldTerm(t) == "" || next.HasExclusion(t) {
			continue
		}
		next.ExcludedIngredients = append(next.ExcludedIngredients, t)
	}
	return next
}

// RecordMeal replaces the last meal when meal is non-nil; otherwise the
// state is returned unchanged.
func (s ConversationState) RecordMeal(meal *ComposedMeal) ConversationState {
	next := s.clone()
	if meal != nil {
		next.LastMeal = meal
	}
	return next
}

func (s ConversationState) clone() ConversationState {
	excluded := make([]string, len(s.ExcludedIngredients))
	copy(excluded, s.ExcludedIngredients)
	return ConversationState{ExcludedIngredients: excluded, LastMeal: s.LastMeal}
}
