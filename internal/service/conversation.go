package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/monitoring"
	"go.uber.org/zap"
)

// TurnResult is the outcome of one chat message.
type TurnResult struct {
	SessionID           string               `json:"session_id"`
	Response            string               `json:"response"`
	Meal                *engine.ComposedMeal `json:"meal,omitempty"`
	ExcludedIngredients []string             `json:"excluded_ingredients"`
	Requirements        engine.Requirements  `json:"requirements"`
}

// Recommendation is a meal composed from the profile alone.
type Recommendation struct {
	Meal   *engine.ComposedMeal   `json:"meal"`
	Target engine.NutritionTarget `json:"target"`
}

// Targets reports both target presets for the user's goal and season.
type Targets struct {
	Goal               engine.Goal            `json:"goal"`
	Season             engine.Season          `json:"season"`
	ProfileTarget      engine.NutritionTarget `json:"profile_target"`
	ConversationTarget engine.NutritionTarget `json:"conversation_target"`
}

// ConversationService runs chat turns and profile recommendations on top of
// the engine. Profile and inventory failures degrade to empty values.
type ConversationService struct {
	profiles  ProfileProvider
	inventory InventoryProvider
	sessions  SessionRepository
	logger    *zap.Logger
	metrics   *monitoring.MetricsCollector
}

// Ensure ConversationService implements IConversationService
var _ IConversationService = (*ConversationService)(nil)

// NewConversationService creates a new ConversationService instance
func NewConversationService(profiles ProfileProvider, inventory InventoryProvider, sessions SessionRepository, logger *zap.Logger, metrics *monitoring.MetricsCollector) *ConversationService {
	return &ConversationService{
		profiles:  profiles,
		inventory: inventory,
		sessions:  sessions,
		logger:    logger.Named("conversation"),
		metrics:   metrics,
	}
}

// profileFor returns the user's profile, or the zero profile when it cannot
// be loaded.
func (s *ConversationService) profileFor(ctx context.Context, userID uuid.UUID) engine.UserProfile {
	p, err := s.profiles.GetProfile(ctx, userID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		s.logger.Debug("No profile, using defaults", zap.String("user_id", userID.String()))
		return engine.UserProfile{}
	case err != nil:
		s.logger.Warn("Profile fetch failed, using defaults", zap.String("user_id", userID.String()), zap.Error(err))
		return engine.UserProfile{}
	case p == nil:
		return engine.UserProfile{}
	}
	return *p
}

// inventoryFor returns the user's inventory, or nothing when it cannot be
// loaded. The dietary filter substitutes the default inventory for an empty
// one.
func (s *ConversationService) inventoryFor(ctx context.Context, userID uuid.UUID) []engine.InventoryItem {
	items, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		s.logger.Warn("Inventory fetch failed, using default inventory", zap.String("user_id", userID.String()), zap.Error(err))
		return nil
	}
	return items
}

// HandleTurn processes one message: extract exclusions, filter, compose,
// and persist the updated state. An empty sessionID starts a new session;
// an unknown or expired one starts fresh under the same id.
func (s *ConversationService) HandleTurn(ctx context.Context, userID uuid.UUID, sessionID, message string) (*TurnResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock, err := s.sessions.Lock(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	state, err := s.sessions.Load(ctx, userID, sessionID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	profile := s.profileFor(ctx, userID)
	inventory := s.inventoryFor(ctx, userID)

	newExclusions := engine.ExtractExclusions(message, state.ExcludedIngredients)
	state = state.RecordExclusions(newExclusions)

	filtered := engine.DietaryFilter(inventory, profile.Diet, profile.Allergies, state.ExcludedIngredients)
	req := engine.ClassifyRequirements(message, profile)

	meal, err := engine.Compose(filtered, req)
	switch {
	case errors.Is(err, engine.ErrNoEligibleItems):
		s.metrics.Turn("no_items")
		meal = nil
	case err != nil:
		return nil, fmt.Errorf("failed to compose meal: %w", err)
	default:
		s.metrics.Turn("meal")
		s.metrics.MealComposed("chat")
		state = state.RecordMeal(meal)
	}

	if err := s.sessions.Save(ctx, userID, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	target := req.Target
	response, err := renderResponse(responseData{
		Meal:          meal,
		NewExclusions: newExclusions,
		Excluded:      state.ExcludedIngredients,
		Target:        &target,
	})
	if err != nil {
		return nil, err
	}

	return &TurnResult{
		SessionID:           sessionID,
		Response:            response,
		Meal:                meal,
		ExcludedIngredients: state.ExcludedIngredients,
		Requirements:        req,
	}, nil
}

// Recommend composes a meal from the profile and inventory with no message
// and no exclusions.
func (s *ConversationService) Recommend(ctx context.Context, userID uuid.UUID) (*Recommendation, error) {
	profile := s.profileFor(ctx, userID)
	inventory := s.inventoryFor(ctx, userID)

	filtered := engine.DietaryFilter(inventory, profile.Diet, profile.Allergies, nil)
	meal, err := engine.Compose(filtered, engine.ClassifyRequirements("", profile))
	if err != nil {
		return nil, err
	}
	s.metrics.MealComposed("recommendation")

	return &Recommendation{
		Meal:   meal,
		Target: engine.CalculateTarget(profile.Goal, profile.Season),
	}, nil
}

// Targets returns both presets for the user's goal and season.
func (s *ConversationService) Targets(ctx context.Context, userID uuid.UUID) (*Targets, error) {
	profile := s.profileFor(ctx, userID)
	goal := engine.ParseGoal(string(profile.Goal))
	season := engine.ParseSeason(string(profile.Season))

	return &Targets{
		Goal:               goal,
		Season:             season,
		ProfileTarget:      engine.ProfilePreset.Target(goal, season),
		ConversationTarget: engine.ConversationPreset.Target(goal, season),
	}, nil
}

// ResetSession forgets the session's exclusions and last meal.
func (s *ConversationService) ResetSession(ctx context.Context, userID uuid.UUID, sessionID string) error {
	return s.sessions.Delete(ctx, userID, sessionID)
}
