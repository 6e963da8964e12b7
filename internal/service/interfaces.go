package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/models"
	"github.com/pageza/fuelplate/backend/internal/types"
)

// InventoryProvider returns the food items a user has on hand, in display
// order. An empty result is valid.
type InventoryProvider interface {
	GetInventory(ctx context.Context, userID uuid.UUID) ([]engine.InventoryItem, error)
}

// ProfileProvider returns the engine view of a user's profile.
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*engine.UserProfile, error)
}

// RecipeCatalog is the external recipe catalog.
type RecipeCatalog interface {
	LookupByIngredient(ctx context.Context, ingredient string) ([]engine.CandidateMeal, error)
	LookupByCategory(ctx context.Context, category string) ([]engine.CandidateMeal, error)
	LookupDetails(ctx context.Context, id string) (*engine.CandidateMeal, error)
}

// SessionRepository persists conversation state between turns. Every
// method is scoped to the owning user.
type SessionRepository interface {
	Load(ctx context.Context, userID uuid.UUID, sessionID string) (engine.ConversationState, error)
	Save(ctx context.Context, userID uuid.UUID, sessionID string, state engine.ConversationState) error
	Delete(ctx context.Context, userID uuid.UUID, sessionID string) error
	Lock(ctx context.Context, userID uuid.UUID, sessionID string) (func(), error)
}

// IConversationService defines the interface for the conversational flows
type IConversationService interface {
	HandleTurn(ctx context.Context, userID uuid.UUID, sessionID, message string) (*TurnResult, error)
	Recommend(ctx context.Context, userID uuid.UUID) (*Recommendation, error)
	Targets(ctx context.Context, userID uuid.UUID) (*Targets, error)
	ResetSession(ctx context.Context, userID uuid.UUID, sessionID string) error
}

// ICatalogService defines the interface for catalog browsing
type ICatalogService interface {
	Browse(ctx context.Context, userID uuid.UUID) ([]engine.CandidateMeal, error)
	SelectMeal(ctx context.Context, userID uuid.UUID, mealID string) (*Selection, error)
}

// IMealArchive defines the interface for handing accepted meals to the meal log
type IMealArchive interface {
	Archive(ctx context.Context, userID uuid.UUID, meal *engine.ComposedMeal) (*ArchivedMeal, error)
}

// IProfileService defines the interface for athlete profile operations
type IProfileService interface {
	ProfileProvider
	UpsertProfile(ctx context.Context, userID uuid.UUID, p models.AthleteProfile, allergens []string) error
}

// IInventoryService defines the interface for inventory operations
type IInventoryService interface {
	InventoryProvider
	ReplaceInventory(ctx context.Context, userID uuid.UUID, items []engine.InventoryItem) error
}

// ITokenService defines the interface for token operations
type ITokenService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(userID uuid.UUID, username string) (string, error)
}
