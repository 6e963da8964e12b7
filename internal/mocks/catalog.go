package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockRecipeCatalog is a mock implementation of the RecipeCatalog interface
type MockRecipeCatalog struct {
	mock.Mock
}

func (m *MockRecipeCatalog) LookupByIngredient(ctx context.Context, ingredient string) ([]engine.CandidateMeal, error) {
	args := m.Called(ctx, ingredient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.CandidateMeal), args.Error(1)
}

func (m *MockRecipeCatalog) LookupByCategory(ctx context.Context, category string) ([]engine.CandidateMeal, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.CandidateMeal), args.Error(1)
}

func (m *MockRecipeCatalog) LookupDetails(ctx context.Context, id string) (*engine.CandidateMeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.CandidateMeal), args.Error(1)
}

// MockCatalogService is a mock implementation of the ICatalogService interface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Browse(ctx context.Context, userID uuid.UUID) ([]engine.CandidateMeal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.CandidateMeal), args.Error(1)
}

func (m *MockCatalogService) SelectMeal(ctx context.Context, userID uuid.UUID, mealID string) (*service.Selection, error) {
	args := m.Called(ctx, userID, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Selection), args.Error(1)
}
