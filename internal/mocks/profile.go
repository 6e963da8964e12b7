package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockProfileService is a mock implementation of the IProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*engine.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.UserProfile), args.Error(1)
}

func (m *MockProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, p models.AthleteProfile, allergens []string) error {
	args := m.Called(ctx, userID, p, allergens)
	return args.Error(0)
}

// MockInventoryService is a mock implementation of the IInventoryService interface
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetInventory(ctx context.Context, userID uuid.UUID) ([]engine.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) ReplaceInventory(ctx context.Context, userID uuid.UUID, items []engine.InventoryItem) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}
