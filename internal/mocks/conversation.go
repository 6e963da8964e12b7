package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockConversationService is a mock implementation of the IConversationService interface
type MockConversationService struct {
	mock.Mock
}

func (m *MockConversationService) HandleTurn(ctx context.Context, userID uuid.UUID, sessionID, message string) (*service.TurnResult, error) {
	args := m.Called(ctx, userID, sessionID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TurnResult), args.Error(1)
}

func (m *MockConversationService) Recommend(ctx context.Context, userID uuid.UUID) (*service.Recommendation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Recommendation), args.Error(1)
}

func (m *MockConversationService) Targets(ctx context.Context, userID uuid.UUID) (*service.Targets, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Targets), args.Error(1)
}

func (m *MockConversationService) ResetSession(ctx context.Context, userID uuid.UUID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Load(ctx context.Context, userID uuid.UUID, sessionID string) (engine.ConversationState, error) {
	args := m.Called(ctx, userID, sessionID)
	return args.Get(0).(engine.ConversationState), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, userID uuid.UUID, sessionID string, state engine.ConversationState) error {
	args := m.Called(ctx, userID, sessionID, state)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, userID uuid.UUID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func (m *MockSessionRepository) Lock(ctx context.Context, userID uuid.UUID, sessionID string) (func(), error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// MockMealArchive is a mock implementation of the IMealArchive interface
type MockMealArchive struct {
	mock.Mock
}

func (m *MockMealArchive) Archive(ctx context.Context, userID uuid.UUID, meal *engine.ComposedMeal) (*service.ArchivedMeal, error) {
	args := m.Called(ctx, userID, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchivedMeal), args.Error(1)
}
