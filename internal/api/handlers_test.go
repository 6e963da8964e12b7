package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/catalog"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/mocks"
	"github.com/pageza/fuelplate/backend/internal/models"
	"github.com/pageza/fuelplate/backend/internal/service"
	"github.com/pageza/fuelplate/backend/internal/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type HandlersTestSuite struct {
	suite.Suite
	router       *gin.Engine
	conversation *mocks.MockConversationService
	catalog      *mocks.MockCatalogService
	archive      *mocks.MockMealArchive
	profiles     *mocks.MockProfileService
	inventory    *mocks.MockInventoryService
	tokens       *mocks.MockTokenService
	userID       uuid.UUID
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.conversation = new(mocks.MockConversationService)
	s.catalog = new(mocks.MockCatalogService)
	s.archive = new(mocks.MockMealArchive)
	s.profiles = new(mocks.MockProfileService)
	s.inventory = new(mocks.MockInventoryService)
	s.tokens = new(mocks.MockTokenService)
	s.userID = uuid.New()

	s.tokens.On("ValidateToken", "test-token").Return(&types.TokenClaims{UserID: s.userID, Username: "athlete"}, nil).Maybe()

	h := NewHandlers(Services{
		Conversation: s.conversation,
		Catalog:      s.catalog,
		Archive:      s.archive,
		Profiles:     s.profiles,
		Inventory:    s.inventory,
		Tokens:       s.tokens,
	}, nil, zap.NewNop())

	s.router = gin.New()
	h.RegisterRoutes(s.router.Group("/api/v1"))
}

func (s *HandlersTestSuite) TearDownTest() {
	s.conversation.AssertExpectations(s.T())
	s.catalog.AssertExpectations(s.T())
	s.archive.AssertExpectations(s.T())
	s.profiles.AssertExpectations(s.T())
	s.inventory.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *HandlersTestSuite) TestRequiresAuth() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/targets", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestChat() {
	meal := &engine.ComposedMeal{Name: "Ground Turkey Bowl", Ingredients: []string{"Ground Turkey"}}
	s.conversation.On("HandleTurn", mock.Anything, s.userID, "", "dinner, no chicken").
		Return(&service.TurnResult{
			SessionID:           "new-session",
			Response:            "Got it, I'll leave out Chicken.",
			Meal:                meal,
			ExcludedIngredients: []string{"Chicken"},
		}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/chat", types.ChatRequest{Message: "dinner, no chicken"})
	s.Equal(http.StatusOK, w.Code)

	body := s.decode(w)
	s.Equal("new-session", body["session_id"])
	s.Equal([]any{"Chicken"}, body["excluded_ingredients"])
	s.Equal("Ground Turkey Bowl", body["meal"].(map[string]any)["name"])
}

func (s *HandlersTestSuite) TestChatValidation() {
	w := s.do(http.MethodPost, "/api/v1/chat", map[string]string{"session_id": "x"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/chat", map[string]string{"message": "   "})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestChatErrorMapping() {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrSessionBusy, http.StatusConflict},
		{fmt.Errorf("failed to save session: %w", fmt.Errorf("redis down")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.conversation.On("HandleTurn", mock.Anything, s.userID, "s1", "hi").Return(nil, tt.err).Once()
		w := s.do(http.MethodPost, "/api/v1/chat", types.ChatRequest{SessionID: "s1", Message: "hi"})
		s.Equal(tt.status, w.Code, tt.err.Error())
		s.Contains(s.decode(w), "error")
	}
}

func (s *HandlersTestSuite) TestResetSession() {
	s.conversation.On("ResetSession", mock.Anything, s.userID, "s1").Return(nil).Once()
	s.conversation.On("ResetSession", mock.Anything, s.userID, "missing").Return(service.ErrSessionNotFound).Once()

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/chat/sessions/s1", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/chat/sessions/missing", nil).Code)
}

func (s *HandlersTestSuite) TestRecommend() {
	s.conversation.On("Recommend", mock.Anything, s.userID).Return(&service.Recommendation{
		Meal:   &engine.ComposedMeal{Name: "Protein Power Bowl"},
		Target: engine.NutritionTarget{CalorieDelta: 300},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/recommendations", nil)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("Protein Power Bowl", body["meal"].(map[string]any)["name"])
	s.Equal(300.0, body["target"].(map[string]any)["calorie_delta"])

	s.conversation.On("Recommend", mock.Anything, s.userID).Return(nil, engine.ErrNoEligibleItems).Once()
	s.Equal(http.StatusUnprocessableEntity, s.do(http.MethodGet, "/api/v1/recommendations", nil).Code)
}

func (s *HandlersTestSuite) TestTargets() {
	s.conversation.On("Targets", mock.Anything, s.userID).Return(&service.Targets{
		Goal:   engine.GoalBuildMuscle,
		Season: engine.SeasonPreSeason,
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/targets", nil)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("BuildMuscle", body["goal"])
	s.Equal("PreSeason", body["season"])
	s.Contains(body, "profile_target")
	s.Contains(body, "conversation_target")
}

func (s *HandlersTestSuite) TestBrowseCatalog() {
	s.catalog.On("Browse", mock.Anything, s.userID).Return([]engine.CandidateMeal{{ID: "1", Name: "Chicken Rice Bowl"}}, nil).Once()
	w := s.do(http.MethodGet, "/api/v1/catalog", nil)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Len(body["meals"], 1)
	s.NotContains(body, "message")

	s.catalog.On("Browse", mock.Anything, s.userID).Return(nil, nil).Once()
	w = s.do(http.MethodGet, "/api/v1/catalog", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"meals":[],"message":"no meals found"}`, w.Body.String())
}

func (s *HandlersTestSuite) TestSelectCatalogMeal() {
	rejected := &service.Selection{Verdict: engine.Verdict{
		Reason:  engine.RejectEquipment,
		Message: engine.RejectEquipment.Message(),
	}}
	s.catalog.On("SelectMeal", mock.Anything, s.userID, "52940").Return(rejected, nil).Once()
	s.catalog.On("SelectMeal", mock.Anything, s.userID, "0").
		Return(nil, fmt.Errorf("failed to fetch meal 0: %w", catalog.ErrNotFound)).Once()

	w := s.do(http.MethodGet, "/api/v1/catalog/52940", nil)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal(false, body["accepted"])
	s.Equal("equipment", body["reason"])
	s.NotContains(body, "meal")

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/catalog/0", nil).Code)
}

func (s *HandlersTestSuite) TestAcceptMeal() {
	meal := &engine.ComposedMeal{Name: "Power Breakfast", Ingredients: []string{"Banana"}}
	s.archive.On("Archive", mock.Anything, s.userID, meal).Return(&service.ArchivedMeal{
		Key:       "meals/x.json",
		URL:       "https://example.test/meals/x.json",
		ExpiresAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/meals/accept", types.AcceptMealRequest{Meal: meal})
	s.Equal(http.StatusCreated, w.Code)
	body := s.decode(w)
	s.Equal("meals/x.json", body["key"])
	s.Equal("https://example.test/meals/x.json", body["url"])

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/meals/accept", map[string]any{}).Code)
}

func (s *HandlersTestSuite) TestProfile() {
	s.profiles.On("UpsertProfile", mock.Anything, s.userID, models.AthleteProfile{
		Goal:     "Build Muscle",
		Sport:    "Football",
		WeightKg: 80,
	}, []string{"peanut"}).Return(nil).Once()
	s.profiles.On("GetProfile", mock.Anything, s.userID).
		Return(&engine.UserProfile{Goal: engine.GoalBuildMuscle, Season: engine.SeasonInseason, Sport: "Football", Allergies: "peanut"}, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/profile", types.UpdateProfileRequest{
		Goal:      "Build Muscle",
		Sport:     "Football",
		WeightKg:  80,
		Allergens: []string{"peanut"},
	})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("BuildMuscle", s.decode(w)["goal"])

	s.profiles.On("GetProfile", mock.Anything, s.userID).Return(nil, service.ErrProfileNotFound).Once()
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/profile", nil).Code)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/v1/profile", map[string]any{"weight_kg": -3}).Code)
}

func (s *HandlersTestSuite) TestInventory() {
	items := []engine.InventoryItem{{Name: "Salmon", Category: engine.CategoryMeat, Calories: 208, Protein: 20, Fat: 13}}
	s.inventory.On("ReplaceInventory", mock.Anything, s.userID, items).Return(nil).Once()
	s.inventory.On("GetInventory", mock.Anything, s.userID).Return(items, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/inventory", types.ReplaceInventoryRequest{Items: []types.InventoryItemRequest{
		{Name: "Salmon", Category: "Meat", Calories: 208, Protein: 20, Fat: 13},
	}})
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/inventory", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["items"], 1)

	w = s.do(http.MethodPut, "/api/v1/inventory", map[string]any{"items": []map[string]any{{"name": "Rock", "category": "Minerals"}}})
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
