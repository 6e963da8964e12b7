package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/fuelplate/backend/internal/api"
	"github.com/pageza/fuelplate/backend/internal/mocks"
	"github.com/pageza/fuelplate/backend/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(checks map[string]HealthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers := api.NewHandlers(api.Services{
		Conversation: new(mocks.MockConversationService),
		Catalog:      new(mocks.MockCatalogService),
		Archive:      new(mocks.MockMealArchive),
		Profiles:     new(mocks.MockProfileService),
		Inventory:    new(mocks.MockInventoryService),
		Tokens:       new(mocks.MockTokenService),
	}, nil, zap.NewNop())

	return SetupRouter(handlers, Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		Checks:         checks,
		Metrics:        monitoring.NewMetricsCollector(prometheus.NewRegistry()),
		Logger:         zap.NewNop(),
	})
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	w := httptest.NewRecorder()
	newTestRouter(map[string]HealthCheck{"database": ok, "redis": ok}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","checks":{"database":"ok","redis":"ok"}}`, w.Body.String())

	w = httptest.NewRecorder()
	newTestRouter(map[string]HealthCheck{"database": ok, "redis": down}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestAPIRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(nil)
	for _, path := range []string{"/api/v1/targets", "/api/v1/catalog", "/api/v1/recommendations", "/api/v1/profile"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
