package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector(t *testing.T) {
	m := NewMetricsCollector(prometheus.NewRegistry())

	m.Rejection("inventory")
	m.Rejection("inventory")
	m.CatalogLookup("list", "ok", 20*time.Millisecond)
	m.Turn("meal")
	m.MealComposed("chat")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rejectionsTotal.WithLabelValues("inventory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogLookupsTotal.WithLabelValues("list", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.turnsTotal.WithLabelValues("meal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mealsComposedTotal.WithLabelValues("chat")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var m *MetricsCollector
	assert.NotPanics(t, func() {
		m.Rejection("keyword")
		m.CatalogLookup("detail", "error", time.Second)
		m.CacheOperation("get", "miss")
		m.Turn("no_items")
		m.MealArchived("ok")
	})
}

func TestHTTPMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetricsCollector(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.HTTPMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/ping", "204")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
