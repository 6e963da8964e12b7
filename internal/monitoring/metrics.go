package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector handles Prometheus metrics collection. A nil collector is
// valid and records nothing.
type MetricsCollector struct {
	gatherer prometheus.Gatherer

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Catalog metrics
	catalogLookupsTotal   *prometheus.CounterVec
	catalogLookupDuration *prometheus.HistogramVec
	cacheOperations       *prometheus.CounterVec

	// Engine metrics
	rejectionsTotal    *prometheus.CounterVec
	mealsComposedTotal *prometheus.CounterVec
	turnsTotal         *prometheus.CounterVec
	archivedMealsTotal *prometheus.CounterVec
}

// NewMetricsCollector registers the collectors on reg. Pass
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetricsCollector(reg *prometheus.Registry) *MetricsCollector {
	factory := promauto.With(reg)
	return &MetricsCollector{
		gatherer: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		catalogLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_lookups_total",
				Help: "Total number of recipe catalog lookups",
			},
			[]string{"op", "outcome"},
		),
		catalogLookupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_lookup_duration_seconds",
				Help:    "Recipe catalog lookup duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"op"},
		),
		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Total number of cache operations",
			},
			[]string{"operation", "status"},
		),

		rejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feasibility_rejections_total",
				Help: "Catalog recipes rejected by the feasibility rules",
			},
			[]string{"reason"},
		),
		mealsComposedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meals_composed_total",
				Help: "Meals composed from user inventory",
			},
			[]string{"mode"},
		),
		turnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversation_turns_total",
				Help: "Conversation turns processed",
			},
			[]string{"outcome"},
		),
		archivedMealsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meals_archived_total",
				Help: "Accepted meals handed off to the meal log",
			},
			[]string{"status"},
		),
	}
}

// HTTPMiddleware creates a Gin middleware for HTTP metrics collection
func (m *MetricsCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// CatalogLookup records one catalog call. op is "list" or "detail".
func (m *MetricsCollector) CatalogLookup(op, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.catalogLookupsTotal.WithLabelValues(op, outcome).Inc()
	m.catalogLookupDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsCollector) CacheOperation(operation, status string) {
	if m == nil {
		return
	}
	m.cacheOperations.WithLabelValues(operation, status).Inc()
}

func (m *MetricsCollector) Rejection(reason string) {
	if m == nil {
		return
	}
	m.rejectionsTotal.WithLabelValues(reason).Inc()
}

func (m *MetricsCollector) MealComposed(mode string) {
	if m == nil {
		return
	}
	m.mealsComposedTotal.WithLabelValues(mode).Inc()
}

func (m *MetricsCollector) Turn(outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsCollector) MealArchived(status string) {
	if m == nil {
		return
	}
	m.archivedMealsTotal.WithLabelValues(status).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
