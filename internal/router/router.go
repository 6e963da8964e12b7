package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/fuelplate/backend/internal/api"
	"github.com/pageza/fuelplate/backend/internal/middleware"
	"github.com/pageza/fuelplate/backend/internal/monitoring"
	"go.uber.org/zap"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	Checks         map[string]HealthCheck
	Metrics        *monitoring.MetricsCollector
	Logger         *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(handlers *api.Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(opts.Logger),
		middleware.Recovery(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		opts.Metrics.HTTPMiddleware(),
	)

	router.GET("/health", health(opts.Checks))
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	handlers.RegisterRoutes(router.Group("/api/v1"))
	return router
}

// health pings every dependency with a short timeout. Any failure makes the
// whole check a 503.
func health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}
