package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/pageza/fuelplate/backend/config"
	"github.com/pageza/fuelplate/backend/internal/api"
	"github.com/pageza/fuelplate/backend/internal/catalog"
	"github.com/pageza/fuelplate/backend/internal/database"
	"github.com/pageza/fuelplate/backend/internal/logger"
	"github.com/pageza/fuelplate/backend/internal/middleware"
	"github.com/pageza/fuelplate/backend/internal/monitoring"
	"github.com/pageza/fuelplate/backend/internal/router"
	"github.com/pageza/fuelplate/backend/internal/server"
	"github.com/pageza/fuelplate/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		// The logger is not configured yet
		zap.NewExample().Fatal("Failed to load configuration", zap.Error(err))
	}

	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: config.GetEnvironment().IsDevelopment(),
	})
	defer func() { _ = log.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
	log.Info("Server stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, "migrations", log); err != nil {
		return err
	}

	redisClient, err := database.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetricsCollector(registry)

	// Catalog client behind the Redis cache
	recipeCatalog := catalog.NewCachedCatalog(
		catalog.NewClient(catalog.Config{
			BaseURL:           cfg.Catalog.BaseURL,
			Timeout:           cfg.Catalog.LookupTimeout,
			RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
			Burst:             cfg.Catalog.Burst,
		}, log, metrics),
		redisClient, cfg.Catalog.CacheTTL, log, metrics,
	)

	s3Cfg, err := config.NewS3Config(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	// Initialize services
	profiles := service.NewProfileService(db)
	inventory := service.NewInventoryService(db)
	sessions := service.NewSessionStore(redisClient, cfg.Session.TTL)

	handlers := api.NewHandlers(api.Services{
		Conversation: service.NewConversationService(profiles, inventory, sessions, log, metrics),
		Catalog: service.NewCatalogService(recipeCatalog, profiles, inventory, service.CatalogOptions{
			MaxConcurrent: cfg.Catalog.MaxConcurrent,
			LookupTimeout: cfg.Catalog.LookupTimeout,
		}, log, metrics),
		Archive:   service.NewMealArchive(s3Cfg.Client, s3Cfg, cfg.Storage.Bucket, cfg.Storage.PresignExpiry, log, metrics),
		Profiles:  profiles,
		Inventory: inventory,
		Tokens:    service.NewTokenService(cfg.Auth.JWTSecret),
	}, middleware.NewChatRateLimiter(redisClient, cfg.RateLimit.ChatPerMinute, log), log)

	engine := router.SetupRouter(handlers, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Checks: map[string]router.HealthCheck{
			"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
			"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
		Metrics: metrics,
		Logger:  log,
	})

	log.Info("Starting server",
		zap.String("environment", string(config.GetEnvironment())),
		zap.Int("port", cfg.Server.Port),
	)
	return server.New(cfg.Server, engine, log).Run(ctx)
}
