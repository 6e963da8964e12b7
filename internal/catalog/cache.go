package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/monitoring"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ingredientKeyFormat = "catalog:ingredient:%s"
	categoryKeyFormat   = "catalog:category:%s"
	mealKeyFormat       = "catalog:meal:%s"
)

// CachedCatalog is a Redis read-through cache in front of another Catalog.
// Cache failures are logged and fall through to the wrapped catalog.
type CachedCatalog struct {
	next    Catalog
	redis   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *monitoring.MetricsCollector
}

// NewCachedCatalog wraps next with a cache whose entries live for ttl.
func NewCachedCatalog(next Catalog, client *redis.Client, ttl time.Duration, logger *zap.Logger, metrics *monitoring.MetricsCollector) *CachedCatalog {
	return &CachedCatalog{
		next:    next,
		redis:   client,
		ttl:     ttl,
		logger:  logger.Named("catalog_cache"),
		metrics: metrics,
	}
}

func ingredientKey(ingredient string) string {
	return fmt.Sprintf(ingredientKeyFormat, strings.ToLower(strings.TrimSpace(ingredient)))
}

func categoryKey(category string) string {
	return fmt.Sprintf(categoryKeyFormat, strings.ToLower(strings.TrimSpace(category)))
}

func mealKey(id string) string {
	return fmt.Sprintf(mealKeyFormat, strings.TrimSpace(id))
}

// LookupByIngredient serves the list from cache when present. Failed and
// malformed lookups are not cached.
func (c *CachedCatalog) LookupByIngredient(ctx context.Context, ingredient string) ([]engine.CandidateMeal, error) {
	return c.cachedList(ctx, ingredientKey(ingredient), func() ([]engine.CandidateMeal, error) {
		return c.next.LookupByIngredient(ctx, ingredient)
	})
}

// LookupByCategory serves the list from cache when present.
func (c *CachedCatalog) LookupByCategory(ctx context.Context, category string) ([]engine.CandidateMeal, error) {
	return c.cachedList(ctx, categoryKey(category), func() ([]engine.CandidateMeal, error) {
		return c.next.LookupByCategory(ctx, category)
	})
}

func (c *CachedCatalog) cachedList(ctx context.Context, key string, fetch func() ([]engine.CandidateMeal, error)) ([]engine.CandidateMeal, error) {
	var meals []engine.CandidateMeal
	if c.load(ctx, key, &meals) {
		return meals, nil
	}

	meals, err := fetch()
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []engine.CandidateMeal{}
	}
	c.store(ctx, key, meals)
	return meals, nil
}

// LookupDetails serves the recipe from cache when present. Misses on the
// wrapped catalog are not cached.
func (c *CachedCatalog) LookupDetails(ctx context.Context, id string) (*engine.CandidateMeal, error) {
	key := mealKey(id)

	var meal engine.CandidateMeal
	if c.load(ctx, key, &meal) {
		return &meal, nil
	}

	m, err := c.next.LookupDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, m)
	return m, nil
}

func (c *CachedCatalog) load(ctx context.Context, key string, dst any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.CacheOperation("get", "miss")
		return false
	}
	if err != nil {
		c.metrics.CacheOperation("get", "error")
		c.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.metrics.CacheOperation("get", "error")
		c.logger.Warn("Catalog cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	c.metrics.CacheOperation("get", "hit")
	return true
}

func (c *CachedCatalog) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to marshal catalog entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.metrics.CacheOperation("set", "error")
		c.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	c.metrics.CacheOperation("set", "ok")
}
