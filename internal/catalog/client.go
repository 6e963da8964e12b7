// Package catalog talks to the external recipe catalog, a TheMealDB style
// JSON API with an ingredient filter and a detail lookup.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/monitoring"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrNotFound is returned when the catalog has no meal for an id.
	ErrNotFound = errors.New("meal not found")

	// ErrMalformedResponse is returned when a catalog body does not decode.
	// Callers treat it as no data for that lookup.
	ErrMalformedResponse = errors.New("malformed catalog response")
)

// Catalog is the lookup surface shared by the HTTP client and the cache.
type Catalog interface {
	LookupByIngredient(ctx context.Context, ingredient string) ([]engine.CandidateMeal, error)
	LookupByCategory(ctx context.Context, category string) ([]engine.CandidateMeal, error)
	LookupDetails(ctx context.Context, id string) (*engine.CandidateMeal, error)
}

// Config holds the client settings.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client is the HTTP implementation of Catalog. Outbound calls share one
// token bucket so a fan-out cannot flood the catalog.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	metrics    *monitoring.MetricsCollector
}

// NewClient creates a new catalog Client
func NewClient(cfg Config, logger *zap.Logger, metrics *monitoring.MetricsCollector) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger.Named("catalog"),
		metrics:    metrics,
	}
}

// mealsEnvelope is the shape of every catalog response. "meals" is null
// when nothing matched.
type mealsEnvelope struct {
	Meals []map[string]any `json:"meals"`
}

// LookupByIngredient returns the meals that use ingredient. List entries
// only carry id, name and thumbnail.
func (c *Client) LookupByIngredient(ctx context.Context, ingredient string) ([]engine.CandidateMeal, error) {
	meals, err := c.list(ctx, url.Values{"i": {ingredient}})
	if err != nil {
		return nil, fmt.Errorf("lookup by ingredient %q: %w", ingredient, err)
	}
	return meals, nil
}

// LookupByCategory returns the meals filed under category. The list payload
// has no category field, so each entry is stamped with the one queried.
func (c *Client) LookupByCategory(ctx context.Context, category string) ([]engine.CandidateMeal, error) {
	meals, err := c.list(ctx, url.Values{"c": {category}})
	if err != nil {
		return nil, fmt.Errorf("lookup by category %q: %w", category, err)
	}
	for i := range meals {
		meals[i].Category = category
	}
	return meals, nil
}

// list runs one filter.php query. Entries without an id are dropped.
func (c *Client) list(ctx context.Context, q url.Values) ([]engine.CandidateMeal, error) {
	start := time.Now()
	env, err := c.get(ctx, "filter.php", q)
	if errors.Is(err, ErrMalformedResponse) {
		c.metrics.CatalogLookup("list", "malformed", time.Since(start))
		return nil, err
	}
	if err != nil {
		c.metrics.CatalogLookup("list", "error", time.Since(start))
		return nil, err
	}

	meals := make([]engine.CandidateMeal, 0, len(env.Meals))
	for _, raw := range env.Meals {
		m := toCandidate(raw)
		if m.ID == "" {
			continue
		}
		meals = append(meals, m)
	}
	c.metrics.CatalogLookup("list", "ok", time.Since(start))
	return meals, nil
}

// LookupDetails returns the full recipe for id, or ErrNotFound.
func (c *Client) LookupDetails(ctx context.Context, id string) (*engine.CandidateMeal, error) {
	start := time.Now()
	env, err := c.get(ctx, "lookup.php", url.Values{"i": {id}})
	if errors.Is(err, ErrMalformedResponse) {
		c.metrics.CatalogLookup("detail", "malformed", time.Since(start))
		return nil, ErrNotFound
	}
	if err != nil {
		c.metrics.CatalogLookup("detail", "error", time.Since(start))
		return nil, fmt.Errorf("lookup details %q: %w", id, err)
	}
	if len(env.Meals) == 0 {
		c.metrics.CatalogLookup("detail", "not_found", time.Since(start))
		return nil, ErrNotFound
	}
	m := toCandidate(env.Meals[0])
	if m.ID == "" {
		c.metrics.CatalogLookup("detail", "malformed", time.Since(start))
		return nil, ErrNotFound
	}
	c.metrics.CatalogLookup("detail", "ok", time.Since(start))
	return &m, nil
}

// get performs one throttled GET. A body that does not decode is logged and
// reported as ErrMalformedResponse.
func (c *Client) get(ctx context.Context, endpoint string, q url.Values) (*mealsEnvelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request failed with status %d", resp.StatusCode)
	}

	var env mealsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Warn("Malformed catalog payload",
			zap.String("endpoint", endpoint),
			zap.String("query", q.Encode()),
			zap.Error(err),
		)
		return nil, ErrMalformedResponse
	}
	return &env, nil
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// toCandidate maps a catalog record. Ingredient slots 1..20 are read in
// order and blank slots are skipped.
func toCandidate(raw map[string]any) engine.CandidateMeal {
	m := engine.CandidateMeal{
		ID:           stringField(raw, "idMeal"),
		Name:         stringField(raw, "strMeal"),
		Category:     stringField(raw, "strCategory"),
		Instructions: stringField(raw, "strInstructions"),
		Thumbnail:    stringField(raw, "strMealThumb"),
	}
	for i := 1; i <= engine.MaxCandidateIngredients; i++ {
		name := stringField(raw, fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		m.Ingredients = append(m.Ingredients, engine.CandidateIngredient{
			Name:    name,
			Measure: stringField(raw, fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return m
}
