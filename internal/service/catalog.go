package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/catalog"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/monitoring"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Selection is the verdict on one catalog recipe picked by the user. Meal
// is only set when the recipe was accepted.
type Selection struct {
	engine.Verdict
	Meal *engine.CandidateMeal `json:"meal,omitempty"`
}

// CatalogOptions bounds the catalog fan-out.
type CatalogOptions struct {
	MaxConcurrent int
	LookupTimeout time.Duration
}

// CatalogService browses the external catalog for recipes that fit the
// user's inventory.
type CatalogService struct {
	catalog   RecipeCatalog
	profiles  ProfileProvider
	inventory InventoryProvider
	opts      CatalogOptions
	logger    *zap.Logger
	metrics   *monitoring.MetricsCollector
}

// Ensure CatalogService implements ICatalogService
var _ ICatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(catalog RecipeCatalog, profiles ProfileProvider, inventory InventoryProvider, opts CatalogOptions, logger *zap.Logger, metrics *monitoring.MetricsCollector) *CatalogService {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	return &CatalogService{
		catalog:   catalog,
		profiles:  profiles,
		inventory: inventory,
		opts:      opts,
		logger:    logger.Named("catalog_service"),
		metrics:   metrics,
	}
}

// inventoryNames returns the names used for lookups and matching: the
// user's inventory after diet and allergy filtering, or the default
// inventory when the user has none.
func (s *CatalogService) inventoryNames(ctx context.Context, userID uuid.UUID) []string {
	var profile engine.UserProfile
	if p, err := s.profiles.GetProfile(ctx, userID); err == nil && p != nil {
		profile = *p
	} else if err != nil && !errors.Is(err, ErrProfileNotFound) {
		s.logger.Warn("Profile fetch failed, using defaults", zap.String("user_id", userID.String()), zap.Error(err))
	}

	items, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		s.logger.Warn("Inventory fetch failed, using default inventory", zap.String("user_id", userID.String()), zap.Error(err))
		items = nil
	}

	filtered := engine.DietaryFilter(items, profile.Diet, profile.Allergies, nil)
	names := make([]string, 0, len(filtered))
	for _, item := range filtered {
		names = append(names, item.Name)
	}
	return names
}

func (s *CatalogService) withLookupTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.LookupTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.LookupTimeout)
	}
	return ctx, func() {}
}

// lookupAll queries the catalog once per ingredient and once per excluded
// category with bounded concurrency. A failed or timed out lookup
// contributes nothing. Ingredient results keep ingredient order. The
// returned map holds the excluded category of each meal id listed under one.
func (s *CatalogService) lookupAll(ctx context.Context, ingredients []string) ([][]engine.CandidateMeal, map[string]string) {
	results := make([][]engine.CandidateMeal, len(ingredients))
	excluded := make([][]engine.CandidateMeal, len(engine.ExcludedCategories))

	var g errgroup.Group
	g.SetLimit(s.opts.MaxConcurrent)
	for i, category := range engine.ExcludedCategories {
		g.Go(func() error {
			lookupCtx, cancel := s.withLookupTimeout(ctx)
			defer cancel()
			meals, err := s.catalog.LookupByCategory(lookupCtx, category)
			if err != nil {
				s.logger.Warn("Catalog category lookup failed", zap.String("category", category), zap.Error(err))
				return nil
			}
			excluded[i] = meals
			return nil
		})
	}
	for i, ingredient := range ingredients {
		g.Go(func() error {
			lookupCtx, cancel := s.withLookupTimeout(ctx)
			defer cancel()
			meals, err := s.catalog.LookupByIngredient(lookupCtx, ingredient)
			if err != nil {
				s.logger.Warn("Catalog lookup failed", zap.String("ingredient", ingredient), zap.Error(err))
				return nil
			}
			results[i] = meals
			return nil
		})
	}
	_ = g.Wait()

	categories := make(map[string]string)
	for i, batch := range excluded {
		for _, m := range batch {
			categories[m.ID] = engine.ExcludedCategories[i]
		}
	}
	return results, categories
}

// Browse lists catalog meals for the user's inventory. Meals are deduped
// by id in first-seen order and screened with the list-level rules. List
// entries carry no category, so ids listed under an excluded category are
// tagged with it before screening.
func (s *CatalogService) Browse(ctx context.Context, userID uuid.UUID) ([]engine.CandidateMeal, error) {
	names := s.inventoryNames(ctx, userID)

	results, categories := s.lookupAll(ctx, names)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	meals := make([]engine.CandidateMeal, 0)
	for _, batch := range results {
		for _, m := range batch {
			if m.ID == "" || seen[m.ID] {
				continue
			}
			seen[m.ID] = true

			if c, ok := categories[m.ID]; ok && m.Category == "" {
				m.Category = c
			}
			if v := engine.ScreenCatalog(m); !v.Accepted {
				s.metrics.Rejection(string(v.Reason))
				continue
			}
			meals = append(meals, m)
		}
	}
	return meals, nil
}

// SelectMeal fetches the full recipe and runs every feasibility rule on it.
// A failed or timed out detail lookup is reported as catalog.ErrNotFound.
func (s *CatalogService) SelectMeal(ctx context.Context, userID uuid.UUID, mealID string) (*Selection, error) {
	mealID = strings.TrimSpace(mealID)

	lookupCtx, cancel := s.withLookupTimeout(ctx)
	meal, err := s.catalog.LookupDetails(lookupCtx, mealID)
	cancel()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			s.logger.Warn("Catalog detail lookup failed", zap.String("meal_id", mealID), zap.Error(err))
		}
		return nil, fmt.Errorf("meal %s unavailable: %w", mealID, catalog.ErrNotFound)
	}

	verdict := engine.Classify(*meal, s.inventoryNames(ctx, userID))
	if !verdict.Accepted {
		s.metrics.Rejection(string(verdict.Reason))
		return &Selection{Verdict: verdict}, nil
	}
	return &Selection{Verdict: verdict, Meal: meal}, nil
}
