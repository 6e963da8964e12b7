package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/fuelplate/backend/config"
	"github.com/pageza/fuelplate/backend/internal/database"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/logger"
	"github.com/pageza/fuelplate/backend/internal/models"
	"github.com/pageza/fuelplate/backend/internal/service"
)

type athlete struct {
	username  string
	profile   models.AthleteProfile
	allergens []string
	inventory []engine.InventoryItem
}

// athletes covers the main profile shapes: a meat eater in season, a
// vegetarian cutting weight, and a keto athlete with allergies.
func athletes() []athlete {
	return []athlete{
		{
			username:  "football_bulk",
			profile:   models.AthleteProfile{Goal: "Build Muscle", Sport: "Football", ActivityLevel: engine.ActivityActive, WeightKg: 95},
			inventory: engine.DefaultInventory(),
		},
		{
			username: "runner_veg",
			profile:  models.AthleteProfile{Goal: "Lose Weight", Season: "PreSeason", Sport: "Track", Diet: "Vegetarian", WeightKg: 61},
			inventory: []engine.InventoryItem{
				{Name: "Tofu", Category: engine.CategoryOther, Calories: 144, Protein: 17, Carbs: 3, Fat: 9},
				{Name: "Quinoa", Category: engine.CategoryGrains, Calories: 222, Protein: 8, Carbs: 39, Fat: 3.6},
				{Name: "Kale", Category: engine.CategoryVegetables, Calories: 33, Protein: 2.9, Carbs: 6, Fat: 0.6},
				{Name: "Cottage Cheese", Category: engine.CategoryDairy, Calories: 98, Protein: 11, Carbs: 3.4, Fat: 4.3},
				{Name: "Blueberries", Category: engine.CategoryFruits, Calories: 84, Protein: 1.1, Carbs: 21, Fat: 0.5},
			},
		},
		{
			username:  "keto_wrestler",
			profile:   models.AthleteProfile{Goal: "Maintain Weight", Sport: "Wrestling", Diet: "Keto", WeightKg: 74},
			allergens: []string{"peanut", "milk"},
			inventory: engine.DefaultInventory(),
		},
	}
}

func main() {
	withTokens := flag.Bool("tokens", true, "print a development token per athlete")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("Failed to load configuration", zap.Error(err))
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Development: true})
	defer func() { _ = log.Sync() }()

	if config.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	profiles := service.NewProfileService(db)
	inventory := service.NewInventoryService(db)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret)

	for _, a := range athletes() {
		// Stable ids keep re-runs idempotent.
		userID := uuid.NewSHA1(uuid.NameSpaceURL, []byte("fuelplate:seed:"+a.username))

		if err := profiles.UpsertProfile(ctx, userID, a.profile, a.allergens); err != nil {
			log.Fatal("Failed to seed profile", zap.String("username", a.username), zap.Error(err))
		}
		if err := inventory.ReplaceInventory(ctx, userID, a.inventory); err != nil {
			log.Fatal("Failed to seed inventory", zap.String("username", a.username), zap.Error(err))
		}
		log.Info("Seeded athlete",
			zap.String("username", a.username),
			zap.String("user_id", userID.String()),
			zap.Int("inventory_items", len(a.inventory)),
		)

		if *withTokens {
			token, err := tokens.GenerateToken(userID, a.username)
			if err != nil {
				log.Fatal("Failed to generate token", zap.Error(err))
			}
			fmt.Printf("%s\t%s\n", a.username, token)
		}
	}
}
