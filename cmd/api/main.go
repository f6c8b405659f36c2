// Package main is the entry point for the dispatch planning API: a
// daily truck-routing decision-support engine for a livestock supply
// chain (two-week horizon, urgency-scored multi-stop routes, fleet
// tournament).
package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"

	"github.com/farmhaul/dispatch/internal/config"
	"github.com/farmhaul/dispatch/internal/distance"
	"github.com/farmhaul/dispatch/internal/handlers"
	"github.com/farmhaul/dispatch/internal/planner"
	"github.com/farmhaul/dispatch/internal/scenario"
	"github.com/farmhaul/dispatch/internal/simulation"
	"github.com/farmhaul/dispatch/internal/state"
	"github.com/farmhaul/dispatch/internal/store"
	"github.com/farmhaul/dispatch/internal/tournament"
	applogger "github.com/farmhaul/dispatch/pkg/logger"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	appLogger := applogger.New()

	sc, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}
	log.Printf("Scenario loaded: %d farms, %d trucks", len(sc.Farms), len(sc.Trucks))

	// Storage is optional: the core engine runs entirely in memory, and
	// storage only persists history/CRUD state for the HTTP layer. A
	// missing or unreachable Postgres makes the CRUD routes answer 503
	// and history answer empty arrays, rather than aborting startup.
	db, err := store.New(ctx, store.Config{
		PostgresURL:       cfg.PostgresURL,
		ScenarioCachePath: cfg.ScenarioCachePath,
	})
	if err != nil {
		log.Printf("Warning: storage unavailable, CRUD/history routes disabled: %v", err)
		db = nil
	} else {
		defer db.Close()
		if err := store.Seed(ctx, db.Postgres, sc); err != nil {
			log.Printf("Warning: scenario seed failed: %v", err)
		}
	}

	var redisClient *redis.Client
	if redisOpts, err := redis.ParseURL(cfg.RedisURL); err != nil {
		log.Printf("Warning: invalid REDIS_URL, distance persistence disabled: %v", err)
	} else {
		redisClient = redis.NewClient(redisOpts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed, distance persistence disabled: %v", err)
			redisClient = nil
		}
	}

	oracle := distance.New(distance.Config{BaseURL: cfg.DistanceServiceURL}, appLogger)
	var distanceSource planner.DistanceSource = oracle
	if redisClient != nil {
		distanceSource = distance.NewPersisted(oracle, distance.NewRedisCache(redisClient))
	}

	dailyPlanner := planner.New(distanceSource, appLogger)
	driver := simulation.New(dailyPlanner)
	tour := tournament.New(driver)
	engine := state.New(sc, nil)

	deps := handlers.Dependencies{
		Engine:     engine,
		Planner:    dailyPlanner,
		Tournament: tour,
		Scenario:   sc,
		Log:        appLogger,
	}
	if db != nil {
		deps.History = store.NewHistoryRepository(db.Postgres)
		deps.Farms = store.NewFarmRepository(db.Postgres)
		deps.Trucks = store.NewTruckRepository(db.Postgres)
		deps.Hubs = store.NewSlaughterhouseRepository(db.Postgres)
	}
	h := handlers.New(deps)

	app := fiber.New(fiber.Config{
		AppName: "dispatch-api",
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	api := app.Group("/api/v1")
	h.RegisterRoutes(api)

	log.Printf("Starting dispatch API on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
