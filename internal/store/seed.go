package store

import (
	"context"
	"fmt"

	"github.com/farmhaul/dispatch/internal/scenario"
)

// Seed installs a scenario's initial farms, trucks, and slaughterhouse
// into storage using fixed ids and an idempotent upsert: farms keep
// their scenario ids, the slaughterhouse gets id 1, and trucks get ids
// 1..n in scenario order. Safe to run against a dev database that
// already has an older seed applied.
func Seed(ctx context.Context, db DBPool, sc *scenario.Scenario) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO slaughterhouses (id, lat, lon, daily_capacity)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET lat = EXCLUDED.lat, lon = EXCLUDED.lon, daily_capacity = EXCLUDED.daily_capacity
	`, sc.Slaughterhouse.Lat, sc.Slaughterhouse.Lon, sc.Slaughterhouse.DailyCapacity); err != nil {
		return fmt.Errorf("seed: slaughterhouse: %w", err)
	}

	for _, f := range sc.Farms {
		if _, err := tx.Exec(ctx, `
			INSERT INTO farms (id, lat, lon, inventory, avg_weight, last_visit_day)
			VALUES ($1, $2, $3, $4, $5, -1000)
			ON CONFLICT (id) DO UPDATE SET
				lat = EXCLUDED.lat, lon = EXCLUDED.lon,
				inventory = EXCLUDED.inventory, avg_weight = EXCLUDED.avg_weight
		`, f.ID, f.Lat, f.Lon, f.Inventory, f.AvgWeight); err != nil {
			return fmt.Errorf("seed: farm %s: %w", f.ID, err)
		}
	}

	for i, t := range sc.Trucks {
		capacityKg := t.CapacityTons * 1000
		if _, err := tx.Exec(ctx, `
			INSERT INTO trucks (id, capacity_kg, class, cost_per_km)
			VALUES ($1, $2, $3, 0)
			ON CONFLICT (id) DO UPDATE SET capacity_kg = EXCLUDED.capacity_kg, class = EXCLUDED.class
		`, i+1, capacityKg, t.Type); err != nil {
			return fmt.Errorf("seed: truck %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}
