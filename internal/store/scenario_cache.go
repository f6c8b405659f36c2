package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/farmhaul/dispatch/internal/scenario"
)

// ScenarioCache persists the last-loaded scenario document to a local
// SQLite file: a single binary plus one file, no Postgres required,
// for local development or offline tournament runs.
type ScenarioCache struct {
	db *sql.DB
}

// NewScenarioCache wraps an open *sql.DB (store.DB.Cache) with the
// scenario cache's schema and key scheme.
func NewScenarioCache(db *sql.DB) (*ScenarioCache, error) {
	c := &ScenarioCache{db: db}
	if err := c.ensureSchema(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ScenarioCache) ensureSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS scenario_cache (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			document TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("scenario_cache: ensure schema: %w", err)
	}
	return nil
}

// Save stores sc as the single cached scenario document.
func (c *ScenarioCache) Save(ctx context.Context, sc *scenario.Scenario) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("scenario_cache: marshal: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO scenario_cache (id, document) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET document = excluded.document
	`, string(data))
	if err != nil {
		return fmt.Errorf("scenario_cache: save: %w", err)
	}
	return nil
}

// Load returns the previously cached scenario document, if any.
func (c *ScenarioCache) Load(ctx context.Context) (*scenario.Scenario, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `SELECT document FROM scenario_cache WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scenario_cache: load: %w", err)
	}

	var sc scenario.Scenario
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		return nil, fmt.Errorf("scenario_cache: unmarshal: %w", err)
	}
	return &sc, nil
}
