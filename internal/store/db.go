// Package store also owns connection management for the engine's two
// storage backends: PostgreSQL for the durable keyed-record store, and
// an optional local SQLite file for a zero-ops scenario cache.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
)

// Config holds connection settings for both backends.
type Config struct {
	PostgresURL string
	// ScenarioCachePath, if non-empty, opens a local SQLite-backed
	// scenario cache alongside Postgres.
	ScenarioCachePath string
}

// DB manages both database connections.
type DB struct {
	Postgres *pgxpool.Pool
	Cache    *sql.DB

	config Config
}

// New connects to Postgres and, if configured, the local scenario
// cache.
func New(ctx context.Context, cfg Config) (*DB, error) {
	db := &DB{config: cfg}

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("store: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}
	db.Postgres = pool

	if cfg.ScenarioCachePath != "" {
		cache, err := sql.Open("sqlite3", cfg.ScenarioCachePath)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("store: open scenario cache: %w", err)
		}
		if err := cache.Ping(); err != nil {
			cache.Close()
			pool.Close()
			return nil, fmt.Errorf("store: ping scenario cache: %w", err)
		}
		db.Cache = cache
	}

	return db, nil
}

// Close releases both connections.
func (db *DB) Close() {
	if db.Postgres != nil {
		db.Postgres.Close()
	}
	if db.Cache != nil {
		db.Cache.Close()
	}
}

// Health reports whether both configured backends are reachable.
func (db *DB) Health(ctx context.Context) error {
	if err := db.Postgres.Ping(ctx); err != nil {
		return fmt.Errorf("postgres unhealthy: %w", err)
	}
	if db.Cache != nil {
		if err := db.Cache.Ping(); err != nil {
			return fmt.Errorf("scenario cache unhealthy: %w", err)
		}
	}
	return nil
}
