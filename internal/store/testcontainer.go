// Package store - testcontainer utilities for integration tests
//go:build integration || !unit

package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPostgresContainer holds a PostgreSQL testcontainer instance for
// real-Postgres integration tests. No test in this package calls it.
type TestPostgresContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupPostgresContainer creates and starts a PostgreSQL testcontainer.
func SetupPostgresContainer(t *testing.T) *TestPostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("dispatch_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to create pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		t.Fatalf("failed to ping database: %v", err)
	}

	tc := &TestPostgresContainer{Container: container, Pool: pool, ConnStr: connStr}
	t.Cleanup(tc.Close)
	return tc
}

// CreateTestSchema creates the minimal schema the store repositories
// need, without a full migration tool.
func (tc *TestPostgresContainer) CreateTestSchema(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS slaughterhouses (
			id SERIAL PRIMARY KEY,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			daily_capacity INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS farms (
			id TEXT PRIMARY KEY,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			inventory INTEGER NOT NULL,
			avg_weight DOUBLE PRECISION NOT NULL,
			last_visit_day INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS trucks (
			id SERIAL PRIMARY KEY,
			capacity_kg DOUBLE PRECISION NOT NULL,
			class TEXT NOT NULL,
			cost_per_km DOUBLE PRECISION NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS daily_logs (
			day_index INTEGER PRIMARY KEY,
			trips JSONB NOT NULL,
			total_pigs INTEGER NOT NULL,
			daily_profit DOUBLE PRECISION NOT NULL,
			daily_revenue DOUBLE PRECISION NOT NULL,
			daily_cost DOUBLE PRECISION NOT NULL
		);
	`
	if _, err := tc.Pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
}

// Truncate removes all data from the named tables.
func (tc *TestPostgresContainer) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	ctx := context.Background()
	for _, table := range tables {
		if _, err := tc.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

// Close terminates the container and closes the pool.
func (tc *TestPostgresContainer) Close() {
	if tc.Pool != nil {
		tc.Pool.Close()
	}
	if tc.Container != nil {
		tc.Container.Terminate(context.Background())
	}
}
