// Package store is the persistent keyed-record collaborator the core
// treats as an external dependency: a simple create/read/update/delete
// surface over farms, trucks, and the slaughterhouse, plus the per-day
// history the API layer serves back out. The planner never writes
// here directly; only the handlers package does, after a plan has
// been produced.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool is the subset of pgxpool.Pool the repositories need, named so
// pgxmock can stand in for tests (teacher's database.DBPool pattern).
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// ErrNotFound is returned by Get when no row matches the id.
type ErrNotFound struct{ Kind, ID string }

func (e *ErrNotFound) Error() string {
	return e.Kind + " " + e.ID + ": not found"
}

// ErrUnknownField reports a partial-update payload that names a field
// the entity doesn't have. The handler layer builds it before calling
// a repository's Update; the repositories themselves never return it.
type ErrUnknownField struct{ Field string }

func (e *ErrUnknownField) Error() string {
	return "unknown field: " + e.Field
}
