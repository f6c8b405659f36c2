package store

import (
	"context"
	"fmt"
)

// SlaughterhouseRow is the storage representation of the hub. The core
// treats the slaughterhouse as a single instance, but the collaborator
// still exposes the full CRUD surface, since a deployment may want to
// stage a new hub location before switching the engine over to it.
type SlaughterhouseRow struct {
	ID            int64
	Lat           float64
	Lon           float64
	DailyCapacity int
}

// SlaughterhouseUpdate is a partial update payload.
type SlaughterhouseUpdate struct {
	Lat           *float64
	Lon           *float64
	DailyCapacity *int
}

// SlaughterhouseRepository is the hub half of the storage collaborator.
type SlaughterhouseRepository struct {
	db DBPool
}

// NewSlaughterhouseRepository creates a SlaughterhouseRepository.
func NewSlaughterhouseRepository(db DBPool) *SlaughterhouseRepository {
	return &SlaughterhouseRepository{db: db}
}

// List returns up to limit slaughterhouses starting at skip.
func (r *SlaughterhouseRepository) List(ctx context.Context, skip, limit int) ([]SlaughterhouseRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, lat, lon, daily_capacity FROM slaughterhouses ORDER BY id OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("slaughterhouses: list: %w", err)
	}
	defer rows.Close()

	var out []SlaughterhouseRow
	for rows.Next() {
		var s SlaughterhouseRow
		if err := rows.Scan(&s.ID, &s.Lat, &s.Lon, &s.DailyCapacity); err != nil {
			return nil, fmt.Errorf("slaughterhouses: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns a single slaughterhouse by id.
func (r *SlaughterhouseRepository) Get(ctx context.Context, id int64) (*SlaughterhouseRow, error) {
	var s SlaughterhouseRow
	err := r.db.QueryRow(ctx, `
		SELECT id, lat, lon, daily_capacity FROM slaughterhouses WHERE id = $1
	`, id).Scan(&s.ID, &s.Lat, &s.Lon, &s.DailyCapacity)
	if err != nil {
		return nil, &ErrNotFound{Kind: "slaughterhouse", ID: fmt.Sprint(id)}
	}
	return &s, nil
}

// Create inserts a slaughterhouse and returns it with a server-assigned id.
func (r *SlaughterhouseRepository) Create(ctx context.Context, s SlaughterhouseRow) (*SlaughterhouseRow, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO slaughterhouses (lat, lon, daily_capacity) VALUES ($1, $2, $3) RETURNING id
	`, s.Lat, s.Lon, s.DailyCapacity).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("slaughterhouses: create: %w", err)
	}
	return &s, nil
}

// Update applies a partial update to a slaughterhouse.
func (r *SlaughterhouseRepository) Update(ctx context.Context, id int64, u SlaughterhouseUpdate) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.Lat != nil {
		existing.Lat = *u.Lat
	}
	if u.Lon != nil {
		existing.Lon = *u.Lon
	}
	if u.DailyCapacity != nil {
		existing.DailyCapacity = *u.DailyCapacity
	}

	_, err = r.db.Exec(ctx, `
		UPDATE slaughterhouses SET lat = $2, lon = $3, daily_capacity = $4 WHERE id = $1
	`, id, existing.Lat, existing.Lon, existing.DailyCapacity)
	if err != nil {
		return fmt.Errorf("slaughterhouses: update %d: %w", id, err)
	}
	return nil
}

// Delete removes a slaughterhouse by id.
func (r *SlaughterhouseRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM slaughterhouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("slaughterhouses: delete %d: %w", id, err)
	}
	return nil
}
