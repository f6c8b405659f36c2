package store

import (
	"context"
	"fmt"
)

// FarmRow is the storage representation of a Farm.
type FarmRow struct {
	ID           string
	Lat          float64
	Lon          float64
	Inventory    int
	AvgWeight    float64
	LastVisitDay int
}

// FarmUpdate is a partial update payload; nil fields are left
// untouched. Any field name outside this set is rejected by the
// handler layer before it reaches here.
type FarmUpdate struct {
	Lat          *float64
	Lon          *float64
	Inventory    *int
	AvgWeight    *float64
	LastVisitDay *int
}

// FarmRepository is the farm half of the storage collaborator: a thin
// typed layer over a DBPool.
type FarmRepository struct {
	db DBPool
}

// NewFarmRepository creates a FarmRepository.
func NewFarmRepository(db DBPool) *FarmRepository {
	return &FarmRepository{db: db}
}

// List returns up to limit farms starting at skip, ordered by id.
func (r *FarmRepository) List(ctx context.Context, skip, limit int) ([]FarmRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, lat, lon, inventory, avg_weight, last_visit_day
		FROM farms
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("farms: list: %w", err)
	}
	defer rows.Close()

	var out []FarmRow
	for rows.Next() {
		var f FarmRow
		if err := rows.Scan(&f.ID, &f.Lat, &f.Lon, &f.Inventory, &f.AvgWeight, &f.LastVisitDay); err != nil {
			return nil, fmt.Errorf("farms: scan: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("farms: rows: %w", err)
	}
	return out, nil
}

// Get returns a single farm by id.
func (r *FarmRepository) Get(ctx context.Context, id string) (*FarmRow, error) {
	var f FarmRow
	err := r.db.QueryRow(ctx, `
		SELECT id, lat, lon, inventory, avg_weight, last_visit_day
		FROM farms WHERE id = $1
	`, id).Scan(&f.ID, &f.Lat, &f.Lon, &f.Inventory, &f.AvgWeight, &f.LastVisitDay)
	if err != nil {
		return nil, &ErrNotFound{Kind: "farm", ID: id}
	}
	return &f, nil
}

// Create inserts a new farm. Farms carry caller-supplied ids, unlike
// trucks and the slaughterhouse.
func (r *FarmRepository) Create(ctx context.Context, f FarmRow) (*FarmRow, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO farms (id, lat, lon, inventory, avg_weight, last_visit_day)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, f.ID, f.Lat, f.Lon, f.Inventory, f.AvgWeight, f.LastVisitDay)
	if err != nil {
		return nil, fmt.Errorf("farms: create: %w", err)
	}
	return &f, nil
}

// Update applies a partial update, touching only the supplied fields.
func (r *FarmRepository) Update(ctx context.Context, id string, u FarmUpdate) error {
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
	if u.Inventory != nil {
		existing.Inventory = *u.Inventory
	}
	if u.AvgWeight != nil {
		existing.AvgWeight = *u.AvgWeight
	}
	if u.LastVisitDay != nil {
		existing.LastVisitDay = *u.LastVisitDay
	}

	_, err = r.db.Exec(ctx, `
		UPDATE farms SET lat = $2, lon = $3, inventory = $4, avg_weight = $5, last_visit_day = $6
		WHERE id = $1
	`, id, existing.Lat, existing.Lon, existing.Inventory, existing.AvgWeight, existing.LastVisitDay)
	if err != nil {
		return fmt.Errorf("farms: update %s: %w", id, err)
	}
	return nil
}

// Delete removes a farm by id.
func (r *FarmRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM farms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("farms: delete %s: %w", id, err)
	}
	return nil
}
