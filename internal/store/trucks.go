package store

import (
	"context"
	"fmt"
)

// TruckRow is the storage representation of a Truck. Unlike FarmRow,
// its id is server-assigned on Create.
type TruckRow struct {
	ID         int64
	CapacityKg float64
	Class      string
	CostPerKm  float64
}

// TruckUpdate is a partial update payload for trucks.
type TruckUpdate struct {
	CapacityKg *float64
	Class      *string
	CostPerKm  *float64
}

// TruckRepository is the truck half of the storage collaborator.
type TruckRepository struct {
	db DBPool
}

// NewTruckRepository creates a TruckRepository.
func NewTruckRepository(db DBPool) *TruckRepository {
	return &TruckRepository{db: db}
}

// List returns up to limit trucks starting at skip.
func (r *TruckRepository) List(ctx context.Context, skip, limit int) ([]TruckRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, capacity_kg, class, cost_per_km
		FROM trucks ORDER BY id OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("trucks: list: %w", err)
	}
	defer rows.Close()

	var out []TruckRow
	for rows.Next() {
		var t TruckRow
		if err := rows.Scan(&t.ID, &t.CapacityKg, &t.Class, &t.CostPerKm); err != nil {
			return nil, fmt.Errorf("trucks: scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get returns a single truck by id.
func (r *TruckRepository) Get(ctx context.Context, id int64) (*TruckRow, error) {
	var t TruckRow
	err := r.db.QueryRow(ctx, `
		SELECT id, capacity_kg, class, cost_per_km FROM trucks WHERE id = $1
	`, id).Scan(&t.ID, &t.CapacityKg, &t.Class, &t.CostPerKm)
	if err != nil {
		return nil, &ErrNotFound{Kind: "truck", ID: fmt.Sprint(id)}
	}
	return &t, nil
}

// Create inserts a truck and returns it with a server-assigned id.
func (r *TruckRepository) Create(ctx context.Context, t TruckRow) (*TruckRow, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO trucks (capacity_kg, class, cost_per_km)
		VALUES ($1, $2, $3) RETURNING id
	`, t.CapacityKg, t.Class, t.CostPerKm).Scan(&t.ID)
	if err != nil {
		return nil, fmt.Errorf("trucks: create: %w", err)
	}
	return &t, nil
}

// Update applies a partial update to a truck.
func (r *TruckRepository) Update(ctx context.Context, id int64, u TruckUpdate) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.CapacityKg != nil {
		existing.CapacityKg = *u.CapacityKg
	}
	if u.Class != nil {
		existing.Class = *u.Class
	}
	if u.CostPerKm != nil {
		existing.CostPerKm = *u.CostPerKm
	}

	_, err = r.db.Exec(ctx, `
		UPDATE trucks SET capacity_kg = $2, class = $3, cost_per_km = $4 WHERE id = $1
	`, id, existing.CapacityKg, existing.Class, existing.CostPerKm)
	if err != nil {
		return fmt.Errorf("trucks: update %d: %w", id, err)
	}
	return nil
}

// Delete removes a truck by id.
func (r *TruckRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM trucks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("trucks: delete %d: %w", id, err)
	}
	return nil
}
