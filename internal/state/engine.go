// Package state holds the engine's durable, mutable data: farms,
// trucks, the slaughterhouse, and the current day index. It is the
// only place reset() and the daily planner are allowed to mutate.
package state

import (
	"fmt"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/scenario"
)

// Engine is the engine's working state for one scenario run. Farms and
// Trucks persist across days; reset() is the only operation that
// rewinds them.
type Engine struct {
	Farms          map[string]*domain.Farm
	FarmOrder      []string // insertion order, for deterministic iteration
	Trucks         []*domain.Truck
	Slaughterhouse domain.Slaughterhouse
	DayIndex       int

	original *scenario.Scenario
}

// New builds an Engine from a loaded scenario, installing the supplied
// fleet composition (counts of small/large trucks) rather than the
// scenario's own truck list; this is how the fleet-sizing tournament
// swaps in a candidate fleet. Pass nil composition to use the
// scenario's trucks as-is.
func New(sc *scenario.Scenario, composition *FleetComposition) *Engine {
	e := &Engine{original: sc}
	e.Reset(sc, composition)
	return e
}

// FleetComposition names how many small and large trucks to install,
// independent of whatever truck list the scenario document carries.
type FleetComposition struct {
	Small int
	Large int
}

// Reset reloads farm inventory and weights from the original scenario
// snapshot, zeroes all counters, and re-initialises trucks. Idempotent:
// reset(); reset() leaves the same state as one reset().
func (e *Engine) Reset(sc *scenario.Scenario, composition *FleetComposition) {
	if sc != nil {
		e.original = sc
	}
	sc = e.original

	e.Farms = make(map[string]*domain.Farm, len(sc.Farms))
	e.FarmOrder = make([]string, 0, len(sc.Farms))
	for _, fs := range sc.Farms {
		std := domain.DefaultWeightStd
		e.Farms[fs.ID] = &domain.Farm{
			ID:           fs.ID,
			Lat:          fs.Lat,
			Lon:          fs.Lon,
			Inventory:    fs.Inventory,
			AvgWeight:    fs.AvgWeight,
			WeightStd:    std,
			LastVisitDay: domain.LastVisitSentinel,
		}
		e.FarmOrder = append(e.FarmOrder, fs.ID)
	}

	e.Slaughterhouse = sc.Slaughterhouse
	e.DayIndex = 0

	if composition != nil {
		e.Trucks = buildFleet(*composition)
	} else {
		e.Trucks = make([]*domain.Truck, 0, len(sc.Trucks))
		for _, ts := range sc.Trucks {
			e.Trucks = append(e.Trucks, &domain.Truck{
				ID:         ts.ID,
				CapacityKg: ts.CapacityTons * 1000,
				Class:      ts.Type,
			})
		}
	}
}

// buildFleet installs small trucks first, then large, mirroring the
// source's id-assignment order (small-first-then-large).
func buildFleet(c FleetComposition) []*domain.Truck {
	trucks := make([]*domain.Truck, 0, c.Small+c.Large)
	id := 1
	for i := 0; i < c.Small; i++ {
		trucks = append(trucks, &domain.Truck{
			ID:         fmt.Sprintf("t%d", id),
			CapacityKg: 10_000,
			Class:      domain.TruckSmall,
		})
		id++
	}
	for i := 0; i < c.Large; i++ {
		trucks = append(trucks, &domain.Truck{
			ID:         fmt.Sprintf("t%d", id),
			CapacityKg: 20_000,
			Class:      domain.TruckLarge,
		})
		id++
	}
	return trucks
}

// Snapshot returns a read-only view of every farm's current state, in
// scenario order, for the SimulationResult's final_farm_status field.
func (e *Engine) Snapshot() []domain.FarmSnapshot {
	out := make([]domain.FarmSnapshot, 0, len(e.FarmOrder))
	for _, id := range e.FarmOrder {
		f := e.Farms[id]
		out = append(out, domain.FarmSnapshot{
			ID:           f.ID,
			Inventory:    f.Inventory,
			AvgWeight:    f.AvgWeight,
			LastVisitDay: f.LastVisitDay,
		})
	}
	return out
}
