// Package scenario loads the engine's initial data set from disk.
//
// Loading is an explicit step, never an import-time side effect: a
// Scenario is just data until something calls Load and hands the
// result to state.Engine.Reset.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/farmhaul/dispatch/internal/domain"
)

// TruckSpec is one entry of the scenario document's trucks array.
type TruckSpec struct {
	ID           string  `json:"id"`
	CapacityTons float64 `json:"capacity_tons"`
	Type         string  `json:"type"`
}

// FarmSpec is one entry of the scenario document's farms array.
type FarmSpec struct {
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Inventory int     `json:"inventory"`
	AvgWeight float64 `json:"avg_weight"`
}

// Scenario is the engine's initial-data contract: the slaughterhouse is
// parameterised here even though the core engine otherwise treats it
// as a fixed hub.
type Scenario struct {
	Trucks         []TruckSpec           `json:"trucks"`
	Farms          []FarmSpec            `json:"farms"`
	Slaughterhouse domain.Slaughterhouse `json:"slaughterhouse"`
}

// Load reads and parses a scenario document from path. A missing or
// malformed file is a configuration error: the caller is expected to
// abort startup with the returned message.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	var doc struct {
		Trucks         []TruckSpec            `json:"trucks"`
		Farms          []FarmSpec             `json:"farms"`
		Slaughterhouse *domain.Slaughterhouse `json:"slaughterhouse"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}

	sc := &Scenario{
		Trucks:         doc.Trucks,
		Farms:          doc.Farms,
		Slaughterhouse: domain.DefaultSlaughterhouse,
	}
	if doc.Slaughterhouse != nil {
		sc.Slaughterhouse = *doc.Slaughterhouse
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return sc, nil
}

// Validate rejects scenarios that would make the engine unable to ever
// produce a trip. This is a startup-time configuration check, distinct
// from the empty-prerequisites case (no trucks, no inventory) a
// running engine can hit on any given day as a normal condition.
func (s *Scenario) Validate() error {
	for i, t := range s.Trucks {
		if t.Type != domain.TruckSmall && t.Type != domain.TruckLarge {
			return fmt.Errorf("truck[%d] %q: invalid type %q", i, t.ID, t.Type)
		}
		if t.CapacityTons <= 0 {
			return fmt.Errorf("truck[%d] %q: non-positive capacity", i, t.ID)
		}
	}
	for i, f := range s.Farms {
		if f.AvgWeight <= 0 {
			return fmt.Errorf("farm[%d] %q: non-positive avg_weight", i, f.ID)
		}
		if f.Inventory < 0 {
			return fmt.Errorf("farm[%d] %q: negative inventory", i, f.ID)
		}
	}
	if s.Slaughterhouse.DailyCapacity <= 0 {
		return fmt.Errorf("slaughterhouse: non-positive daily_capacity")
	}
	return nil
}
