// Package handlers adapts the core engine to Fiber's HTTP surface: one
// request maps to one call into the planner, simulation driver, or
// tournament. Handlers never mutate storage mid-plan; the core's
// outcome is persisted only after a plan has fully committed.
package handlers

import (
	"sync"

	"github.com/farmhaul/dispatch/internal/planner"
	"github.com/farmhaul/dispatch/internal/scenario"
	"github.com/farmhaul/dispatch/internal/state"
	"github.com/farmhaul/dispatch/internal/store"
	"github.com/farmhaul/dispatch/internal/tournament"
	"github.com/farmhaul/dispatch/pkg/logger"
)

// Handler holds the dependencies every route needs, expressed as
// concrete collaborators rather than a grab-bag of interfaces: the
// core is in-process and single-threaded, so the mockable boundary is
// the planner's DistanceSource, not the Handler's own fields.
type Handler struct {
	mu sync.Mutex // serialises "next day" / reset against concurrent requests

	engine     *state.Engine
	planner    *planner.DailyPlanner
	tournament *tournament.Tournament
	scenario   *scenario.Scenario

	history *store.HistoryRepository
	farms   *store.FarmRepository
	trucks  *store.TruckRepository
	hubs    *store.SlaughterhouseRepository

	log *logger.Logger
}

// Dependencies bundles a Handler's collaborators; storage repositories
// are optional (nil-safe) so the engine can run without Postgres
// configured.
type Dependencies struct {
	Engine     *state.Engine
	Planner    *planner.DailyPlanner
	Tournament *tournament.Tournament
	Scenario   *scenario.Scenario

	History *store.HistoryRepository
	Farms   *store.FarmRepository
	Trucks  *store.TruckRepository
	Hubs    *store.SlaughterhouseRepository

	Log *logger.Logger
}

// New creates a Handler.
func New(d Dependencies) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewNoop()
	}
	return &Handler{
		engine:     d.Engine,
		planner:    d.Planner,
		tournament: d.Tournament,
		scenario:   d.Scenario,
		history:    d.History,
		farms:      d.Farms,
		trucks:     d.Trucks,
		hubs:       d.Hubs,
		log:        log,
	}
}
