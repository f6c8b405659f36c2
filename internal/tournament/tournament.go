// Package tournament implements the fleet-sizing meta-loop: replay the
// full horizon under a fixed set of candidate fleet compositions and
// report the one that maximises net profit.
package tournament

import (
	"context"
	"math/rand"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/metrics"
	"github.com/farmhaul/dispatch/internal/scenario"
	"github.com/farmhaul/dispatch/internal/simulation"
	"github.com/farmhaul/dispatch/internal/state"
)

// Candidates is the fixed enumeration of (small, large) fleet
// compositions the tournament evaluates.
var Candidates = []state.FleetComposition{
	{Small: 1, Large: 0},
	{Small: 2, Large: 0},
	{Small: 3, Large: 0},
	{Small: 4, Large: 0},
	{Small: 1, Large: 1},
	{Small: 2, Large: 1},
	{Small: 3, Large: 1},
	{Small: 0, Large: 1},
	{Small: 0, Large: 2},
	{Small: 1, Large: 2},
}

// Result reports one composition's outcome.
type Result struct {
	Composition state.FleetComposition
	NetProfit   float64
	Outcome     *domain.SimulationResult
}

// Tournament replays a scenario under every candidate composition.
type Tournament struct {
	driver *simulation.Driver
}

// New creates a Tournament bound to a simulation.Driver.
func New(driver *simulation.Driver) *Tournament {
	return &Tournament{driver: driver}
}

// Run resets the engine and installs each candidate composition in
// turn, running the full horizon in fast mode (use_api = false,
// silent): the inner-loop distance cost dominates, so the tournament
// must bypass the routing service entirely and rely on the fallback
// and cache only. Ties are broken in favour of the first composition
// reached at the maximal net profit.
func (t *Tournament) Run(ctx context.Context, sc *scenario.Scenario) Result {
	metrics.TournamentRunsTotal.Inc()

	var best Result
	haveBest := false

	for _, comp := range Candidates {
		eng := state.New(sc, &comp)
		// Deterministic per-composition seed so the tournament itself
		// is reproducible: each candidate gets its own RNG stream
		// rather than sharing one mutated across runs.
		rng := rand.New(rand.NewSource(int64(seedFor(comp))))

		outcome := t.driver.Run(ctx, eng, simulation.Options{
			UseAPI: false,
			RNG:    rng,
		})

		if !haveBest || outcome.TotalNetProfit > best.NetProfit {
			best = Result{Composition: comp, NetProfit: outcome.TotalNetProfit, Outcome: outcome}
			haveBest = true
		}
	}

	return best
}

func seedFor(c state.FleetComposition) int {
	return 1000 + c.Small*10 + c.Large
}
