// Package simulation iterates the daily planner over a fixed horizon,
// accumulating results and applying weekly fixed fleet costs at the
// end.
package simulation

import (
	"context"
	"math/rand"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/planner"
	"github.com/farmhaul/dispatch/internal/state"
)

// Driver runs the full simulation horizon against a state.Engine.
type Driver struct {
	planner *planner.DailyPlanner
}

// New creates a Driver bound to a DailyPlanner.
func New(p *planner.DailyPlanner) *Driver {
	return &Driver{planner: p}
}

// Options configures a horizon run.
type Options struct {
	Days     int // defaults to domain.SimulationDays when zero
	UseAPI   bool
	GrowthMu float64
	RNG      *rand.Rand
}

// Run iterates day = 0..Days-1, calling the planner once per day and
// appending every non-nil DailyLog, then subtracts the horizon's
// weekly fixed truck cost from total profit: applied unconditionally
// as 2 x |trucks| x FixedCostWeekly, not pro-rated to horizon length.
func (d *Driver) Run(ctx context.Context, eng *state.Engine, opts Options) *domain.SimulationResult {
	days := opts.Days
	if days == 0 {
		days = domain.SimulationDays
	}
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	result := &domain.SimulationResult{}

	for day := 0; day < days; day++ {
		dl := d.planner.PlanDay(ctx, eng, day, planner.Options{
			UseAPI:   opts.UseAPI,
			GrowthMu: opts.GrowthMu,
			RNG:      rng,
		})
		if dl == nil {
			continue
		}
		result.DailyLogs = append(result.DailyLogs, *dl)
		result.TotalNetProfit += dl.DailyProfit
		result.TotalTransportCost += dl.DailyCost
		for _, t := range dl.Trips {
			result.TotalPenalty += t.Penalty
		}
	}

	fixedCost := 2 * float64(len(eng.Trucks)) * domain.FixedCostWeekly
	result.TotalNetProfit -= fixedCost
	result.TotalTransportCost += fixedCost

	result.FinalFarmStatus = eng.Snapshot()
	return result
}
