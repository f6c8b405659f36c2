// Package planner implements the daily route-construction heuristic:
// urgency scoring, greedy seed selection, nearest-better-neighbour
// multi-stop expansion, time-feasibility backtracking, and multi-trip
// cycling. This is the largest single component of the engine;
// everything else either feeds it (state, scenario) or is called by
// it (distance, economics).
package planner

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/economics"
	"github.com/farmhaul/dispatch/internal/metrics"
	"github.com/farmhaul/dispatch/internal/state"
	"github.com/farmhaul/dispatch/pkg/logger"
)

// DistanceSource is the subset of distance.Oracle the planner needs,
// named here so tests can supply a hand-written fallback-only stub
// without touching the network.
type DistanceSource interface {
	Distance(ctx context.Context, p1, p2 domain.Point, useAPI bool) float64
}

// Options configures a single PlanDay invocation.
type Options struct {
	// UseAPI selects whether the time-feasibility backtracking step
	// may call through to the real routing service. Urgency scoring
	// and multi-stop scanning always use the fast fallback-only path
	// regardless of this flag.
	UseAPI bool
	// GrowthMu overrides the growth distribution's mean; zero selects
	// the economic model's default.
	GrowthMu float64
	// RNG drives both the growth tick and batch revenue sampling. Tests
	// and the fleet tournament pass a seeded *rand.Rand for
	// reproducibility.
	RNG *rand.Rand
}

// DailyPlanner constructs one day's trips against a state.Engine.
type DailyPlanner struct {
	oracle DistanceSource
	log    *logger.Logger
}

// New creates a DailyPlanner. log may be nil for a no-op logger.
func New(oracle DistanceSource, log *logger.Logger) *DailyPlanner {
	if log == nil {
		log = logger.NewNoop()
	}
	return &DailyPlanner{oracle: oracle, log: log}
}

// PlanDay runs the full algorithm for one day and returns its DailyLog,
// or nil on a non-working day. It never errors: given a valid engine
// and day index it always produces a result, possibly empty of trips.
func (p *DailyPlanner) PlanDay(ctx context.Context, eng *state.Engine, dayIndex int, opts Options) *domain.DailyLog {
	timer := newTimer()
	defer func() { metrics.PlanningDuration.Observe(timer()) }()

	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	mu := opts.GrowthMu
	if mu == 0 {
		mu = domain.DailyGrowthMean
	}

	// 1. Growth tick — applies every day, working or not.
	for _, id := range eng.FarmOrder {
		f := eng.Farms[id]
		f.AvgWeight = economics.Grow(rng, f.AvgWeight, mu, domain.DailyGrowthStd)
	}

	// 2. Work-day gate.
	weekday := ((dayIndex % 7) + 7) % 7
	if !domain.WorkDays[weekday] {
		return nil
	}

	hub := eng.Slaughterhouse.Point()

	// 3. Candidate set.
	var candidates []*domain.Farm
	for _, id := range eng.FarmOrder {
		f := eng.Farms[id]
		if f.Inventory > 0 && dayIndex-f.LastVisitDay >= domain.SevenDayLockout {
			candidates = append(candidates, f)
		}
	}

	// 4. Urgency scoring.
	for _, f := range candidates {
		f.SetUrgencyScore(p.urgencyScore(ctx, f, hub))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].UrgencyScore() > candidates[j].UrgencyScore()
	})

	// 5. Truck pool.
	for _, t := range eng.Trucks {
		t.ResetDaily()
	}
	queue := make([]*domain.Truck, len(eng.Trucks))
	copy(queue, eng.Trucks)

	log := &domain.DailyLog{DayIndex: dayIndex}
	capacity := eng.Slaughterhouse.DailyCapacity
	slaughteredToday := 0

	// 6. Multi-trip loop.
	for len(queue) > 0 && len(candidates) > 0 && slaughteredToday < capacity &&
		candidates[0].UrgencyScore() >= 0 {

		truck := queue[0]
		queue = queue[1:]
		if truck.DailyHours >= domain.MaxDailyHours {
			continue // dropped for the day, not requeued
		}

		reserved := make(map[string]int)

		// Seed.
		seed := candidates[0]
		candidates = candidates[1:]
		truck.Route = append(truck.Route, seed)
		remaining := capacity - slaughteredToday
		seedPigs := clampPigs(int(truck.CapacityKg/seed.AvgWeight), seed.Inventory, remaining)
		reserved[seed.ID] = seedPigs
		currentLoadKg := float64(seedPigs) * seed.AvgWeight

		// Multi-stop expansion.
		for len(truck.Route) < domain.MaxStops &&
			currentLoadKg < truck.CapacityKg*domain.MaxLoadFillBeforeFull {

			remainingSlaughter := capacity - slaughteredToday - reservedSum(reserved)
			if remainingSlaughter <= 0 {
				break
			}

			bestIdx, bestScore := -1, math.Inf(-1)
			currentRouteDist := p.roundTripDistance(ctx, truck.Route, hub, false)
			last := truck.Route[len(truck.Route)-1]
			returnFromCurrent := p.oracle.Distance(ctx, last.Point(), hub, false)

			for i, cand := range candidates {
				if cand.AvgWeight < domain.OptimalMin {
					continue
				}
				legDist := p.oracle.Distance(ctx, last.Point(), cand.Point(), false)
				returnFromNew := p.oracle.Distance(ctx, cand.Point(), hub, false)
				detour := legDist + returnFromNew - returnFromCurrent

				if legDist > domain.DetourLegKmThreshold && detour > domain.DetourExtraKmThreshold {
					continue
				}

				newTotalDist := currentRouteDist - returnFromCurrent + legDist + returnFromNew
				projected := economics.TripDuration(newTotalDist, len(truck.Route)+1)
				if truck.DailyHours+projected > domain.MaxDailyHours+domain.BacktrackHoursSlack {
					continue
				}

				qual := 100 - math.Abs(cand.AvgWeight-110)
				if cand.AvgWeight > domain.PanicThreshold {
					qual += 500
				}
				score := qual - detour*2
				if score > bestScore {
					bestScore = score
					bestIdx = i
				}
			}

			if bestIdx == -1 {
				break
			}

			picked := candidates[bestIdx]
			candidates = append(candidates[:bestIdx], candidates[bestIdx+1:]...)
			truck.Route = append(truck.Route, picked)

			remainingSlaughter = capacity - slaughteredToday - reservedSum(reserved)
			pigsCap := int((truck.CapacityKg - currentLoadKg) / picked.AvgWeight)
			pigs := clampPigs(pigsCap, picked.Inventory, remainingSlaughter)
			reserved[picked.ID] = pigs
			currentLoadKg += float64(pigs) * picked.AvgWeight
		}

		// Time-feasibility backtracking.
		var distKm, durH float64
		for len(truck.Route) > 0 {
			distKm = p.roundTripDistance(ctx, truck.Route, hub, opts.UseAPI)
			durH = economics.TripDuration(distKm, len(truck.Route))
			if truck.DailyHours+durH <= domain.MaxDailyHours {
				break
			}
			last := truck.Route[len(truck.Route)-1]
			truck.Route = truck.Route[:len(truck.Route)-1]
			delete(reserved, last.ID)
			candidates = append([]*domain.Farm{last}, candidates...)
		}

		// Commit or discard.
		if len(truck.Route) == 0 {
			continue // no work possible this trip; truck dropped for the day
		}

		trip, profit, revenue, cost, pigsThisTrip := p.commit(rng, truck, hub, distKm, durH, capacity, &slaughteredToday, dayIndex)

		log.Trips = append(log.Trips, trip)
		log.TotalPigs += pigsThisTrip
		log.DailyProfit += profit
		log.DailyRevenue += revenue
		log.DailyCost += cost

		truck.Route = nil
		queue = append(queue, truck)
	}

	metrics.DailyProfitGauge.Set(log.DailyProfit)
	return log
}

// commit recomputes the actual per-stop loads against remaining truck
// and slaughterhouse capacity, decrements farm inventory, records the
// Trip, and returns its headline numbers.
func (p *DailyPlanner) commit(
	rng *rand.Rand, truck *domain.Truck, hub domain.Point,
	distKm, durH float64, capacity int, slaughteredToday *int, dayIndex int,
) (trip domain.Trip, profit, revenue, cost float64, pigsThisTrip int) {

	remainingTruckCapKg := truck.CapacityKg
	remainingSlaughter := capacity - *slaughteredToday

	path := []domain.Point{hub}
	farmIDs := make([]string, 0, len(truck.Route))
	var sumWeight float64

	for _, f := range truck.Route {
		pigs := clampPigs(int(remainingTruckCapKg/f.AvgWeight), f.Inventory, remainingSlaughter)
		if pigs > 0 && remainingTruckCapKg-float64(pigs)*f.AvgWeight < 0 {
			// recompute defensively avoids over-delivering against the
			// truck's physical capacity.
			pigs = int(remainingTruckCapKg / f.AvgWeight)
		}

		f.Inventory -= pigs
		f.LastVisitDay = dayIndex

		remainingTruckCapKg -= float64(pigs) * f.AvgWeight
		remainingSlaughter -= pigs
		pigsThisTrip += pigs
		sumWeight += f.AvgWeight

		path = append(path, f.Point())
		farmIDs = append(farmIDs, f.ID)
	}
	path = append(path, hub)

	if *slaughteredToday+pigsThisTrip > capacity {
		panic("planner: commit would over-deliver against slaughterhouse capacity")
	}

	truck.DailyHours += durH
	truck.CurrentLoadKg = truck.CapacityKg - remainingTruckCapKg
	truck.PigsLoaded = pigsThisTrip
	if truck.CurrentLoadKg > truck.CapacityKg {
		panic("planner: commit would exceed truck capacity")
	}

	loadFactor := truck.CurrentLoadKg / truck.CapacityKg
	cost = economics.TripCost(distKm, truck.EffectiveCostPerKm(), truck.CurrentLoadKg, truck.CapacityKg)

	avgWeightRoute := sumWeight / float64(len(truck.Route))
	revenue, penalty := economics.BatchRevenue(rng, pigsThisTrip, avgWeightRoute, domain.DefaultWeightStd)
	profit = revenue - cost

	*slaughteredToday += pigsThisTrip

	trip = domain.Trip{
		TruckID:       truck.ID,
		TruckType:     truck.Class,
		FarmIDs:       farmIDs,
		Path:          path,
		DistanceKm:    distKm,
		DurationH:     durH,
		PigsDelivered: pigsThisTrip,
		LoadFillPct:   loadFactor * 100,
		TransportCost: cost,
		Revenue:       revenue,
		Penalty:       penalty,
		NetProfit:     profit,
	}
	return trip, profit, revenue, cost, pigsThisTrip
}

func (p *DailyPlanner) urgencyScore(ctx context.Context, f *domain.Farm, hub domain.Point) float64 {
	w := f.AvgWeight
	switch {
	case w >= domain.PanicThreshold:
		return 1000 + w
	case w < domain.OptimalMin:
		return -1000 + w
	default:
		distToHub := p.oracle.Distance(ctx, f.Point(), hub, false)
		return w*domain.PricePerKg - 2*distToHub*domain.DistanceProxyPerKm
	}
}

// roundTripDistance sums hub -> route[0] -> ... -> route[n-1] -> hub.
func (p *DailyPlanner) roundTripDistance(ctx context.Context, route []*domain.Farm, hub domain.Point, useAPI bool) float64 {
	if len(route) == 0 {
		return 0
	}
	total := 0.0
	prev := hub
	for _, f := range route {
		total += p.oracle.Distance(ctx, prev, f.Point(), useAPI)
		prev = f.Point()
	}
	total += p.oracle.Distance(ctx, prev, hub, useAPI)
	return total
}

func reservedSum(reserved map[string]int) int {
	total := 0
	for _, v := range reserved {
		total += v
	}
	return total
}

// clampPigs returns the minimum of the three bounds, never negative.
func clampPigs(byCapacity, byInventory, bySlaughterRemaining int) int {
	v := byCapacity
	if byInventory < v {
		v = byInventory
	}
	if bySlaughterRemaining < v {
		v = bySlaughterRemaining
	}
	if v < 0 {
		v = 0
	}
	return v
}
