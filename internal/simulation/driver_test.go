package simulation

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/planner"
	"github.com/farmhaul/dispatch/internal/scenario"
	"github.com/farmhaul/dispatch/internal/state"
)

type stubDistance struct{}

func (stubDistance) Distance(_ context.Context, p1, p2 domain.Point, _ bool) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLon := (p2.Lon - p1.Lon) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return domain.EarthRadiusKm * c * domain.StraightnessFactor
}

func testEngine() *state.Engine {
	sc := &scenario.Scenario{
		Trucks: []scenario.TruckSpec{
			{ID: "t1", CapacityTons: 10, Type: domain.TruckSmall},
		},
		Farms: []scenario.FarmSpec{
			{ID: "f1", Lat: 41.65, Lon: 2.01, Inventory: 300, AvgWeight: 110},
			{ID: "f2", Lat: 41.72, Lon: 1.95, Inventory: 300, AvgWeight: 112},
		},
		Slaughterhouse: domain.DefaultSlaughterhouse,
	}
	return state.New(sc, nil)
}

func TestRunAppliesFixedCostUnconditionally(t *testing.T) {
	eng := testEngine()
	p := planner.New(stubDistance{}, nil)
	d := New(p)

	result := d.Run(context.Background(), eng, Options{Days: 1, RNG: rand.New(rand.NewSource(1))})

	expectedFixed := 2 * float64(len(eng.Trucks)) * domain.FixedCostWeekly
	assert.Equal(t, sumTripCost(result)+expectedFixed, result.TotalTransportCost)
}

func sumTripCost(r *domain.SimulationResult) float64 {
	var total float64
	for _, dl := range r.DailyLogs {
		total += dl.DailyCost
	}
	return total
}

func TestRunDefaultsToFullHorizon(t *testing.T) {
	eng := testEngine()
	p := planner.New(stubDistance{}, nil)
	d := New(p)

	result := d.Run(context.Background(), eng, Options{RNG: rand.New(rand.NewSource(1))})
	require.NotNil(t, result)
	// at most SimulationDays entries (fewer because weekend days produce
	// no DailyLog)
	assert.LessOrEqual(t, len(result.DailyLogs), domain.SimulationDays)
}

func TestRunProducesFinalFarmStatusForEveryFarm(t *testing.T) {
	eng := testEngine()
	p := planner.New(stubDistance{}, nil)
	d := New(p)

	result := d.Run(context.Background(), eng, Options{Days: 3, RNG: rand.New(rand.NewSource(1))})
	assert.Len(t, result.FinalFarmStatus, 2)
}
