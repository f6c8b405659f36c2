package planner

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/scenario"
	"github.com/farmhaul/dispatch/internal/state"
)

// stubDistance is a fallback-only DistanceSource so planner tests never
// touch the network: haversine x straightness, same formula the real
// Oracle falls back to.
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

func testEngine(t *testing.T) *state.Engine {
	t.Helper()
	sc := &scenario.Scenario{
		Trucks: []scenario.TruckSpec{
			{ID: "t1", CapacityTons: 10, Type: domain.TruckSmall},
		},
		Farms: []scenario.FarmSpec{
			{ID: "f1", Lat: 41.65, Lon: 2.01, Inventory: 100, AvgWeight: 110},
			{ID: "f2", Lat: 41.72, Lon: 1.95, Inventory: 80, AvgWeight: 112},
		},
		Slaughterhouse: domain.DefaultSlaughterhouse,
	}
	return state.New(sc, nil)
}

func TestPlanDayReturnsNilOnWeekend(t *testing.T) {
	eng := testEngine(t)
	p := New(stubDistance{}, nil)
	// day_index 5 -> Saturday under the (day_index % 7) convention
	// starting at Monday=0.
	dl := p.PlanDay(context.Background(), eng, 5, Options{RNG: rand.New(rand.NewSource(1))})
	assert.Nil(t, dl)
}

func TestPlanDayGrowsEveryFarmRegardlessOfWorkday(t *testing.T) {
	eng := testEngine(t)
	before := eng.Farms["f1"].AvgWeight
	before2 := eng.Farms["f2"].AvgWeight
	p := New(stubDistance{}, nil)
	p.PlanDay(context.Background(), eng, 5, Options{RNG: rand.New(rand.NewSource(1))})
	assert.NotEqual(t, before, eng.Farms["f1"].AvgWeight)
	assert.NotEqual(t, before2, eng.Farms["f2"].AvgWeight)
}

func TestPlanDayOnWorkdayProducesTripsForEligibleFarms(t *testing.T) {
	eng := testEngine(t)
	p := New(stubDistance{}, nil)
	dl := p.PlanDay(context.Background(), eng, 0, Options{RNG: rand.New(rand.NewSource(1))})
	require.NotNil(t, dl)
	assert.Equal(t, 0, dl.DayIndex)
	assert.NotEmpty(t, dl.Trips)
	assert.Greater(t, dl.TotalPigs, 0)
}

func TestPlanDayNeverOverdeliversSlaughterhouseCapacity(t *testing.T) {
	eng := testEngine(t)
	eng.Slaughterhouse.DailyCapacity = 30
	p := New(stubDistance{}, nil)
	require.NotPanics(t, func() {
		dl := p.PlanDay(context.Background(), eng, 0, Options{RNG: rand.New(rand.NewSource(1))})
		assert.LessOrEqual(t, dl.TotalPigs, 30)
	})
}

func TestPlanDaySevenDayLockoutExcludesRecentlyVisitedFarm(t *testing.T) {
	eng := testEngine(t)
	eng.Farms["f1"].LastVisitDay = 0
	p := New(stubDistance{}, nil)
	dl := p.PlanDay(context.Background(), eng, 3, Options{RNG: rand.New(rand.NewSource(1))})
	require.NotNil(t, dl)
	for _, trip := range dl.Trips {
		for _, id := range trip.FarmIDs {
			assert.NotEqual(t, "f1", id)
		}
	}
}

func TestPlanDayEmptyInventorySkipsFarm(t *testing.T) {
	eng := testEngine(t)
	eng.Farms["f1"].Inventory = 0
	eng.Farms["f2"].Inventory = 0
	p := New(stubDistance{}, nil)
	dl := p.PlanDay(context.Background(), eng, 0, Options{RNG: rand.New(rand.NewSource(1))})
	require.NotNil(t, dl)
	assert.Empty(t, dl.Trips)
	assert.Equal(t, 0, dl.TotalPigs)
}

func TestPlanDayIsDeterministicUnderFixedSeed(t *testing.T) {
	eng1 := testEngine(t)
	eng2 := testEngine(t)
	p := New(stubDistance{}, nil)

	dl1 := p.PlanDay(context.Background(), eng1, 0, Options{RNG: rand.New(rand.NewSource(99))})
	dl2 := p.PlanDay(context.Background(), eng2, 0, Options{RNG: rand.New(rand.NewSource(99))})

	require.NotNil(t, dl1)
	require.NotNil(t, dl2)
	assert.Equal(t, dl1.TotalPigs, dl2.TotalPigs)
	assert.InDelta(t, dl1.DailyProfit, dl2.DailyProfit, 1e-9)
}
