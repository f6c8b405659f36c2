package tournament

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/planner"
	"github.com/farmhaul/dispatch/internal/scenario"
	"github.com/farmhaul/dispatch/internal/simulation"
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

func testScenarioDoc() *scenario.Scenario {
	return &scenario.Scenario{
		Trucks: []scenario.TruckSpec{
			{ID: "t1", CapacityTons: 10, Type: domain.TruckSmall},
		},
		Farms: []scenario.FarmSpec{
			{ID: "f1", Lat: 41.65, Lon: 2.01, Inventory: 400, AvgWeight: 110},
			{ID: "f2", Lat: 41.72, Lon: 1.95, Inventory: 400, AvgWeight: 112},
			{ID: "f3", Lat: 41.40, Lon: 2.17, Inventory: 400, AvgWeight: 108},
		},
		Slaughterhouse: domain.DefaultSlaughterhouse,
	}
}

func TestCandidatesHasTenFixedCompositions(t *testing.T) {
	assert.Len(t, Candidates, 10)
}

func TestRunPicksAResultAmongCandidates(t *testing.T) {
	p := planner.New(stubDistance{}, nil)
	d := simulation.New(p)
	tour := New(d)

	result := tour.Run(context.Background(), testScenarioDoc())
	require.NotNil(t, result.Outcome)
	assert.Contains(t, Candidates, result.Composition)
}

func TestSeedForIsUniquePerComposition(t *testing.T) {
	seen := make(map[int]bool)
	for _, c := range Candidates {
		s := seedFor(c)
		assert.False(t, seen[s], "duplicate seed for composition %+v", c)
		seen[s] = true
	}
}
