package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/scenario"
)

func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Trucks: []scenario.TruckSpec{
			{ID: "t1", CapacityTons: 10, Type: domain.TruckSmall},
		},
		Farms: []scenario.FarmSpec{
			{ID: "f1", Lat: 41.6, Lon: 2.0, Inventory: 100, AvgWeight: 100},
			{ID: "f2", Lat: 41.7, Lon: 2.1, Inventory: 50, AvgWeight: 110},
		},
		Slaughterhouse: domain.DefaultSlaughterhouse,
	}
}

func TestNewBuildsFarmsInScenarioOrder(t *testing.T) {
	eng := New(testScenario(), nil)
	require.Equal(t, []string{"f1", "f2"}, eng.FarmOrder)
	assert.Equal(t, domain.LastVisitSentinel, eng.Farms["f1"].LastVisitDay)
	assert.Equal(t, 0, eng.DayIndex)
}

func TestNewWithCompositionInstallsSmallFirstThenLarge(t *testing.T) {
	eng := New(testScenario(), &FleetComposition{Small: 2, Large: 1})
	require.Len(t, eng.Trucks, 3)
	assert.Equal(t, domain.TruckSmall, eng.Trucks[0].Class)
	assert.Equal(t, domain.TruckSmall, eng.Trucks[1].Class)
	assert.Equal(t, domain.TruckLarge, eng.Trucks[2].Class)
}

func TestResetIsIdempotent(t *testing.T) {
	sc := testScenario()
	eng := New(sc, nil)

	eng.Farms["f1"].Inventory = 3
	eng.Farms["f1"].LastVisitDay = 5
	eng.DayIndex = 7

	eng.Reset(nil, nil)
	snap1 := eng.Snapshot()
	eng.Reset(nil, nil)
	snap2 := eng.Snapshot()

	assert.Equal(t, snap1, snap2)
	assert.Equal(t, 100, eng.Farms["f1"].Inventory)
	assert.Equal(t, domain.LastVisitSentinel, eng.Farms["f1"].LastVisitDay)
	assert.Equal(t, 0, eng.DayIndex)
}
