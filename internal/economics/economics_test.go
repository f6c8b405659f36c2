package economics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farmhaul/dispatch/internal/domain"
)

func TestPenaltyRatio(t *testing.T) {
	cases := []struct {
		weight float64
		want   float64
	}{
		{105, 0.0},
		{110, 0.0},
		{115, 0.0},
		{100, domain.PenaltyFactorMild},
		{104.9, domain.PenaltyFactorMild},
		{115.1, domain.PenaltyFactorMild},
		{120, domain.PenaltyFactorMild},
		{99.9, domain.PenaltyFactorHigh},
		{120.1, domain.PenaltyFactorHigh},
		{50, domain.PenaltyFactorHigh},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PenaltyRatio(c.weight), "weight=%v", c.weight)
	}
}

func TestBatchRevenueDeterministicUnderSeed(t *testing.T) {
	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))

	rev1, pen1 := BatchRevenue(rng1, 50, 110, domain.DefaultWeightStd)
	rev2, pen2 := BatchRevenue(rng2, 50, 110, domain.DefaultWeightStd)

	assert.Equal(t, rev1, rev2)
	assert.Equal(t, pen1, pen2)
	assert.Greater(t, rev1, 0.0)
}

func TestBatchRevenueZeroAnimals(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rev, pen := BatchRevenue(rng, 0, 110, domain.DefaultWeightStd)
	assert.Zero(t, rev)
	assert.Zero(t, pen)
}

func TestTripCostZeroLoad(t *testing.T) {
	assert.Zero(t, TripCost(100, domain.CostPerKmSmall, 0, 10_000))
}

func TestTripCostProportionalToLoadFactor(t *testing.T) {
	full := TripCost(100, domain.CostPerKmSmall, 10_000, 10_000)
	half := TripCost(100, domain.CostPerKmSmall, 5_000, 10_000)
	assert.InDelta(t, full/2, half, 1e-9)
}

func TestTripDuration(t *testing.T) {
	got := TripDuration(100, 2)
	want := 100/domain.AvgSpeedKmh + 2*domain.ServiceTimePerStop + domain.UnloadTime
	assert.InDelta(t, want, got, 1e-9)
}

func TestGrowIsDeterministicUnderSeed(t *testing.T) {
	rng1 := rand.New(rand.NewSource(7))
	rng2 := rand.New(rand.NewSource(7))

	w1 := Grow(rng1, 100, domain.DailyGrowthMean, domain.DailyGrowthStd)
	w2 := Grow(rng2, 100, domain.DailyGrowthMean, domain.DailyGrowthStd)

	assert.Equal(t, w1, w2)
	assert.True(t, math.Abs(w1-100-domain.DailyGrowthMean) < 1.0)
}
