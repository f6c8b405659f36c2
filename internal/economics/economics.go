// Package economics implements the engine's pure financial functions:
// penalty ratio, batch revenue, trip cost, trip duration, and the daily
// weight-growth draw. None of these touch I/O or mutable state; every
// caller supplies its own *rand.Rand so runs are reproducible under a
// fixed seed.
package economics

import (
	"math/rand"

	"github.com/farmhaul/dispatch/internal/domain"
)

// PenaltyRatio returns the fraction of revenue lost to an off-target
// live weight:
//
//	0.00  105 <= w <= 115
//	0.15  100 <= w < 105  or  115 < w <= 120
//	0.20  otherwise
func PenaltyRatio(w float64) float64 {
	switch {
	case w >= domain.PenaltyIdealMin && w <= domain.PenaltyIdealMax:
		return 0.0
	case (w >= domain.PenaltyRange1Min && w < domain.PenaltyIdealMin) ||
		(w > domain.PenaltyIdealMax && w <= domain.PenaltyRange1Max):
		return domain.PenaltyFactorMild
	default:
		return domain.PenaltyFactorHigh
	}
}

// BatchRevenue samples n weights from a normal distribution (mean, std)
// and sums each animal's revenue and penalty contribution at the base
// price per kg.
func BatchRevenue(rng *rand.Rand, n int, mean, std float64) (revenue, penalty float64) {
	for i := 0; i < n; i++ {
		w := mean + rng.NormFloat64()*std
		ratio := PenaltyRatio(w)
		revenue += w * domain.PricePerKg * (1 - ratio)
		penalty += w * domain.PricePerKg * ratio
	}
	return revenue, penalty
}

// TripCost is distance x cost-per-km x load-factor. Zero load produces
// zero cost; capacityKg is never zero by construction (every truck has
// positive capacity).
func TripCost(distanceKm, costPerKm, loadKg, capacityKg float64) float64 {
	if loadKg <= 0 || capacityKg <= 0 {
		return 0
	}
	return distanceKm * costPerKm * (loadKg / capacityKg)
}

// TripDuration estimates hours on the road plus per-stop service time
// plus one unloading stop at the hub.
func TripDuration(distanceKm float64, numStops int) float64 {
	return distanceKm/domain.AvgSpeedKmh +
		float64(numStops)*domain.ServiceTimePerStop +
		domain.UnloadTime
}

// Grow samples the daily live-weight gain for one farm, applied once a
// day to every farm regardless of whether it is a working day: animals
// keep eating and growing on weekends even though no trucks run.
func Grow(rng *rand.Rand, weight, mu, sigma float64) float64 {
	return weight + mu + rng.NormFloat64()*sigma
}
