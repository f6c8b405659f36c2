// Package domain holds the core data model shared by every engine
// component: farms, trucks, the slaughterhouse, trips, and the
// day-by-day and horizon-level summaries the planner produces.
package domain

// Truck classes, each with its own per-km cost.
const (
	TruckSmall = "small"
	TruckLarge = "large"
)

// Planning horizon and work-week shape.
const (
	SimulationDays  = 14
	SevenDayLockout = 7
)

// WorkDays is the set of weekdays (0 = Monday) the planner runs on.
var WorkDays = map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}

// Daily planner tuning constants.
const (
	MaxDailyHours      = 8.0
	MaxStops           = 3
	AvgSpeedKmh        = 50.0
	ServiceTimePerStop = 0.5
	UnloadTime         = 0.5

	PanicThreshold = 118.0
	OptimalMin     = 108.0

	DistanceProxyPerKm    = 1.20
	MaxLoadFillBeforeFull = 0.90

	DetourLegKmThreshold   = 50.0
	DetourExtraKmThreshold = 25.0
	BacktrackHoursSlack    = 0.5
)

// Economic model constants.
const (
	PricePerKg        = 1.56
	CostPerKmSmall    = 1.15
	CostPerKmLarge    = 1.25
	FixedCostWeekly   = 2000.0
	DefaultWeightStd  = 5.0
	DailyGrowthMean   = 0.8
	DailyGrowthStd    = 0.1
	HTTPGrowthRateDef = 0.9

	PenaltyIdealMin   = 105.0
	PenaltyIdealMax   = 115.0
	PenaltyRange1Min  = 100.0
	PenaltyRange1Max  = 120.0
	PenaltyFactorMild = 0.15
	PenaltyFactorHigh = 0.20
)

// Distance Oracle constants.
const (
	EarthRadiusKm      = 6371.0
	StraightnessFactor = 1.3
	DistanceAPITimeout = 1 // seconds
)

// DefaultSlaughterhouse is the compile-time hub location and capacity
// used unless a scenario overrides it.
var DefaultSlaughterhouse = Slaughterhouse{
	ID:            "hub",
	Lat:           41.9308,
	Lon:           2.2545,
	DailyCapacity: 2000,
}

// LastVisitSentinel marks a farm that has never been visited: far
// enough in the past that the seven-day lockout never blocks it.
const LastVisitSentinel = -1000
