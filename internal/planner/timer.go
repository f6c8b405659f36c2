package planner

import "time"

// newTimer returns a closure that, when called, yields the elapsed
// seconds since newTimer was invoked — a small helper so PlanDay can
// feed metrics.PlanningDuration with a single defer line.
func newTimer() func() float64 {
	start := time.Now()
	return func() float64 {
		return time.Since(start).Seconds()
	}
}
