package hos

import "time"

// Limits holds every HOS rule threshold the scheduler enforces, plus the
// practical stop parameters. Values are adjustable for testing; the defaults
// implement the FMCSA property-carrying rules.
type Limits struct {
	// 70-hour/8-day cycle ceiling.
	CycleHours float64

	// Per on-duty-period ceilings.
	MaxDrivingHours float64 // 11-hour driving limit
	MaxWindowHours  float64 // 14-hour on-duty window

	// 30-minute break after 8 hours cumulative driving.
	BreakAfterDrivingHours float64
	BreakDuration          time.Duration

	// Off-duty rest that restarts the daily period.
	RestDuration time.Duration

	// Practical stops.
	FuelIntervalMiles float64
	FuelStopDuration  time.Duration
	PickupDuration    time.Duration
	DropoffDuration   time.Duration

	// MaxHorizon bounds total simulated elapsed time; exceeding it fails
	// the run rather than looping.
	MaxHorizon time.Duration
}

// DefaultLimits returns the FMCSA thresholds for property-carrying drivers.
func DefaultLimits() Limits {
	return Limits{
		CycleHours:             70,
		MaxDrivingHours:        11,
		MaxWindowHours:         14,
		BreakAfterDrivingHours: 8,
		BreakDuration:          30 * time.Minute,
		RestDuration:           10 * time.Hour,
		FuelIntervalMiles:      1000,
		FuelStopDuration:       30 * time.Minute,
		PickupDuration:         time.Hour,
		DropoffDuration:        time.Hour,
		MaxHorizon:             30 * 24 * time.Hour,
	}
}
