package domain

import "time"

// StopType labels a planned stop event on the trip.
type StopType string

const (
	StopPickup    StopType = "pickup"
	StopDropoff   StopType = "dropoff"
	StopFuel      StopType = "fuel"
	StopRestBreak StopType = "rest_break" // 30-minute break after 8h driving
	StopRestart   StopType = "restart"    // 10-hour rest that restarts the daily period
)

// Stop is a labeled point-in-time event inserted by the scheduler.
// Pickup and dropoff occur exactly once per trip; fuel and rest stops occur
// zero or more times as the HOS guards require.
//
// The JSON field names are part of the API contract; downstream rendering
// depends on them.
type Stop struct {
	Type           StopType  `json:"stop_type"`
	ArrivalTime    time.Time `json:"arrival_time"`
	DepartureTime  time.Time `json:"departure_time"`
	DurationHours  float64   `json:"duration_hours"`
	MilesFromStart float64   `json:"miles_from_start"`
	DayNumber      int       `json:"day_number"`
	Remarks        string    `json:"remarks"`

	// Approximate position along the route, filled in by the API layer for
	// persistence and map display. Not part of the schedule wire format.
	Latitude  float64 `json:"-"`
	Longitude float64 `json:"-"`
}
