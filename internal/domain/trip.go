// Package domain contains the core data types for the ELD trip planner:
// duty statuses and segments, planned stops, daily log sheets, and the
// request/schedule aggregates exchanged with the scheduler. It has no
// dependencies on persistence or transport.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RouteLeg is the distance and duration of one contiguous travel segment,
// as reported by the routing collaborator. Distance and time are treated as
// linearly related within a leg (constant average pace).
type RouteLeg struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
}

// TripPlanRequest is the immutable input to the duty scheduler.
// CycleUsedHours is the driver's rolling 8-day on-duty total as a single
// scalar; the planner deliberately does not carry a per-day ledger.
type TripPlanRequest struct {
	DepartureTime      time.Time
	CycleUsedHours     float64
	PrePickupLeg       RouteLeg
	PickupToDropoffLeg RouteLeg
}

// StatusHours is the per-status hour summary on a daily log sheet.
type StatusHours struct {
	OffDuty          float64 `json:"off_duty"`
	SleeperBerth     float64 `json:"sleeper_berth"`
	Driving          float64 `json:"driving"`
	OnDutyNotDriving float64 `json:"on_duty_not_driving"`
}

// Add accumulates hours against the given status.
func (h *StatusHours) Add(s DutyStatus, hours float64) {
	switch s {
	case StatusOffDuty:
		h.OffDuty += hours
	case StatusSleeperBerth:
		h.SleeperBerth += hours
	case StatusDriving:
		h.Driving += hours
	case StatusOnDutyNotDriving:
		h.OnDutyNotDriving += hours
	}
}

// Total returns the sum across all four statuses.
func (h StatusHours) Total() float64 {
	return h.OffDuty + h.SleeperBerth + h.Driving + h.OnDutyNotDriving
}

// GridSegment is one horizontal span on the fixed-resolution log grid.
// Row is the duty-status ordinal; X coordinates are column indices.
type GridSegment struct {
	Row    int `json:"row"`
	StartX int `json:"start_x"`
	EndX   int `json:"end_x"`
}

// GridTransition is the vertical connector drawn where two adjacent
// segments differ in status.
type GridTransition struct {
	X       int `json:"x"`
	FromRow int `json:"from_row"`
	ToRow   int `json:"to_row"`
}

// GridData is a pure derived view of one day's entries over the horizontal
// time axis. It has no independent lifecycle; it is recomputed from the
// entries it mirrors.
type GridData struct {
	Segments    []GridSegment    `json:"segments"`
	Transitions []GridTransition `json:"transitions"`
}

// DailyLog is one calendar day of the trip: the segments clipped to that
// day, the per-status hour summary, and the renderable grid. For a full
// calendar day the summary hours sum to exactly 24.
type DailyLog struct {
	Date      string        `json:"date"` // YYYY-MM-DD
	DayNumber int           `json:"day_number"`
	Entries   []DutySegment `json:"entries"`
	Summary   StatusHours   `json:"summary"`
	Grid      GridData      `json:"grid_data"`
}

// TripSchedule is the complete planned schedule for one trip: every stop,
// every daily log sheet, and the summary totals.
//
// Field names and nesting are fixed for API compatibility; downstream
// rendering logic depends on them exactly.
type TripSchedule struct {
	TotalDistanceMiles     float64    `json:"total_distance_miles"`
	TotalTripDurationHours float64    `json:"total_trip_duration_hours"`
	EstimatedDays          int        `json:"estimated_days"`
	PlannedStops           []Stop     `json:"planned_stops"`
	DailyLogs              []DailyLog `json:"daily_logs"`
	TotalDrivingHours      float64    `json:"total_driving_hours"`
	TotalOnDutyHours       float64    `json:"total_on_duty_hours"`
	DepartureTime          time.Time  `json:"departure_time"`
	EstimatedArrivalTime   time.Time  `json:"estimated_arrival_time"`
}

// Trip is a persisted planning run: the request inputs, the geocoded
// locations, the route polyline, and the resulting schedule.
type Trip struct {
	ID              uuid.UUID
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CurrentCoords   Coordinates
	PickupCoords    Coordinates
	DropoffCoords   Coordinates
	CycleUsedHours  float64
	RoutePolyline   string
	Schedule        *TripSchedule // nil in list results
	CreatedAt       time.Time
}
