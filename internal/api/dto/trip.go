package dto

import (
	"time"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

type PlanTripRequest struct {
	CurrentLocation       string     `json:"current_location"`
	PickupLocation        string     `json:"pickup_location"`
	DropoffLocation       string     `json:"dropoff_location"`
	CurrentCycleUsedHours float64    `json:"current_cycle_used_hours"`
	DepartureTime         *time.Time `json:"departure_time"`
}

// TripResponse carries trip metadata plus the full schedule. The schedule's
// field names are a fixed rendering contract, so the domain type is exposed
// directly rather than re-mapped.
type TripResponse struct {
	ID              string               `json:"id"`
	CurrentLocation string               `json:"current_location"`
	PickupLocation  string               `json:"pickup_location"`
	DropoffLocation string               `json:"dropoff_location"`
	CycleUsedHours  float64              `json:"current_cycle_used_hours"`
	RoutePolyline   string               `json:"route_polyline"`
	CreatedAt       time.Time            `json:"created_at"`
	Schedule        *domain.TripSchedule `json:"schedule,omitempty"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

// FromTrip maps the domain aggregate to its response shape.
func FromTrip(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:              t.ID.String(),
		CurrentLocation: t.CurrentLocation,
		PickupLocation:  t.PickupLocation,
		DropoffLocation: t.DropoffLocation,
		CycleUsedHours:  t.CycleUsedHours,
		RoutePolyline:   t.RoutePolyline,
		CreatedAt:       t.CreatedAt,
		Schedule:        t.Schedule,
	}
}
