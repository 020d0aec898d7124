package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

// Port: a boundary for persisting and retrieving planned trips.
type TripRepository interface {
	// Persist a planned trip together with its schedule.
	SaveTrip(ctx context.Context, trip *domain.Trip) error

	// Retrieve all stored trips, most recent first.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)

	// Retrieve a single trip by id. Returns domain.ErrNotFound when absent.
	GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
}
