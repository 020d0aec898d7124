package ports

import (
	"context"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

// Port: a boundary for resolving a free-form address to coordinates.
type Geocoder interface {
	// Resolve a single address to geographic coordinates.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
