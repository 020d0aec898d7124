package ports

import (
	"context"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

// Driving route between two coordinate pairs.
type RouteResult struct {
	DistanceMiles float64
	DurationHours float64

	// Geometry is the decoded route shape, ordered origin to destination.
	Geometry []domain.Coordinates

	// Polyline is the encoded form of Geometry as returned by the provider.
	Polyline string
}

// Contract for computing a driving route between two points.
type RouteProvider interface {
	// Return distance, estimated duration, and geometry for the fastest
	// driving route from origin to destination.
	GetRoute(ctx context.Context, origin, destination domain.Coordinates) (RouteResult, error)
}
