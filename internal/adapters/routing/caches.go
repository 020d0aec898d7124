package routing

import (
	"context"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
)

// GeocodeCache is the persistence contract the geocoder needs: lookups keyed
// by normalized address. A nil cache disables caching.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, address string, c domain.Coordinates) error
}

// RouteCache stores route results keyed by coordinate-pair strings. Cached
// entries carry the encoded polyline only; the provider decodes geometry
// after a hit.
type RouteCache interface {
	Get(ctx context.Context, origin, destination string) (ports.RouteResult, bool, error)
	Put(ctx context.Context, origin, destination string, r ports.RouteResult) error
}
