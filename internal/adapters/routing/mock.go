package routing

import (
	"context"
	"fmt"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
)

type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(addresses map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(addresses))
	for a, c := range addresses {
		m[normalize(a)] = c
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := g.m[normalize(address)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("missing address %q: %w", address, domain.ErrRouteUnavailable)
	}

	return c, nil
}

type MockRoute struct {
	From, To domain.Coordinates
	Miles    float64
	Hours    float64
	Geometry []domain.Coordinates
}

type MockRouteProvider struct {
	m map[string]ports.RouteResult
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(routes))
	for _, r := range routes {
		geometry := r.Geometry
		if len(geometry) == 0 {
			geometry = []domain.Coordinates{r.From, r.To}
		}
		m[coordKey(r.From)+"|"+coordKey(r.To)] = ports.RouteResult{
			DistanceMiles: r.Miles,
			DurationHours: r.Hours,
			Geometry:      geometry,
			Polyline:      EncodeGeometry(geometry),
		}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinates) (ports.RouteResult, error) {
	r, ok := p.m[coordKey(origin)+"|"+coordKey(destination)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing route %v -> %v: %w", origin, destination, domain.ErrRouteUnavailable)
	}

	return r, nil
}
