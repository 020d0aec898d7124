package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hawi-me/eld-trip-planner-backend/internal/platform/obs"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
)

// SQLRouteCache is a Postgres-backed cache for origin->destination route results.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch one cached route for an origin/destination pair.
func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin, destination string,
) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_miles, duration_hours, polyline
    FROM route_cache
    WHERE origin = $1
        AND destination = $2;
	`

	var out ports.RouteResult
	err = s.DB.QueryRowContext(ctx, q, origin, destination).
		Scan(&out.DistanceMiles, &out.DurationHours, &out.Polyline)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return out, true, nil
}

// Store one route result for an origin/destination pair.
func (s *SQLRouteCache) Put(ctx context.Context, origin, destination string, r ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO route_cache (origin, destination, distance_miles, duration_hours, polyline)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours,
		polyline = EXCLUDED.polyline;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, r.DistanceMiles, r.DurationHours, r.Polyline); err != nil {
		return fmt.Errorf("insert route cache dest=%q: %w", destination, err)
	}

	return nil
}
