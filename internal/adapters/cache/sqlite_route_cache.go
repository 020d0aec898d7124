package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
)

// SQLite backed cache for origin->destination route results. Keys are
// coordinate strings produced by the routing adapter, so one physical pair
// always maps to the same row. Geometry is stored in encoded polyline form;
// the caller decodes it after a hit.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Fetch one cached route. The second return value reports whether the pair
// was present.
func (s *SqliteRouteCache) Get(ctx context.Context, origin, destination string) (ports.RouteResult, bool, error) {
	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT
        distance_miles,
        duration_hours,
        polyline
    FROM route_cache
    WHERE origin = ?
        AND destination = ?;
	`

	var out ports.RouteResult
	err := s.DB.QueryRowContext(ctx, q, origin, destination).
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
func (s *SqliteRouteCache) Put(ctx context.Context, origin, destination string, r ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO route_cache (
        origin,
        destination,
        distance_miles,
        duration_hours,
        polyline
    )
    VALUES (?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, r.DistanceMiles, r.DurationHours, r.Polyline); err != nil {
		return fmt.Errorf("insert route cache dest=%q: %w", destination, err)
	}

	return nil
}
