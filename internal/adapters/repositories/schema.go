package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the trip and cache tables. Statements are restricted to
// the portable subset both SQLite and Postgres accept, so the same init runs
// against either backend.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_lon REAL NOT NULL,
		current_lat REAL NOT NULL,
		pickup_lon REAL NOT NULL,
		pickup_lat REAL NOT NULL,
		dropoff_lon REAL NOT NULL,
		dropoff_lat REAL NOT NULL,
		cycle_used_hours REAL NOT NULL,
		route_polyline TEXT NOT NULL,
		schedule_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createTripStopsQuery := `
	CREATE TABLE IF NOT EXISTS trip_stops (
        trip_id TEXT NOT NULL,
        seq INTEGER NOT NULL,
        stop_type TEXT NOT NULL,
        arrival_time TEXT NOT NULL,
        departure_time TEXT NOT NULL,
        duration_hours REAL NOT NULL,
        miles_from_start REAL NOT NULL,
        day_number INTEGER NOT NULL,
        lon REAL NOT NULL,
        lat REAL NOT NULL,
        remarks TEXT NOT NULL,
        PRIMARY KEY (trip_id, seq)
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_miles REAL NOT NULL,
        duration_hours REAL NOT NULL,
        polyline TEXT NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
    ON trips(created_at);
	`

	statements := []string{
		createTripsQuery,
		createTripStopsQuery,
		createGeocodeCacheQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
