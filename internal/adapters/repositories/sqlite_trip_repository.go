package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

// SQLite-backed implementation of the TripRepository port.
//
// The full schedule is stored as a JSON blob on the trip row; planned stops
// are additionally projected into trip_stops rows so they stay queryable.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Persist one trip and its schedule atomically.
func (s *SqliteTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	if trip == nil || trip.Schedule == nil {
		return errors.New("save trip: trip and schedule must be non-nil")
	}

	scheduleJSON, err := json.Marshal(trip.Schedule)
	if err != nil {
		return fmt.Errorf("save trip: marshal schedule: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTrip := `
	INSERT OR REPLACE INTO trips (
		id,
		current_location,
		pickup_location,
		dropoff_location,
		current_lon, current_lat,
		pickup_lon, pickup_lat,
		dropoff_lon, dropoff_lat,
		cycle_used_hours,
		route_polyline,
		schedule_json,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err = tx.ExecContext(ctx, insertTrip,
		trip.ID.String(),
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCoords.Lon, trip.CurrentCoords.Lat,
		trip.PickupCoords.Lon, trip.PickupCoords.Lat,
		trip.DropoffCoords.Lon, trip.DropoffCoords.Lat,
		trip.CycleUsedHours,
		trip.RoutePolyline,
		string(scheduleJSON),
		trip.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save trip: insert trip id=%s: %w", trip.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_stops WHERE trip_id = ?;`, trip.ID.String()); err != nil {
		return fmt.Errorf("save trip: clear stops id=%s: %w", trip.ID, err)
	}

	insertStop := `
	INSERT INTO trip_stops (
        trip_id, seq, stop_type,
        arrival_time, departure_time,
        duration_hours, miles_from_start, day_number,
        lon, lat, remarks
    )
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, insertStop)
	if err != nil {
		return fmt.Errorf("save trip: prepare stop insert: %w", err)
	}
	defer stmt.Close()

	for i, stop := range trip.Schedule.PlannedStops {
		_, err := stmt.ExecContext(ctx,
			trip.ID.String(), i, string(stop.Type),
			stop.ArrivalTime.UTC().Format(time.RFC3339Nano),
			stop.DepartureTime.UTC().Format(time.RFC3339Nano),
			stop.DurationHours, stop.MilesFromStart, stop.DayNumber,
			stop.Longitude, stop.Latitude, stop.Remarks,
		)
		if err != nil {
			return fmt.Errorf("save trip: insert stop seq=%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip: commit tx: %w", err)
	}

	return nil
}

// Return all trips without their schedules, most recent first.
func (s *SqliteTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		id,
		current_location,
		pickup_location,
		dropoff_location,
		current_lon, current_lat,
		pickup_lon, pickup_lat,
		dropoff_lon, dropoff_lat,
		cycle_used_hours,
		route_polyline,
		created_at
	FROM trips
	ORDER BY created_at DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		trip, err := scanTrip(rows.Scan, false)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

// Return one trip with its full schedule.
func (s *SqliteTripRepository) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		id,
		current_location,
		pickup_location,
		dropoff_location,
		current_lon, current_lat,
		pickup_lon, pickup_lat,
		dropoff_lon, dropoff_lat,
		cycle_used_hours,
		route_polyline,
		schedule_json,
		created_at
	FROM trips
	WHERE id = ?;
	`
	row := s.DB.QueryRowContext(ctx, query, id.String())

	trip, err := scanTrip(row.Scan, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip id=%s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip id=%s: %w", id, err)
	}

	return trip, nil
}

// scanTrip maps one trips row to the domain type. Column order must match
// the SELECT lists above; withSchedule toggles the schedule_json column.
func scanTrip(scan func(...any) error, withSchedule bool) (*domain.Trip, error) {
	var (
		idStr        string
		trip         domain.Trip
		scheduleJSON string
		createdAt    string
	)

	dest := []any{
		&idStr,
		&trip.CurrentLocation,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.CurrentCoords.Lon, &trip.CurrentCoords.Lat,
		&trip.PickupCoords.Lon, &trip.PickupCoords.Lat,
		&trip.DropoffCoords.Lon, &trip.DropoffCoords.Lat,
		&trip.CycleUsedHours,
		&trip.RoutePolyline,
	}
	if withSchedule {
		dest = append(dest, &scheduleJSON)
	}
	dest = append(dest, &createdAt)

	if err := scan(dest...); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse trip id %q: %w", idStr, err)
	}
	trip.ID = id

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	trip.CreatedAt = created

	if withSchedule {
		var schedule domain.TripSchedule
		if err := json.Unmarshal([]byte(scheduleJSON), &schedule); err != nil {
			return nil, fmt.Errorf("unmarshal schedule: %w", err)
		}
		trip.Schedule = &schedule
	}

	return &trip, nil
}
