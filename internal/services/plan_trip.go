package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
	"github.com/hawi-me/eld-trip-planner-backend/internal/hos"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
	"github.com/twpayne/go-polyline"
)

type PlanTripRequest struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleUsedHours  float64
	DepartAt        time.Time
}

type legResult struct {
	route ports.RouteResult
	err   error
}

// PlanTrip geocodes the three trip locations, fetches both route legs, runs
// the duty scheduler, and assembles a persistable Trip.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
	scheduler *hos.Scheduler,
) (*domain.Trip, error) {
	current := strings.TrimSpace(req.CurrentLocation)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	if current == "" || pickup == "" || dropoff == "" {
		return nil, fmt.Errorf(
			"plan trip: current, pickup, and dropoff locations must be non-empty: %w",
			domain.ErrInvalidInput,
		)
	}

	// Geocoding is sequential: Nominatim's usage policy caps request rate,
	// and the cache absorbs repeats anyway.
	currentCoords, err := geocoder.Geocode(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode current location %q: %w", current, err)
	}
	pickupCoords, err := geocoder.Geocode(ctx, pickup)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode pickup location %q: %w", pickup, err)
	}
	dropoffCoords, err := geocoder.Geocode(ctx, dropoff)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode dropoff location %q: %w", dropoff, err)
	}

	// The two legs are independent; fetch them concurrently.
	var (
		wg      sync.WaitGroup
		preLeg  legResult
		mainLeg legResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		preLeg.route, preLeg.err = provider.GetRoute(ctx, currentCoords, pickupCoords)
	}()
	go func() {
		defer wg.Done()
		mainLeg.route, mainLeg.err = provider.GetRoute(ctx, pickupCoords, dropoffCoords)
	}()
	wg.Wait()

	if preLeg.err != nil {
		return nil, fmt.Errorf("plan trip: route current -> pickup: %w", preLeg.err)
	}
	if mainLeg.err != nil {
		return nil, fmt.Errorf("plan trip: route pickup -> dropoff: %w", mainLeg.err)
	}

	schedule, err := scheduler.Schedule(domain.TripPlanRequest{
		DepartureTime:      req.DepartAt,
		CycleUsedHours:     req.CycleUsedHours,
		PrePickupLeg:       domain.RouteLeg{DistanceMiles: preLeg.route.DistanceMiles, DurationHours: preLeg.route.DurationHours},
		PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: mainLeg.route.DistanceMiles, DurationHours: mainLeg.route.DurationHours},
	})
	if err != nil {
		return nil, fmt.Errorf("plan trip: schedule: %w", err)
	}

	geometry := joinGeometry(preLeg.route.Geometry, mainLeg.route.Geometry)
	totalMiles := preLeg.route.DistanceMiles + mainLeg.route.DistanceMiles

	// Attach an approximate map position to every stop for persistence and
	// map display.
	for i := range schedule.PlannedStops {
		at := domain.LocationAtMiles(geometry, totalMiles, schedule.PlannedStops[i].MilesFromStart)
		schedule.PlannedStops[i].Latitude = at.Lat
		schedule.PlannedStops[i].Longitude = at.Lon
	}

	return &domain.Trip{
		ID:              uuid.New(),
		CurrentLocation: current,
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		CurrentCoords:   currentCoords,
		PickupCoords:    pickupCoords,
		DropoffCoords:   dropoffCoords,
		CycleUsedHours:  req.CycleUsedHours,
		RoutePolyline:   encodeGeometry(geometry),
		Schedule:        &schedule,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// joinGeometry concatenates two leg geometries, dropping the duplicated
// junction point where the first leg ends and the second begins.
func joinGeometry(a, b []domain.Coordinates) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(a)+len(b))
	out = append(out, a...)
	if len(a) > 0 && len(b) > 0 && a[len(a)-1] == b[0] {
		b = b[1:]
	}
	return append(out, b...)
}

func encodeGeometry(coords []domain.Coordinates) string {
	if len(coords) == 0 {
		return ""
	}

	pairs := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pairs = append(pairs, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pairs))
}
