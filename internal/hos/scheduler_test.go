package hos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

func depart() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func stopsOfType(stops []domain.Stop, t domain.StopType) []domain.Stop {
	out := make([]domain.Stop, 0, len(stops))
	for _, s := range stops {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

func TestScheduleSingleDayTrip(t *testing.T) {
	s := NewScheduler(DefaultLimits())

	// 500 miles at a steady 50mph: 10 driving hours, one break, no rest.
	schedule, err := s.Schedule(domain.TripPlanRequest{
		DepartureTime:      depart(),
		CycleUsedHours:     0,
		PrePickupLeg:       domain.RouteLeg{DistanceMiles: 50, DurationHours: 1},
		PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: 450, DurationHours: 9},
	})
	require.NoError(t, err)

	assert.InDelta(t, 500, schedule.TotalDistanceMiles, 1e-9)
	assert.InDelta(t, 10, schedule.TotalDrivingHours, 1e-9)
	// Driving plus the two 1-hour dwells.
	assert.InDelta(t, 12, schedule.TotalOnDutyHours, 1e-9)
	// 10h driving + 2h dwells + 30min break.
	assert.InDelta(t, 12.5, schedule.TotalTripDurationHours, 1e-9)
	assert.Equal(t, 1, schedule.EstimatedDays)
	assert.Equal(t, depart().Add(12*time.Hour+30*time.Minute), schedule.EstimatedArrivalTime)

	require.Len(t, schedule.PlannedStops, 3)
	assert.Equal(t, domain.StopPickup, schedule.PlannedStops[0].Type)
	assert.Equal(t, domain.StopRestBreak, schedule.PlannedStops[1].Type)
	assert.Equal(t, domain.StopDropoff, schedule.PlannedStops[2].Type)

	// The break lands after exactly 8 cumulative driving hours: 1h pre-leg
	// plus 7h of the main leg, 400 miles in.
	brk := schedule.PlannedStops[1]
	assert.Equal(t, depart().Add(9*time.Hour), brk.ArrivalTime)
	assert.InDelta(t, 400, brk.MilesFromStart, 1e-6)
	assert.InDelta(t, 0.5, brk.DurationHours, 1e-9)

	assert.Empty(t, stopsOfType(schedule.PlannedStops, domain.StopRestart))
	assert.Empty(t, stopsOfType(schedule.PlannedStops, domain.StopFuel))
}

func TestScheduleInsertsRestAtDrivingLimit(t *testing.T) {
	s := NewScheduler(DefaultLimits())

	// 13 driving hours at 55mph: the 11-hour limit binds mid main leg.
	schedule, err := s.Schedule(domain.TripPlanRequest{
		DepartureTime:      depart(),
		CycleUsedHours:     0,
		PrePickupLeg:       domain.RouteLeg{DistanceMiles: 55, DurationHours: 1},
		PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: 660, DurationHours: 12},
	})
	require.NoError(t, err)

	restarts := stopsOfType(schedule.PlannedStops, domain.StopRestart)
	require.Len(t, restarts, 1)
	assert.Contains(t, restarts[0].Remarks, "11-hour")
	assert.InDelta(t, 10, restarts[0].DurationHours, 1e-9)

	// 1h + 1h dwell + 7h + 0.5h break + 3h = 12.5h elapsed at the rest.
	assert.Equal(t, depart().Add(12*time.Hour+30*time.Minute), restarts[0].ArrivalTime)
	assert.Equal(t, 2, schedule.EstimatedDays)
	assert.InDelta(t, 13, schedule.TotalDrivingHours, 1e-9)
}

func TestScheduleWindowLimitTriggersRest(t *testing.T) {
	// Tighten the window below what the driving limit allows so the
	// on-duty window guard binds first.
	limits := DefaultLimits()
	limits.MaxWindowHours = 10
	s := NewScheduler(limits)

	schedule, err := s.Schedule(domain.TripPlanRequest{
		DepartureTime:      depart(),
		CycleUsedHours:     0,
		PrePickupLeg:       domain.RouteLeg{DistanceMiles: 55, DurationHours: 1},
		PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: 660, DurationHours: 12},
	})
	require.NoError(t, err)

	restarts := stopsOfType(schedule.PlannedStops, domain.StopRestart)
	require.NotEmpty(t, restarts)
	assert.Contains(t, restarts[0].Remarks, "on-duty window")

	// 1h pre-leg + 1h pickup + 7h drive + 0.5h break + 0.5h drive closes
	// the shortened window.
	assert.Equal(t, depart().Add(10*time.Hour), restarts[0].ArrivalTime)
}

func TestScheduleFuelStopEveryThousandMiles(t *testing.T) {
	s := NewScheduler(DefaultLimits())

	schedule, err := s.Schedule(domain.TripPlanRequest{
		DepartureTime:      depart(),
		CycleUsedHours:     0,
		PrePickupLeg:       domain.RouteLeg{DistanceMiles: 40, DurationHours: 1},
		PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: 1300, DurationHours: 26},
	})
	require.NoError(t, err)

	fuels := stopsOfType(schedule.PlannedStops, domain.StopFuel)
	require.Len(t, fuels, 1)
	assert.InDelta(t, 1000, fuels[0].MilesFromStart, 1)
	assert.InDelta(t, 0.5, fuels[0].DurationHours, 1e-9)

	// A 27-hour driving load cannot fit one period; rests are mandatory.
	assert.NotEmpty(t, stopsOfType(schedule.PlannedStops, domain.StopRestart))
	assert.InDelta(t, 1340, schedule.TotalDistanceMiles, 1e-9)
}

func TestScheduleCycleExhaustedFailsFast(t *testing.T) {
	s := NewScheduler(DefaultLimits())

	// 69 hours already used: the half-hour pre-leg fits, the 1-hour pickup
	// dwell does not. A scalar cycle total never frees up, so this must fail
	// rather than wait.
	_, err := s.Schedule(domain.TripPlanRequest{
		DepartureTime:      depart(),
		CycleUsedHours:     69,
		PrePickupLeg:       domain.RouteLeg{DistanceMiles: 25, DurationHours: 0.5},
		PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: 250, DurationHours: 5},
	})
	require.ErrorIs(t, err, domain.ErrInfeasibleTrip)
}

func TestScheduleValidatesRequest(t *testing.T) {
	s := NewScheduler(DefaultLimits())
	leg := domain.RouteLeg{DistanceMiles: 100, DurationHours: 2}

	cases := map[string]domain.TripPlanRequest{
		"zero departure": {
			CycleUsedHours:     0,
			PrePickupLeg:       leg,
			PickupToDropoffLeg: leg,
		},
		"negative cycle": {
			DepartureTime:      depart(),
			CycleUsedHours:     -1,
			PrePickupLeg:       leg,
			PickupToDropoffLeg: leg,
		},
		"cycle above ceiling": {
			DepartureTime:      depart(),
			CycleUsedHours:     70.5,
			PrePickupLeg:       leg,
			PickupToDropoffLeg: leg,
		},
		"zero-distance leg": {
			DepartureTime:      depart(),
			PrePickupLeg:       domain.RouteLeg{DistanceMiles: 0, DurationHours: 2},
			PickupToDropoffLeg: leg,
		},
		"zero-duration leg": {
			DepartureTime:      depart(),
			PrePickupLeg:       leg,
			PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: 100, DurationHours: 0},
		},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Schedule(req)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestScheduleTimelineContiguous(t *testing.T) {
	s := NewScheduler(DefaultLimits())

	schedule, err := s.Schedule(domain.TripPlanRequest{
		DepartureTime:      depart(),
		CycleUsedHours:     10,
		PrePickupLeg:       domain.RouteLeg{DistanceMiles: 120, DurationHours: 2},
		PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: 900, DurationHours: 18},
	})
	require.NoError(t, err)

	// Entries within each day must chain with no gaps or overlaps, and a
	// fully covered day must sum to exactly 24 hours.
	for i, day := range schedule.DailyLogs {
		require.NotEmpty(t, day.Entries)
		for j := 1; j < len(day.Entries); j++ {
			assert.Equal(t, day.Entries[j-1].EndTime, day.Entries[j].StartTime,
				"day %d entry %d", day.DayNumber, j)
		}

		interior := i > 0 && i < len(schedule.DailyLogs)-1
		if interior {
			assert.InDelta(t, 24, day.Summary.Total(), 1e-9, "day %d", day.DayNumber)
		}
	}
}

func TestScheduleDeterministic(t *testing.T) {
	s := NewScheduler(DefaultLimits())
	req := domain.TripPlanRequest{
		DepartureTime:      depart(),
		CycleUsedHours:     20,
		PrePickupLeg:       domain.RouteLeg{DistanceMiles: 80, DurationHours: 1.5},
		PickupToDropoffLeg: domain.RouteLeg{DistanceMiles: 1200, DurationHours: 22},
	}

	first, err := s.Schedule(req)
	require.NoError(t, err)
	second, err := s.Schedule(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
