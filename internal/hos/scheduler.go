// Package hos implements the FMCSA Hours-of-Service duty scheduler.
//
// Given a route's legs, a departure time, and the driver's accumulated
// 8-day cycle hours, Schedule simulates the trip and inserts mandatory
// breaks, rest periods, and fuel/loading stops at legally correct points,
// producing a contiguous, non-overlapping timeline of duty segments.
//
// Rules enforced, in precedence order:
//
//  1. 70-hour/8-day cycle ceiling
//  2. 11-hour driving limit / 14-hour on-duty window
//  3. 30-minute break after 8 hours cumulative driving
//  4. fuel stop every ~1,000 miles
//
// Scheduling is a pure function of its inputs: the same request always
// yields the identical segment and stop sequence.
package hos

import (
	"fmt"
	"time"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
	"github.com/hawi-me/eld-trip-planner-backend/internal/eld"
)

const (
	hoursEps = 1e-9
	milesEps = 1e-6
)

// guardKind identifies one HOS guard condition.
type guardKind int

const (
	guardNone guardKind = iota
	guardCycle
	guardDriving
	guardWindow
	guardBreak
	guardFuel
)

type guard struct {
	kind guardKind
	hit  func(l Limits, st simState) bool
}

// guards is the precedence table evaluated before every driving slice.
// The first hit wins; order is load-bearing: hard legal ceilings preempt
// break and fuel stops when several trigger at the same instant.
var guards = []guard{
	{guardCycle, func(l Limits, st simState) bool {
		return st.cycleUsed >= l.CycleHours-hoursEps
	}},
	{guardDriving, func(l Limits, st simState) bool {
		return st.periodDriving >= l.MaxDrivingHours-hoursEps
	}},
	{guardWindow, func(l Limits, st simState) bool {
		return st.windowElapsed() >= l.MaxWindowHours-hoursEps
	}},
	{guardBreak, func(l Limits, st simState) bool {
		return st.drivingSinceBreak >= l.BreakAfterDrivingHours-hoursEps
	}},
	{guardFuel, func(l Limits, st simState) bool {
		return st.milesSinceFuel >= l.FuelIntervalMiles-milesEps
	}},
}

func firstHit(l Limits, st simState) guardKind {
	for _, g := range guards {
		if g.hit(l, st) {
			return g.kind
		}
	}
	return guardNone
}

// Scheduler plans HOS-compliant trip schedules.
type Scheduler struct {
	limits Limits
}

// NewScheduler returns a Scheduler enforcing the given limits.
func NewScheduler(limits Limits) *Scheduler {
	return &Scheduler{limits: limits}
}

// Schedule simulates the trip described by req and returns the complete
// schedule: planned stops, daily log sheets, and summary totals.
//
// It returns domain.ErrInvalidInput for malformed requests and
// domain.ErrInfeasibleTrip when the 70-hour ceiling or the simulation
// horizon makes the trip unschedulable. It never returns a partially built
// schedule.
func (s *Scheduler) Schedule(req domain.TripPlanRequest) (domain.TripSchedule, error) {
	if err := validateRequest(s.limits, req); err != nil {
		return domain.TripSchedule{}, err
	}

	r := &run{
		limits:    s.limits,
		departure: req.DepartureTime,
		st: simState{
			clock:     req.DepartureTime,
			cycleUsed: req.CycleUsedHours,
		},
	}

	if err := r.driveLeg(req.PrePickupLeg); err != nil {
		return domain.TripSchedule{}, fmt.Errorf("schedule: pre-pickup leg: %w", err)
	}
	if err := r.dwell(s.limits.PickupDuration, domain.StopPickup, "Pickup: loading cargo (1 hour)"); err != nil {
		return domain.TripSchedule{}, fmt.Errorf("schedule: pickup: %w", err)
	}
	if err := r.driveLeg(req.PickupToDropoffLeg); err != nil {
		return domain.TripSchedule{}, fmt.Errorf("schedule: pickup to dropoff leg: %w", err)
	}
	if err := r.dwell(s.limits.DropoffDuration, domain.StopDropoff, "Dropoff: unloading cargo (1 hour)"); err != nil {
		return domain.TripSchedule{}, fmt.Errorf("schedule: dropoff: %w", err)
	}

	return r.assemble(req), nil
}

func validateRequest(l Limits, req domain.TripPlanRequest) error {
	if req.DepartureTime.IsZero() {
		return fmt.Errorf("departure time is required: %w", domain.ErrInvalidInput)
	}
	if req.CycleUsedHours < 0 || req.CycleUsedHours > l.CycleHours {
		return fmt.Errorf("cycle used hours %.2f outside [0, %.0f]: %w",
			req.CycleUsedHours, l.CycleHours, domain.ErrInvalidInput)
	}
	if err := validateLeg("pre-pickup", req.PrePickupLeg); err != nil {
		return err
	}
	return validateLeg("pickup to dropoff", req.PickupToDropoffLeg)
}

func validateLeg(name string, leg domain.RouteLeg) error {
	if leg.DistanceMiles <= 0 {
		return fmt.Errorf("%s leg distance %.2f must be positive: %w",
			name, leg.DistanceMiles, domain.ErrInvalidInput)
	}
	if leg.DurationHours <= 0 {
		return fmt.Errorf("%s leg duration %.2f must be positive: %w",
			name, leg.DurationHours, domain.ErrInvalidInput)
	}
	return nil
}

// run accumulates the timeline of one simulation.
type run struct {
	limits    Limits
	departure time.Time
	st        simState
	segments  []domain.DutySegment
	stops     []domain.Stop
}

// driveLeg advances through one route leg, treating distance and time as
// linearly related (constant average pace). Before each driving slice the
// guard table is consulted; a hit inserts the corresponding stop before
// driving resumes.
func (r *run) driveLeg(leg domain.RouteLeg) error {
	speed := leg.DistanceMiles / leg.DurationHours // mph
	remaining := leg.DistanceMiles

	for remaining > milesEps {
		if r.st.clock.Sub(r.departure) > r.limits.MaxHorizon {
			return fmt.Errorf("simulation horizon (%.0f days) exceeded at mile %.1f: %w",
				r.limits.MaxHorizon.Hours()/24, r.st.miles, domain.ErrInfeasibleTrip)
		}

		switch firstHit(r.limits, r.st) {
		case guardCycle:
			// A scalar cycle total never decays with rest, so waiting
			// cannot unbind the ceiling; fail instead of idling to the
			// horizon. Completing this trip would need a multi-day restart
			// the request did not ask for.
			return fmt.Errorf("70-hour/8-day ceiling reached at mile %.1f with %.1f miles remaining: %w",
				r.st.miles, remaining, domain.ErrInfeasibleTrip)
		case guardDriving:
			r.insertRest("10-hour rest (11-hour driving limit)")
			continue
		case guardWindow:
			r.insertRest("10-hour rest (14-hour on-duty window)")
			continue
		case guardBreak:
			r.insertBreak()
			continue
		case guardFuel:
			if err := r.insertFuelStop(); err != nil {
				return err
			}
			continue
		}

		// Longest slice drivable before any limit binds.
		slice := minFloat(
			r.limits.MaxDrivingHours-r.st.periodDriving,
			r.limits.BreakAfterDrivingHours-r.st.drivingSinceBreak,
			r.limits.MaxWindowHours-r.st.windowElapsed(),
			r.limits.CycleHours-r.st.cycleUsed,
			(r.limits.FuelIntervalMiles-r.st.milesSinceFuel)/speed,
			remaining/speed,
		)
		if slice <= hoursEps {
			// No drivable slack and no guard fired; only the horizon cap
			// can break a pathological stall.
			r.st.clock = r.st.clock.Add(time.Minute)
			continue
		}

		r.ensureWindow()
		miles := slice * speed
		r.addSegment(domain.StatusDriving, hoursToDuration(slice), "")
		r.st.miles += miles
		r.st.milesSinceFuel += miles
		r.st.periodDriving += slice
		r.st.drivingSinceBreak += slice
		r.st.cycleUsed += slice
		remaining -= miles
	}

	return nil
}

// dwell inserts a fixed on-duty stop (pickup or dropoff) at the current
// point. Dwells are not guard-triggered; they always occur at leg
// boundaries, count toward the cycle, and reset no driving counters.
func (r *run) dwell(d time.Duration, stopType domain.StopType, remarks string) error {
	hours := d.Hours()
	if r.st.cycleUsed+hours > r.limits.CycleHours+hoursEps {
		return fmt.Errorf("70-hour/8-day ceiling leaves no room for %s: %w",
			stopType, domain.ErrInfeasibleTrip)
	}

	r.ensureWindow()
	arrival := r.st.clock
	r.addSegment(domain.StatusOnDutyNotDriving, d, remarks)
	r.st.cycleUsed += hours
	r.addStop(stopType, arrival, d, remarks)
	return nil
}

// insertRest adds the 10-hour sleeper-berth rest that closes the current
// on-duty period. Resets the 11-hour and 14-hour counters and the break
// counter; never the cycle total.
func (r *run) insertRest(remarks string) {
	arrival := r.st.clock
	r.addSegment(domain.StatusSleeperBerth, r.limits.RestDuration, remarks)
	r.addStop(domain.StopRestart, arrival, r.limits.RestDuration, remarks)
	r.st.periodDriving = 0
	r.st.drivingSinceBreak = 0
	r.st.inWindow = false
}

// insertBreak adds the 30-minute off-duty break required after 8 hours of
// cumulative driving. Resets only the break counter.
func (r *run) insertBreak() {
	const remarks = "30-minute break (8-hour driving rule)"
	arrival := r.st.clock
	r.addSegment(domain.StatusOffDuty, r.limits.BreakDuration, remarks)
	r.addStop(domain.StopRestBreak, arrival, r.limits.BreakDuration, remarks)
	r.st.drivingSinceBreak = 0
}

// insertFuelStop adds an on-duty fuel stop. Fueling counts toward the cycle
// total and resets only the fuel mileage counter.
func (r *run) insertFuelStop() error {
	const remarks = "Fuel stop"
	hours := r.limits.FuelStopDuration.Hours()
	if r.st.cycleUsed+hours > r.limits.CycleHours+hoursEps {
		return fmt.Errorf("70-hour/8-day ceiling leaves no room for a fuel stop at mile %.1f: %w",
			r.st.miles, domain.ErrInfeasibleTrip)
	}

	r.ensureWindow()
	arrival := r.st.clock
	r.addSegment(domain.StatusOnDutyNotDriving, r.limits.FuelStopDuration, remarks)
	r.st.cycleUsed += hours
	r.addStop(domain.StopFuel, arrival, r.limits.FuelStopDuration, remarks)
	r.st.milesSinceFuel = 0
	return nil
}

// ensureWindow opens a new 14-hour window if none is running.
func (r *run) ensureWindow() {
	if !r.st.inWindow {
		r.st.windowStart = r.st.clock
		r.st.inWindow = true
	}
}

func (r *run) addSegment(status domain.DutyStatus, d time.Duration, remarks string) {
	r.segments = append(r.segments, domain.DutySegment{
		StartTime:  r.st.clock,
		EndTime:    r.st.clock.Add(d),
		Status:     status,
		StartMiles: r.st.miles,
		Remarks:    remarks,
	})
	r.st.clock = r.st.clock.Add(d)
}

func (r *run) addStop(t domain.StopType, arrival time.Time, d time.Duration, remarks string) {
	r.stops = append(r.stops, domain.Stop{
		Type:           t,
		ArrivalTime:    arrival,
		DepartureTime:  arrival.Add(d),
		DurationHours:  d.Hours(),
		MilesFromStart: r.st.miles,
		DayNumber:      eld.DayNumber(arrival, r.departure),
		Remarks:        remarks,
	})
}

// assemble compiles the finished timeline into the output aggregate.
func (r *run) assemble(req domain.TripPlanRequest) domain.TripSchedule {
	logs := eld.Compile(r.segments)

	var driving, onDuty time.Duration
	for _, seg := range r.segments {
		switch seg.Status {
		case domain.StatusDriving:
			driving += seg.Duration()
			onDuty += seg.Duration()
		case domain.StatusOnDutyNotDriving:
			onDuty += seg.Duration()
		}
	}

	arrival := r.st.clock
	return domain.TripSchedule{
		TotalDistanceMiles:     round2(req.PrePickupLeg.DistanceMiles + req.PickupToDropoffLeg.DistanceMiles),
		TotalTripDurationHours: round2(arrival.Sub(req.DepartureTime).Hours()),
		EstimatedDays:          len(logs),
		PlannedStops:           r.stops,
		DailyLogs:              logs,
		TotalDrivingHours:      round2(driving.Hours()),
		TotalOnDutyHours:       round2(onDuty.Hours()),
		DepartureTime:          req.DepartureTime,
		EstimatedArrivalTime:   arrival,
	}
}
