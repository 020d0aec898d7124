package hos

import "time"

// simState carries every running counter of one simulation as a plain
// copyable value. Threading the state explicitly keeps individual steps
// testable and keeps concurrent planning runs trivially independent.
type simState struct {
	clock time.Time
	miles float64

	// cycleUsed is the rolling 8-day on-duty total in hours. Incremented by
	// every driving and on-duty segment; never reset within a run.
	cycleUsed float64

	// periodDriving and the window both reset on a qualifying (>= 10h)
	// off-duty or sleeper-berth segment.
	periodDriving float64
	windowStart   time.Time
	inWindow      bool

	// drivingSinceBreak resets on any break of 30 minutes or longer.
	drivingSinceBreak float64

	// milesSinceFuel resets at each fuel stop.
	milesSinceFuel float64
}

// windowElapsed returns wall-clock hours since the current on-duty period
// began, or 0 when no period is open.
func (st simState) windowElapsed() float64 {
	if !st.inWindow {
		return 0
	}
	return st.clock.Sub(st.windowStart).Hours()
}
