package eld

import (
	"math"
	"time"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

// buildGrid projects one day's entries onto the fixed horizontal axis.
//
// Each entry maps to a span on the row given by its status ordinal:
// start_x = floor(minutes-into-day / 1440 * 96), end_x analogous. A segment
// ending exactly at midnight maps to end_x == 96. A transition is emitted at
// every boundary where two adjacent entries differ in status so the renderer
// can draw the vertical connector.
func buildGrid(entries []domain.DutySegment, dayStart time.Time) domain.GridData {
	grid := domain.GridData{
		Segments:    make([]domain.GridSegment, 0, len(entries)),
		Transitions: make([]domain.GridTransition, 0, len(entries)),
	}

	for _, e := range entries {
		grid.Segments = append(grid.Segments, domain.GridSegment{
			Row:    e.Status.Row(),
			StartX: columnOf(e.StartTime, dayStart),
			EndX:   columnOf(e.EndTime, dayStart),
		})
	}

	for i := 0; i < len(entries)-1; i++ {
		cur, next := entries[i], entries[i+1]
		if cur.Status == next.Status {
			continue
		}
		grid.Transitions = append(grid.Transitions, domain.GridTransition{
			X:       columnOf(cur.EndTime, dayStart),
			FromRow: cur.Status.Row(),
			ToRow:   next.Status.Row(),
		})
	}

	return grid
}

func columnOf(t, dayStart time.Time) int {
	minutes := t.Sub(dayStart).Minutes()
	return int(math.Floor(minutes / minutesPerDay * GridColumns))
}
