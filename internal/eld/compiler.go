// Package eld compiles a finalized duty-segment timeline into per-day ELD
// log sheets: calendar-day partitioning, per-status hour summaries, and the
// fixed-resolution grid a frontend renders as the classic paper log.
//
// Compilation is a pure, idempotent transform: recompiling an unchanged
// segment list always yields an identical result.
package eld

import (
	"math"
	"time"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

// GridColumns is the horizontal resolution of the log grid: 96 columns of
// 15 minutes across a 24-hour day.
const GridColumns = 96

const minutesPerDay = 24 * 60

// Compile partitions the trip timeline on local calendar-day boundaries and
// builds one DailyLog per day the trip touches.
//
// A segment spanning midnight is split at the boundary, each half keeping
// the original status, so per-day entry sets are self-contained and the
// hours of a fully covered day sum to exactly 24. First and last days are
// partial: their summaries cover only the portion of the day the trip spans.
func Compile(segments []domain.DutySegment) []domain.DailyLog {
	if len(segments) == 0 {
		return []domain.DailyLog{}
	}

	// End-of-segment mileage is implied by contiguity: each segment ends
	// where its successor starts. The final segment is a stationary dwell,
	// so its miles do not advance.
	endMiles := make([]float64, len(segments))
	for i := range segments {
		if i < len(segments)-1 {
			endMiles[i] = segments[i+1].StartMiles
		} else {
			endMiles[i] = segments[i].StartMiles
		}
	}

	first := segments[0].StartTime
	last := segments[len(segments)-1].EndTime
	base := midnightOf(first)

	logs := make([]domain.DailyLog, 0, 4)
	for dayStart := base; dayStart.Before(last); dayStart = dayStart.AddDate(0, 0, 1) {
		dayEnd := dayStart.AddDate(0, 0, 1)

		entries := clipToDay(segments, endMiles, dayStart, dayEnd)
		if len(entries) == 0 {
			continue
		}

		var summary domain.StatusHours
		for _, e := range entries {
			summary.Add(e.Status, e.Hours())
		}

		logs = append(logs, domain.DailyLog{
			Date:      dayStart.Format("2006-01-02"),
			DayNumber: DayNumber(dayStart, first),
			Entries:   entries,
			Summary:   summary,
			Grid:      buildGrid(entries, dayStart),
		})
	}

	return logs
}

// DayNumber returns the 1-based day index of t counted from the local
// midnight preceding reference.
func DayNumber(t, reference time.Time) int {
	base := midnightOf(reference)
	day := midnightOf(t)
	// Rounding absorbs DST-shortened or -lengthened days.
	return int(math.Round(day.Sub(base).Hours()/24)) + 1
}

func midnightOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// clipToDay returns the portions of segments overlapping [dayStart, dayEnd),
// with start mileage interpolated for segments cut at the boundary.
func clipToDay(segments []domain.DutySegment, endMiles []float64, dayStart, dayEnd time.Time) []domain.DutySegment {
	out := make([]domain.DutySegment, 0, len(segments))
	for i, seg := range segments {
		if !seg.EndTime.After(dayStart) || !seg.StartTime.Before(dayEnd) {
			continue
		}

		start := seg.StartTime
		if start.Before(dayStart) {
			start = dayStart
		}
		end := seg.EndTime
		if end.After(dayEnd) {
			end = dayEnd
		}
		if !end.After(start) {
			continue
		}

		out = append(out, domain.DutySegment{
			StartTime:  start,
			EndTime:    end,
			Status:     seg.Status,
			StartMiles: milesAt(seg, endMiles[i], start),
			Remarks:    seg.Remarks,
		})
	}
	return out
}

// milesAt interpolates the cumulative mileage at time t within seg,
// assuming constant pace across the segment.
func milesAt(seg domain.DutySegment, segEndMiles float64, t time.Time) float64 {
	total := seg.Duration()
	if total <= 0 || !t.After(seg.StartTime) {
		return seg.StartMiles
	}
	frac := float64(t.Sub(seg.StartTime)) / float64(total)
	return seg.StartMiles + frac*(segEndMiles-seg.StartMiles)
}
