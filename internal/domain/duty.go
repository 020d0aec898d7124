package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DutyStatus is one of the four FMCSA driver duty statuses.
//
// The ordinal values (off_duty=0, sleeper_berth=1, driving=2,
// on_duty_not_driving=3) double as the grid row index on the daily log sheet
// and are consumed by frontends. Do not reorder.
type DutyStatus int

const (
	StatusOffDuty DutyStatus = iota
	StatusSleeperBerth
	StatusDriving
	StatusOnDutyNotDriving
)

var dutyStatusNames = [...]string{
	StatusOffDuty:          "off_duty",
	StatusSleeperBerth:     "sleeper_berth",
	StatusDriving:          "driving",
	StatusOnDutyNotDriving: "on_duty_not_driving",
}

func (s DutyStatus) String() string {
	if s < 0 || int(s) >= len(dutyStatusNames) {
		return fmt.Sprintf("duty_status(%d)", int(s))
	}
	return dutyStatusNames[s]
}

// Row returns the log-grid row index for this status.
func (s DutyStatus) Row() int { return int(s) }

// MarshalJSON encodes the status as its snake_case wire name.
func (s DutyStatus) MarshalJSON() ([]byte, error) {
	if s < 0 || int(s) >= len(dutyStatusNames) {
		return nil, fmt.Errorf("marshal duty status: unknown value %d", int(s))
	}
	return json.Marshal(dutyStatusNames[s])
}

func (s *DutyStatus) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("unmarshal duty status: %w", err)
	}
	for i, n := range dutyStatusNames {
		if n == name {
			*s = DutyStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unmarshal duty status: unknown name %q", name)
}

// DutySegment is one contiguous span of a single duty status on the trip
// timeline. Segments produced for a trip are strictly contiguous and
// non-overlapping; their union covers the whole timeline with no gaps.
type DutySegment struct {
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Status     DutyStatus `json:"status"`
	StartMiles float64    `json:"start_miles"`
	Remarks    string     `json:"remarks,omitempty"`
}

// Duration returns the span covered by the segment.
func (s DutySegment) Duration() time.Duration { return s.EndTime.Sub(s.StartTime) }

// Hours returns the segment duration in decimal hours.
func (s DutySegment) Hours() float64 { return s.Duration().Hours() }
