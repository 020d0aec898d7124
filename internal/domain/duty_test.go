package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDutyStatusRowOrdinals(t *testing.T) {
	// Grid rows are the status ordinals; frontends index into them directly.
	assert.Equal(t, 0, StatusOffDuty.Row())
	assert.Equal(t, 1, StatusSleeperBerth.Row())
	assert.Equal(t, 2, StatusDriving.Row())
	assert.Equal(t, 3, StatusOnDutyNotDriving.Row())
}

func TestDutyStatusJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(StatusOnDutyNotDriving)
	require.NoError(t, err)
	assert.Equal(t, `"on_duty_not_driving"`, string(b))

	var s DutyStatus
	require.NoError(t, json.Unmarshal([]byte(`"sleeper_berth"`), &s))
	assert.Equal(t, StatusSleeperBerth, s)

	assert.Error(t, json.Unmarshal([]byte(`"lunch"`), &s))
}

func TestStatusHoursAddAndTotal(t *testing.T) {
	var h StatusHours
	h.Add(StatusDriving, 8)
	h.Add(StatusDriving, 2.5)
	h.Add(StatusOffDuty, 0.5)
	h.Add(StatusOnDutyNotDriving, 2)

	assert.InDelta(t, 10.5, h.Driving, 1e-9)
	assert.InDelta(t, 13, h.Total(), 1e-9)
}

func TestLocationAtMiles(t *testing.T) {
	geometry := []Coordinates{
		{Lon: -112.0, Lat: 33.4},
		{Lon: -111.0, Lat: 34.0},
		{Lon: -110.0, Lat: 34.6},
		{Lon: -109.0, Lat: 35.2},
	}

	assert.Equal(t, geometry[0], LocationAtMiles(geometry, 300, 0))
	assert.Equal(t, geometry[0], LocationAtMiles(geometry, 300, -10))
	assert.Equal(t, geometry[1], LocationAtMiles(geometry, 300, 150))
	assert.Equal(t, geometry[3], LocationAtMiles(geometry, 300, 300))
	assert.Equal(t, geometry[3], LocationAtMiles(geometry, 300, 999))
	assert.Equal(t, Coordinates{}, LocationAtMiles(nil, 300, 10))
}
