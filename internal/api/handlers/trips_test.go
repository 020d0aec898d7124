package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawi-me/eld-trip-planner-backend/internal/adapters/routing"
	"github.com/hawi-me/eld-trip-planner-backend/internal/api/dto"
	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
	"github.com/hawi-me/eld-trip-planner-backend/internal/hos"
)

var (
	phoenix = domain.Coordinates{Lon: -112.0740, Lat: 33.4484}
	tucson  = domain.Coordinates{Lon: -110.9747, Lat: 32.2226}
	elpaso  = domain.Coordinates{Lon: -106.4850, Lat: 31.7619}
)

type memRepo struct {
	trips map[uuid.UUID]*domain.Trip
	order []uuid.UUID
}

func newMemRepo() *memRepo {
	return &memRepo{trips: map[uuid.UUID]*domain.Trip{}}
}

func (m *memRepo) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	if _, ok := m.trips[trip.ID]; !ok {
		m.order = append(m.order, trip.ID)
	}
	m.trips[trip.ID] = trip
	return nil
}

func (m *memRepo) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	out := make([]*domain.Trip, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		t := *m.trips[m.order[i]]
		t.Schedule = nil
		out = append(out, &t)
	}
	return out, nil
}

func (m *memRepo) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	t, ok := m.trips[id]
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

func newTripHandler(repo *memRepo) *TripHandler {
	return &TripHandler{
		Repo: repo,
		Geocoder: routing.NewMockGeocoder(map[string]domain.Coordinates{
			"Phoenix, AZ": phoenix,
			"Tucson, AZ":  tucson,
			"El Paso, TX": elpaso,
		}),
		Provider: routing.NewMockRouteProvider([]routing.MockRoute{
			{From: phoenix, To: tucson, Miles: 113, Hours: 1.8},
			{From: tucson, To: elpaso, Miles: 317, Hours: 4.7},
		}),
		Scheduler: hos.NewScheduler(hos.DefaultLimits()),
	}
}

func planBody(t *testing.T, cycle float64) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"current_location":         "Phoenix, AZ",
		"pickup_location":          "Tucson, AZ",
		"dropoff_location":         "El Paso, TX",
		"current_cycle_used_hours": cycle,
		"departure_time":           "2025-06-01T08:00:00Z",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestCreateTrip(t *testing.T) {
	repo := newMemRepo()
	h := newTripHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/trips", planBody(t, 12))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var res dto.TripResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Phoenix, AZ", res.CurrentLocation)
	require.NotNil(t, res.Schedule)
	assert.InDelta(t, 430, res.Schedule.TotalDistanceMiles, 1e-6)
	require.NotEmpty(t, res.Schedule.DailyLogs)

	id, err := uuid.Parse(res.ID)
	require.NoError(t, err)
	assert.Len(t, repo.trips, 1)
	assert.Contains(t, repo.trips, id)
}

func TestCreateTripInvalidBody(t *testing.T) {
	h := newTripHandler(newMemRepo())

	req := httptest.NewRequest(http.MethodPost, "/trips", bytes.NewBufferString(`{"unknown_field": 1}`))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTripInfeasible(t *testing.T) {
	h := newTripHandler(newMemRepo())

	// 69.9 cycle hours leave no room for the pickup dwell.
	req := httptest.NewRequest(http.MethodPost, "/trips", planBody(t, 69.9))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListTrips(t *testing.T) {
	repo := newMemRepo()
	h := newTripHandler(repo)

	create := httptest.NewRequest(http.MethodPost, "/trips", planBody(t, 0))
	h.Collection(httptest.NewRecorder(), create)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListTripsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Trips, 1)
	// List results omit the full schedule.
	assert.Nil(t, res.Trips[0].Schedule)
}

func TestGetTrip(t *testing.T) {
	repo := newMemRepo()
	h := newTripHandler(repo)

	create := httptest.NewRequest(http.MethodPost, "/trips", planBody(t, 0))
	createRec := httptest.NewRecorder()
	h.Collection(createRec, create)
	require.Equal(t, http.StatusCreated, createRec.Code)

	var created dto.TripResponse
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/trips/"+created.ID, nil)
	rec := httptest.NewRecorder()
	h.Item(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.TripResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, created.ID, res.ID)
	require.NotNil(t, res.Schedule)
}

func TestGetTripNotFound(t *testing.T) {
	h := newTripHandler(newMemRepo())

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.Item(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTripInvalidID(t *testing.T) {
	h := newTripHandler(newMemRepo())

	req := httptest.NewRequest(http.MethodGet, "/trips/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.Item(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTripsMethodNotAllowed(t *testing.T) {
	h := newTripHandler(newMemRepo())

	req := httptest.NewRequest(http.MethodDelete, "/trips", nil)
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodPost)
}
