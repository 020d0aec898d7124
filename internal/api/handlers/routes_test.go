package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawi-me/eld-trip-planner-backend/internal/adapters/routing"
	"github.com/hawi-me/eld-trip-planner-backend/internal/api/dto"
	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

func newRouteHandler() *RouteHandler {
	return &RouteHandler{
		Geocoder: routing.NewMockGeocoder(map[string]domain.Coordinates{
			"Phoenix, AZ": phoenix,
			"Tucson, AZ":  tucson,
		}),
		Provider: routing.NewMockRouteProvider([]routing.MockRoute{
			{From: phoenix, To: tucson, Miles: 113, Hours: 1.8},
		}),
	}
}

func TestCalculateRoute(t *testing.T) {
	h := newRouteHandler()

	body := bytes.NewBufferString(`{"origin": "Phoenix, AZ", "destination": "Tucson, AZ"}`)
	req := httptest.NewRequest(http.MethodPost, "/routes/calculate", body)
	rec := httptest.NewRecorder()
	h.Calculate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.CalculateRouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 113, res.DistanceMiles, 1e-9)
	assert.InDelta(t, 1.8, res.DurationHours, 1e-9)
	assert.NotEmpty(t, res.Polyline)
}

func TestCalculateRouteMissingFields(t *testing.T) {
	h := newRouteHandler()

	body := bytes.NewBufferString(`{"origin": "Phoenix, AZ"}`)
	req := httptest.NewRequest(http.MethodPost, "/routes/calculate", body)
	rec := httptest.NewRecorder()
	h.Calculate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculateRouteUnknownAddress(t *testing.T) {
	h := newRouteHandler()

	body := bytes.NewBufferString(`{"origin": "Atlantis", "destination": "Tucson, AZ"}`)
	req := httptest.NewRequest(http.MethodPost, "/routes/calculate", body)
	rec := httptest.NewRecorder()
	h.Calculate(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCalculateRouteMethodNotAllowed(t *testing.T) {
	h := newRouteHandler()

	req := httptest.NewRequest(http.MethodGet, "/routes/calculate", nil)
	rec := httptest.NewRecorder()
	h.Calculate(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
