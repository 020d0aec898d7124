package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
)

type fakeGeocodeCache struct {
	entries map[string]domain.Coordinates
	puts    int
}

func (c *fakeGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	v, ok := c.entries[address]
	return v, ok, nil
}

func (c *fakeGeocodeCache) Put(ctx context.Context, address string, v domain.Coordinates) error {
	if c.entries == nil {
		c.entries = map[string]domain.Coordinates{}
	}
	c.entries[address] = v
	c.puts++
	return nil
}

func TestNominatimGeocode(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Phoenix, AZ", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"33.4484","lon":"-112.0740"}]`))
	}))
	defer srv.Close()

	cache := &fakeGeocodeCache{}
	g, err := NewNominatimGeocoder("test-agent/1.0", cache)
	require.NoError(t, err)
	g.baseURL = srv.URL

	coords, err := g.Geocode(context.Background(), "  Phoenix,   AZ ")
	require.NoError(t, err)
	assert.InDelta(t, 33.4484, coords.Lat, 1e-9)
	assert.InDelta(t, -112.0740, coords.Lon, 1e-9)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.puts)

	// Second lookup of the same (normalized) address is served from cache.
	_, err = g.Geocode(context.Background(), "Phoenix, AZ")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestNominatimGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder("test-agent/1.0", nil)
	require.NoError(t, err)
	g.baseURL = srv.URL

	_, err = g.Geocode(context.Background(), "Nowhereville")
	require.ErrorIs(t, err, domain.ErrRouteUnavailable)
}

func TestNominatimGeocodeEmptyAddress(t *testing.T) {
	g, err := NewNominatimGeocoder("test-agent/1.0", nil)
	require.NoError(t, err)

	_, err = g.Geocode(context.Background(), "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewNominatimGeocoderRequiresUserAgent(t *testing.T) {
	_, err := NewNominatimGeocoder("", nil)
	require.Error(t, err)
}
