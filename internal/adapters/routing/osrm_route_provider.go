package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/hawi-me/eld-trip-planner-backend/internal/domain"
	"github.com/hawi-me/eld-trip-planner-backend/internal/platform/obs"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
	"github.com/twpayne/go-polyline"
)

const metersPerMile = 1609.344

// OSRMRouteProvider implements the RouteProvider port against an OSRM
// route service (the public demo server by default).
//
// It coordinates:
//   - Persistent route caching keyed by coordinate pairs
//   - External API calls with retry/backoff
//   - Polyline geometry decoding
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	client  restClient
	baseURL string
	profile string
	cache   RouteCache
}

func NewOSRMRouteProvider(baseURL, userAgent string, cache RouteCache) (*OSRMRouteProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}

	return &OSRMRouteProvider{
		client:  newRestClient(userAgent),
		baseURL: baseURL,
		profile: "driving",
		cache:   cache,
	}, nil
}

// coordKey renders a coordinate as a stable cache key. Six decimal places
// is roughly 10cm of precision, well below road-network resolution.
func coordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lon, c.Lat)
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		DistanceMeters  float64 `json:"distance"`
		DurationSeconds float64 `json:"duration"`
		Geometry        string  `json:"geometry"`
	} `json:"routes"`
}

// GetRoute returns the fastest driving route between two points, consulting
// the persistent cache before issuing an external call.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	originKey := coordKey(origin)
	destKey := coordKey(destination)

	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, originKey, destKey)
		if err != nil {
			return ports.RouteResult{}, fmt.Errorf("route cache lookup: %w", err)
		}
		if ok {
			cached.Geometry, err = DecodeGeometry(cached.Polyline)
			if err != nil {
				return ports.RouteResult{}, fmt.Errorf("decode cached geometry: %w", err)
			}
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s;%s",
		o.baseURL, o.profile, url.PathEscape(originKey), url.PathEscape(destKey),
	)

	resp, err := o.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "polyline")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("route request failed: %v: %w", err, domain.ErrRouteUnavailable)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf(
			"no route between %s and %s (code=%q): %w",
			originKey, destKey, decoded.Code, domain.ErrRouteUnavailable,
		)
	}

	route := decoded.Routes[0]
	geometry, err := DecodeGeometry(route.Geometry)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode route geometry: %w", err)
	}

	out := ports.RouteResult{
		DistanceMiles: route.DistanceMeters / metersPerMile,
		DurationHours: route.DurationSeconds / 3600,
		Geometry:      geometry,
		Polyline:      route.Geometry,
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, originKey, destKey, out); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return out, nil
}

// DecodeGeometry decodes an OSRM polyline (precision 5, lat/lon order) into
// coordinate structs.
func DecodeGeometry(encoded string) ([]domain.Coordinates, error) {
	if encoded == "" {
		return nil, nil
	}

	pairs, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, errors.New("decode polyline: trailing bytes")
	}

	out := make([]domain.Coordinates, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.Coordinates{Lat: p[0], Lon: p[1]})
	}
	return out, nil
}

// EncodeGeometry is the inverse of DecodeGeometry.
func EncodeGeometry(coords []domain.Coordinates) string {
	if len(coords) == 0 {
		return ""
	}

	pairs := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pairs = append(pairs, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pairs))
}
