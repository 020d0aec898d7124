package dto

type CalculateRouteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type CalculateRouteResponse struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
	Polyline      string  `json:"polyline"`
}
