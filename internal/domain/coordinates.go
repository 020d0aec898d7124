package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64 `json:"longitude"`
	Lat float64 `json:"latitude"`
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// LocationAtMiles estimates where along a route geometry a given mileage
// falls, assuming route points are roughly evenly spaced. Mileage outside
// [0, totalMiles] clamps to the nearest endpoint.
func LocationAtMiles(geometry []Coordinates, totalMiles, miles float64) Coordinates {
	if len(geometry) == 0 {
		return Coordinates{}
	}
	if len(geometry) == 1 || totalMiles <= 0 || miles <= 0 {
		return geometry[0]
	}
	if miles >= totalMiles {
		return geometry[len(geometry)-1]
	}

	frac := miles / totalMiles
	idx := int(frac * float64(len(geometry)-1))
	return geometry[idx]
}
