package domain

import "math"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// IsZero reports whether the position was never set.
func (c Coordinates) IsZero() bool { return c.Lon == 0 && c.Lat == 0 }

// DistanceKm returns the great-circle distance between two points.
func (c Coordinates) DistanceKm(o Coordinates) float64 {
	const earthRadiusKm = 6371.0
	rad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := rad(o.Lat - c.Lat)
	dLon := rad(o.Lon - c.Lon)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(c.Lat))*math.Cos(rad(o.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
