// Package geo provides great-circle distance helpers for the event
// discovery radius filter.
package geo

import "math"

const earthRadiusMeters = 6371008.8

// Point is a WGS84 coordinate pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceMeters returns the haversine distance between two points.
func DistanceMeters(a, b Point) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// InsideCircle reports whether p lies within radiusMeters of center.
func InsideCircle(p, center Point, radiusMeters float64) bool {
	return DistanceMeters(p, center) <= radiusMeters
}
