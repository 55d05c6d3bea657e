package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// earthRadius is the radius of the sphere implied by EarthCircumference.
const earthRadius = EarthCircumference / (2 * math.Pi)

// DistanceTo returns the great-circle distance in meters to another point.
func (p Point) DistanceTo(other Point) float64 {
	a := s2.LatLngFromDegrees(p.Lat, p.Lon)
	b := s2.LatLngFromDegrees(other.Lat, other.Lon)

	return a.Distance(b).Radians() * earthRadius
}

// AlmostEqual reports whether both components differ by at most tolerance degrees.
func (p Point) AlmostEqual(other Point, tolerance float64) bool {
	return math.Abs(p.Lon-other.Lon) <= tolerance && math.Abs(p.Lat-other.Lat) <= tolerance
}
