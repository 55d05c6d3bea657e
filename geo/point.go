// Package geo holds geographic value types, shared earth constants and
// GeoJSON structures.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// EarthCircumference is the equatorial circumference in meters.
	EarthCircumference float64 = 40075016.685578488
	// EarthMetersPerDegree is the length of one degree of longitude at the equator.
	EarthMetersPerDegree float64 = 111319.49079327358
)

// Point is a geographic coordinate in degrees.
type Point struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// Coordinates returns the point in GeoJSON order: [lon, lat].
func (p Point) Coordinates() []float64 {
	return []float64{p.Lon, p.Lat}
}

// String formats the point as "lon,lat".
func (p Point) String() string {
	return strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

// ParsePoint parses a "lon,lat" pair.
func ParsePoint(s string) (Point, error) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q: expected lon,lat", s)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: longitude: %w", s, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: latitude: %w", s, err)
	}

	if math.IsNaN(lon) || math.IsNaN(lat) {
		return Point{}, fmt.Errorf("point %q: NaN coordinate", s)
	}

	return Point{Lon: lon, Lat: lat}, nil
}
