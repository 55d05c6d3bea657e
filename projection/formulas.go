package projection

import (
	"math"

	"github.com/golang/geo/s1"

	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/hexgrid"
)

// sinusoidalRadius is the radius of the sphere with the earth's equatorial circumference.
const sinusoidalRadius = (geo.EarthCircumference / 2) / math.Pi

func noOpForward(g geo.Point) hexgrid.Point {
	return hexgrid.Point{X: g.Lon, Y: g.Lat}
}

func noOpInverse(pt hexgrid.Point) geo.Point {
	return geo.Point{Lon: pt.X, Lat: pt.Y}
}

func sinusoidalForward(g geo.Point) hexgrid.Point {
	λ := radians(g.Lon + 180)
	φ := radians(g.Lat)
	x := (λ * math.Cos(φ)) * sinusoidalRadius
	y := φ * sinusoidalRadius

	return hexgrid.Point{X: x, Y: y}
}

func sinusoidalInverse(pt hexgrid.Point) geo.Point {
	φ := pt.Y / sinusoidalRadius
	λ := pt.X / (math.Cos(φ) * sinusoidalRadius)
	lon := degrees(λ) - 180
	lat := degrees(φ)

	return geo.Point{Lon: lon, Lat: lat}
}

func aepForward(g geo.Point) hexgrid.Point {
	θ := radians(g.Lon)
	ρ := math.Pi/2 - radians(g.Lat)
	x := ρ * math.Sin(θ)
	y := -ρ * math.Cos(θ)

	return hexgrid.Point{X: x, Y: y}
}

func aepInverse(pt hexgrid.Point) geo.Point {
	θ := math.Atan2(pt.X, -pt.Y)
	ρ := pt.X / math.Sin(θ)
	lat := degrees(math.Pi/2 - ρ)
	lon := degrees(θ)

	return geo.Point{Lon: lon, Lat: lat}
}

func mercatorForward(g geo.Point) hexgrid.Point {
	latR := radians(g.Lat)
	x := g.Lon * geo.EarthMetersPerDegree
	y := (math.Log(math.Tan(latR)+(1/math.Cos(latR))) / math.Pi) * (geo.EarthCircumference / 2)

	return hexgrid.Point{X: x, Y: y}
}

func mercatorInverse(pt hexgrid.Point) geo.Point {
	lon := pt.X / geo.EarthMetersPerDegree
	lat := math.Asin(math.Tanh((pt.Y/(geo.EarthCircumference/2))*math.Pi)) * (180 / math.Pi)

	return geo.Point{Lon: lon, Lat: lat}
}

// radians computes deg·(π/180).
func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

// degrees computes rad/(π/180).
func degrees(rad float64) float64 {
	return (s1.Angle(rad) * s1.Radian).Degrees()
}
