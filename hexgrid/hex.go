// Package hexgrid indexes a plane with a hexagonal tiling.
//
// Cells are addressed by axial coordinates (q, r); the implicit third cube
// coordinate is s = -q-r. A Grid maps planar points to cells and back for a
// given orientation, origin and cell size, and encodes cells as Morton codes.
package hexgrid

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in the plane, in the units of the grid's cell size.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Hex is a cell in axial coordinates.
type Hex struct {
	Q int64 `json:"q" yaml:"q"`
	R int64 `json:"r" yaml:"r"`
}

// S returns the third cube coordinate.
func (h Hex) S() int64 {
	return -h.Q - h.R
}

// Add returns h+o.
func (h Hex) Add(o Hex) Hex {
	return Hex{Q: h.Q + o.Q, R: h.R + o.R}
}

// HexDistance returns the number of steps between two cells.
func HexDistance(a, b Hex) int64 {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())

	return max(dq, dr, ds)
}

// Orientation selects the hexagon layout.
type Orientation struct {
	name string
	// forward maps axial (q, r) to unit-size planar (x, y), backward inverts it.
	forward    [4]float64
	backward   [4]float64
	startAngle float64
	sinuses    [6]float64
	cosinuses  [6]float64
}

var (
	// OrientationPointy has a vertex at the top of each cell.
	OrientationPointy = makeOrientation(
		"pointy",
		[4]float64{math.Sqrt(3.0), math.Sqrt(3.0) / 2.0, 0.0, 3.0 / 2.0},
		[4]float64{math.Sqrt(3.0) / 3.0, -1.0 / 3.0, 0.0, 2.0 / 3.0},
		0.5,
	)
	// OrientationFlat has an edge at the top of each cell.
	OrientationFlat = makeOrientation(
		"flat",
		[4]float64{3.0 / 2.0, 0.0, math.Sqrt(3.0) / 2.0, math.Sqrt(3.0)},
		[4]float64{2.0 / 3.0, 0.0, -1.0 / 3.0, math.Sqrt(3.0) / 3.0},
		0.0,
	)
)

func makeOrientation(name string, forward, backward [4]float64, startAngle float64) Orientation {
	o := Orientation{
		name:       name,
		forward:    forward,
		backward:   backward,
		startAngle: startAngle,
	}
	for i := range 6 {
		angle := 2.0 * math.Pi * (startAngle + float64(i)) / 6.0
		o.sinuses[i] = math.Sin(angle)
		o.cosinuses[i] = math.Cos(angle)
	}

	return o
}

// String returns "flat" or "pointy".
func (o Orientation) String() string {
	return o.name
}

// ParseOrientation resolves an orientation by name.
func ParseOrientation(name string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flat", "flat-top":
		return OrientationFlat, nil
	case "pointy", "pointy-top":
		return OrientationPointy, nil
	}

	return Orientation{}, fmt.Errorf("unknown orientation %q (want flat or pointy)", name)
}

// roundHex snaps fractional cube coordinates to the containing cell.
// The component with the largest rounding error is recomputed from the other two.
func roundHex(q, r float64) Hex {
	s := -q - r

	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	}

	return Hex{Q: int64(rq), R: int64(rr)}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
