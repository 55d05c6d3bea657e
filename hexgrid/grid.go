package hexgrid

import "github.com/woozymasta/hexgeo/morton"

// Grid is a hexagonal tiling of the plane. It is read-only after construction.
type Grid struct {
	orientation Orientation
	origin      Point
	size        Point
	codec       *morton.Morton64
}

// NewGrid creates a grid. size holds the cell radius along each axis;
// codec must have two dimensions.
func NewGrid(orientation Orientation, origin, size Point, codec *morton.Morton64) *Grid {
	return &Grid{
		orientation: orientation,
		origin:      origin,
		size:        size,
		codec:       codec,
	}
}

// Orientation returns the hexagon layout of the grid.
func (g *Grid) Orientation() Orientation { return g.orientation }

// Origin returns the planar center of hex (0, 0).
func (g *Grid) Origin() Point { return g.origin }

// Size returns the cell radius along each axis.
func (g *Grid) Size() Point { return g.size }

// HexToCode encodes a cell. It fails with morton.ErrValueOutOfRange when a
// coordinate does not fit into the codec.
func (g *Grid) HexToCode(hex Hex) (int64, error) {
	return g.codec.SPack(hex.Q, hex.R)
}

// HexFromCode decodes a cell encoded by HexToCode.
func (g *Grid) HexFromCode(code int64) Hex {
	v := g.codec.SUnpack(code)
	return Hex{Q: v[0], R: v[1]}
}

// HexAt returns the cell containing a point.
func (g *Grid) HexAt(point Point) Hex {
	x := (point.X - g.origin.X) / g.size.X
	y := (point.Y - g.origin.Y) / g.size.Y

	b := g.orientation.backward
	q := b[0]*x + b[1]*y
	r := b[2]*x + b[3]*y

	return roundHex(q, r)
}

// HexCenter returns the planar center of a cell.
func (g *Grid) HexCenter(hex Hex) Point {
	f := g.orientation.forward
	q, r := float64(hex.Q), float64(hex.R)

	return Point{
		X: (f[0]*q+f[1]*r)*g.size.X + g.origin.X,
		Y: (f[2]*q+f[3]*r)*g.size.Y + g.origin.Y,
	}
}

// HexCorners returns the six vertices of a cell, counter-clockwise starting
// at the orientation's start angle.
func (g *Grid) HexCorners(hex Hex) [6]Point {
	var corners [6]Point
	center := g.HexCenter(hex)
	for i := range corners {
		corners[i] = Point{
			X: center.X + g.size.X*g.orientation.cosinuses[i],
			Y: center.Y + g.size.Y*g.orientation.sinuses[i],
		}
	}

	return corners
}

// HexNeighbors returns every cell within the given number of rings around
// hex, excluding hex itself, ordered by q then r.
func (g *Grid) HexNeighbors(hex Hex, layers int64) []Hex {
	if layers <= 0 {
		return []Hex{}
	}

	neighbors := make([]Hex, 0, 3*layers*(layers+1))
	for q := -layers; q <= layers; q++ {
		r1 := max(-layers, -q-layers)
		r2 := min(layers, -q+layers)
		for r := r1; r <= r2; r++ {
			if q == 0 && r == 0 {
				continue
			}
			neighbors = append(neighbors, hex.Add(Hex{Q: q, R: r}))
		}
	}

	return neighbors
}
