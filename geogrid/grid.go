// Package geogrid addresses hexagonal cells by geographic coordinates.
//
// A Grid pairs a projection with a planar hexgrid.Grid: geographic inputs are
// projected before they reach the hex grid and planar outputs are unprojected
// on the way back. Cell identifiers pass through untouched.
package geogrid

import (
	"errors"
	"fmt"
	"math"

	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/hexgrid"
	"github.com/woozymasta/hexgeo/morton"
	"github.com/woozymasta/hexgeo/projection"
)

const (
	codeDimensions = 2
	codeBits       = 32
)

// ErrInvalidSize is returned by New for a cell size that is not a positive number.
var ErrInvalidSize = errors.New("cell size must be a positive number")

// Grid is a hex grid over the earth. It is immutable and safe for concurrent use.
type Grid struct {
	hexgrid    *hexgrid.Grid
	projection projection.Projection
}

// New creates a grid of cells with the given radius, expressed in the
// planar units of the projection.
func New(orientation hexgrid.Orientation, size float64, proj projection.Projection) (*Grid, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	codec, err := morton.Make64(codeDimensions, codeBits)
	if err != nil {
		return nil, err
	}

	return &Grid{
		hexgrid: hexgrid.NewGrid(
			orientation,
			hexgrid.Point{X: 0.0, Y: 0.0},
			hexgrid.Point{X: size, Y: size},
			codec,
		),
		projection: proj,
	}, nil
}

// Projection returns the projection used at the geo/planar boundary.
func (g *Grid) Projection() projection.Projection { return g.projection }

// Orientation returns the hexagon layout.
func (g *Grid) Orientation() hexgrid.Orientation { return g.hexgrid.Orientation() }

// Size returns the cell radius in planar units.
func (g *Grid) Size() float64 { return g.hexgrid.Size().X }

// HexToCode encodes a cell. Errors from the codec are returned unchanged.
func (g *Grid) HexToCode(hex hexgrid.Hex) (int64, error) {
	return g.hexgrid.HexToCode(hex)
}

// HexFromCode decodes a cell.
func (g *Grid) HexFromCode(code int64) hexgrid.Hex {
	return g.hexgrid.HexFromCode(code)
}

// HexAt returns the cell containing a geographic point.
func (g *Grid) HexAt(point geo.Point) (hexgrid.Hex, error) {
	p, err := g.projection.GeoToPoint(point)
	if err != nil {
		return hexgrid.Hex{}, err
	}

	return g.hexgrid.HexAt(p), nil
}

// HexCenter returns the geographic position of a cell's center.
func (g *Grid) HexCenter(hex hexgrid.Hex) (geo.Point, error) {
	return g.projection.PointToGeo(g.hexgrid.HexCenter(hex))
}

// HexCorners returns the geographic positions of a cell's six vertices, in
// the order produced by the hex grid.
func (g *Grid) HexCorners(hex hexgrid.Hex) ([]geo.Point, error) {
	planar := g.hexgrid.HexCorners(hex)

	corners := make([]geo.Point, 0, len(planar))
	for _, p := range planar {
		c, err := g.projection.PointToGeo(p)
		if err != nil {
			return nil, err
		}
		corners = append(corners, c)
	}

	return corners, nil
}

// HexNeighbors returns the cells within the given number of rings around hex.
func (g *Grid) HexNeighbors(hex hexgrid.Hex, layers int64) []hexgrid.Hex {
	return g.hexgrid.HexNeighbors(hex, layers)
}
