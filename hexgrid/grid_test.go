package hexgrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/hexgeo/morton"
)

const precision = 0.00001

func newTestGrid(t *testing.T, orientation Orientation, size float64) *Grid {
	t.Helper()

	codec, err := morton.Make64(2, 32)
	require.NoError(t, err)

	return NewGrid(orientation, Point{X: 0, Y: 0}, Point{X: size, Y: size}, codec)
}

func TestParseOrientation(t *testing.T) {
	o, err := ParseOrientation("Flat")
	require.NoError(t, err)
	assert.Equal(t, "flat", o.String())

	o, err = ParseOrientation("pointy-top")
	require.NoError(t, err)
	assert.Equal(t, OrientationPointy, o)

	_, err = ParseOrientation("round")
	assert.Error(t, err)
}

func TestHexCenterFlat(t *testing.T) {
	g := newTestGrid(t, OrientationFlat, 10)

	c := g.HexCenter(Hex{Q: 1, R: 0})
	assert.InDelta(t, 15.0, c.X, precision)
	assert.InDelta(t, 10*math.Sqrt(3)/2, c.Y, precision)

	c = g.HexCenter(Hex{Q: 0, R: 1})
	assert.InDelta(t, 0.0, c.X, precision)
	assert.InDelta(t, 10*math.Sqrt(3), c.Y, precision)
}

func TestHexAtCenterRoundTrip(t *testing.T) {
	for _, o := range []Orientation{OrientationFlat, OrientationPointy} {
		g := newTestGrid(t, o, 500)
		for q := int64(-20); q <= 20; q += 3 {
			for r := int64(-20); r <= 20; r += 4 {
				hex := Hex{Q: q, R: r}
				assert.Equal(t, hex, g.HexAt(g.HexCenter(hex)), "%s %v", o, hex)
			}
		}
	}
}

func TestHexAtNearCorners(t *testing.T) {
	g := newTestGrid(t, OrientationPointy, 1)
	hex := Hex{Q: 4, R: -7}
	center := g.HexCenter(hex)

	// Points slightly inside each corner still belong to the cell.
	for _, corner := range g.HexCorners(hex) {
		inside := Point{
			X: center.X + (corner.X-center.X)*0.9,
			Y: center.Y + (corner.Y-center.Y)*0.9,
		}
		assert.Equal(t, hex, g.HexAt(inside))
	}
}

func TestHexCornersFlat(t *testing.T) {
	g := newTestGrid(t, OrientationFlat, 2)
	corners := g.HexCorners(Hex{})

	expected := []Point{
		{2, 0},
		{1, math.Sqrt(3)},
		{-1, math.Sqrt(3)},
		{-2, 0},
		{-1, -math.Sqrt(3)},
		{1, -math.Sqrt(3)},
	}
	for i, want := range expected {
		assert.InDelta(t, want.X, corners[i].X, precision, "corner %d x", i)
		assert.InDelta(t, want.Y, corners[i].Y, precision, "corner %d y", i)
	}
}

func TestHexCornersPointy(t *testing.T) {
	g := newTestGrid(t, OrientationPointy, 1)
	corners := g.HexCorners(Hex{})

	// First corner sits at 30 degrees, the second straight up.
	assert.InDelta(t, math.Sqrt(3)/2, corners[0].X, precision)
	assert.InDelta(t, 0.5, corners[0].Y, precision)
	assert.InDelta(t, 0.0, corners[1].X, precision)
	assert.InDelta(t, 1.0, corners[1].Y, precision)
}

func TestHexNeighbors(t *testing.T) {
	g := newTestGrid(t, OrientationFlat, 1)
	origin := Hex{Q: 5, R: -3}

	assert.Empty(t, g.HexNeighbors(origin, 0))
	assert.Empty(t, g.HexNeighbors(origin, -2))

	for layers := int64(1); layers <= 4; layers++ {
		neighbors := g.HexNeighbors(origin, layers)
		require.Len(t, neighbors, int(3*layers*(layers+1)))

		seen := make(map[Hex]bool)
		for _, n := range neighbors {
			assert.NotEqual(t, origin, n)
			assert.False(t, seen[n], "duplicate %v", n)
			seen[n] = true

			d := HexDistance(origin, n)
			assert.True(t, d >= 1 && d <= layers, "distance %d for %v", d, n)
		}
	}
}

func TestHexNeighborsFirstRing(t *testing.T) {
	g := newTestGrid(t, OrientationFlat, 1)

	assert.Equal(t, []Hex{
		{Q: -1, R: 0}, {Q: -1, R: 1},
		{Q: 0, R: -1}, {Q: 0, R: 1},
		{Q: 1, R: -1}, {Q: 1, R: 0},
	}, g.HexNeighbors(Hex{}, 1))
}

func TestHexDistance(t *testing.T) {
	assert.Equal(t, int64(0), HexDistance(Hex{Q: 2, R: 2}, Hex{Q: 2, R: 2}))
	assert.Equal(t, int64(3), HexDistance(Hex{}, Hex{Q: 3, R: -3}))
	assert.Equal(t, int64(7), HexDistance(Hex{Q: -2, R: -1}, Hex{Q: 3, R: 1}))
}

func TestHexCode(t *testing.T) {
	g := newTestGrid(t, OrientationFlat, 500)

	for _, hex := range []Hex{{}, {Q: -10835, R: 11036}, {Q: 1<<31 - 1, R: -(1<<31 - 1)}} {
		code, err := g.HexToCode(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, g.HexFromCode(code))
	}

	code, err := g.HexToCode(Hex{Q: -10835, R: 11036})
	require.NoError(t, err)
	assert.Equal(t, int64(4611686018642219941), code)

	_, err = g.HexToCode(Hex{Q: 1 << 31, R: 0})
	assert.ErrorIs(t, err, morton.ErrValueOutOfRange)
}
