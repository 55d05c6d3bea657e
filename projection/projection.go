// Package projection converts geographic coordinates into planar
// coordinates for a hex grid and back.
//
// Four projections are supported: identity, sinusoidal equal-area, azimuthal
// equidistant centered on the north pole, and spherical (web) Mercator. The
// formulas keep a fixed evaluation order so results match other
// implementations bit for bit.
//
// A Projection validates its input by default and reports a *DomainError at
// the singularities of each formula. Unguarded returns a copy that skips
// validation and lets NaN and Inf through, reproducing legacy outputs.
package projection

import (
	"fmt"
	"strings"

	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/hexgrid"
)

// Kind identifies a projection formula.
type Kind uint8

const (
	// NoOp maps longitude to x and latitude to y, in degrees.
	NoOp Kind = iota
	// Sinusoidal is the equal-area pseudo-cylindrical projection, in meters.
	Sinusoidal
	// AzimuthalEquidistant is centered on the north pole; units are radians
	// of angular distance on a unit sphere.
	AzimuthalEquidistant
	// SphericalMercator is the web Mercator projection, in meters.
	SphericalMercator
)

var kindNames = [...]string{
	NoOp:                 "noop",
	Sinusoidal:           "sinusoidal",
	AzimuthalEquidistant: "aep",
	SphericalMercator:    "mercator",
}

var kindUnits = [...]string{
	NoOp:                 "degrees",
	Sinusoidal:           "meters",
	AzimuthalEquidistant: "radians",
	SphericalMercator:    "meters",
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Kinds lists every supported projection.
func Kinds() []Kind {
	return []Kind{NoOp, Sinusoidal, AzimuthalEquidistant, SphericalMercator}
}

// ParseKind resolves a projection by name or alias, ignoring case.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "identity", "none":
		return NoOp, nil
	case "sinusoidal", "sin":
		return Sinusoidal, nil
	case "aep", "azimuthal-equidistant", "azimuthal_equidistant":
		return AzimuthalEquidistant, nil
	case "mercator", "sm", "spherical-mercator", "web-mercator":
		return SphericalMercator, nil
	}

	return NoOp, fmt.Errorf("unknown projection %q", name)
}

// Direction of a transformation.
type Direction uint8

const (
	// Forward projects geographic coordinates to the plane.
	Forward Direction = iota
	// Inverse maps planar coordinates back to geographic ones.
	Inverse
)

func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

// Projection is a stateless coordinate transform. The zero value is a
// validating NoOp projection. Safe for concurrent use.
type Projection struct {
	kind      Kind
	unguarded bool
}

// New returns a validating projection of the given kind.
func New(kind Kind) Projection {
	return Projection{kind: kind}
}

// Parse is ParseKind followed by New.
func Parse(name string) (Projection, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return Projection{}, err
	}
	return New(kind), nil
}

// Unguarded returns a copy that evaluates the raw formulas without domain
// checks. Singular inputs then yield NaN or Inf instead of an error.
func (p Projection) Unguarded() Projection {
	p.unguarded = true
	return p
}

// Guarded reports whether domain checks are enabled.
func (p Projection) Guarded() bool { return !p.unguarded }

// Kind returns the projection formula.
func (p Projection) Kind() Kind { return p.kind }

// Units names the planar units produced by the projection.
func (p Projection) Units() string {
	if int(p.kind) < len(kindUnits) {
		return kindUnits[p.kind]
	}
	return ""
}

func (p Projection) String() string {
	if p.unguarded {
		return p.kind.String() + " (unguarded)"
	}
	return p.kind.String()
}

// GeoToPoint projects a geographic point onto the plane.
func (p Projection) GeoToPoint(g geo.Point) (hexgrid.Point, error) {
	if !p.unguarded {
		if err := p.checkForward(g); err != nil {
			return hexgrid.Point{}, err
		}
	}

	var pt hexgrid.Point
	switch p.kind {
	case NoOp:
		pt = noOpForward(g)
	case Sinusoidal:
		pt = sinusoidalForward(g)
	case AzimuthalEquidistant:
		pt = aepForward(g)
	case SphericalMercator:
		pt = mercatorForward(g)
	default:
		return hexgrid.Point{}, fmt.Errorf("unsupported projection %s", p.kind)
	}

	if !p.unguarded && !finite(pt.X, pt.Y) {
		return hexgrid.Point{}, newDomainError(p.kind, Forward, g.Lon, g.Lat, "result is not finite")
	}

	return pt, nil
}

// PointToGeo maps a planar point back to geographic coordinates.
func (p Projection) PointToGeo(pt hexgrid.Point) (geo.Point, error) {
	if !p.unguarded {
		if err := p.checkInverse(pt); err != nil {
			return geo.Point{}, err
		}
	}

	var g geo.Point
	switch p.kind {
	case NoOp:
		g = noOpInverse(pt)
	case Sinusoidal:
		g = sinusoidalInverse(pt)
	case AzimuthalEquidistant:
		g = aepInverse(pt)
	case SphericalMercator:
		g = mercatorInverse(pt)
	default:
		return geo.Point{}, fmt.Errorf("unsupported projection %s", p.kind)
	}

	if !p.unguarded && !finite(g.Lon, g.Lat) {
		return geo.Point{}, newDomainError(p.kind, Inverse, pt.X, pt.Y, "result is not finite")
	}

	return g, nil
}
