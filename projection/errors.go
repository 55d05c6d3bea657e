package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/hexgrid"
)

// ErrDomain matches every *DomainError with errors.Is.
var ErrDomain = errors.New("outside projection domain")

// DomainError reports an input on which a projection formula is undefined.
// A and B hold the offending input: lon/lat for Forward, x/y for Inverse.
type DomainError struct {
	Kind      Kind
	Direction Direction
	A, B      float64
	Reason    string
}

func newDomainError(kind Kind, dir Direction, a, b float64, reason string) *DomainError {
	return &DomainError{Kind: kind, Direction: dir, A: a, B: b, Reason: reason}
}

func (e *DomainError) Error() string {
	if e.Direction == Forward {
		return fmt.Sprintf("%s %s (lon=%g, lat=%g): %s", e.Kind, e.Direction, e.A, e.B, e.Reason)
	}
	return fmt.Sprintf("%s %s (x=%g, y=%g): %s", e.Kind, e.Direction, e.A, e.B, e.Reason)
}

// Is makes errors.Is(err, ErrDomain) hold.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func (p Projection) checkForward(g geo.Point) error {
	switch p.kind {
	case Sinusoidal, SphericalMercator:
		// tan and 1/cos diverge at the poles.
		if math.Abs(g.Lat) >= 90 {
			return newDomainError(p.kind, Forward, g.Lon, g.Lat, "latitude must be strictly between -90 and 90")
		}
	}

	return nil
}

func (p Projection) checkInverse(pt hexgrid.Point) error {
	switch p.kind {
	case Sinusoidal:
		// cos(φ) is the divisor of λ.
		if φ := pt.Y / sinusoidalRadius; math.Abs(φ) >= math.Pi/2 {
			return newDomainError(p.kind, Inverse, pt.X, pt.Y, "y maps to a pole")
		}
	case AzimuthalEquidistant:
		// sin(θ) is zero on the meridian through the pole, the pole included.
		if pt.X == 0 {
			return newDomainError(p.kind, Inverse, pt.X, pt.Y, "point lies on the meridian through the pole")
		}
	}

	return nil
}

func finite(a, b float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0) && !math.IsNaN(b) && !math.IsInf(b, 0)
}
