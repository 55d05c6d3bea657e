// Package morton implements a Z-order (Morton) codec packing several
// integer coordinates into one 64-bit code by interleaving their bits.
//
// Bit i of dimension d lands at position i*dimensions+d, so codes of nearby
// coordinates share their high bits.
package morton

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLayout is returned by Make64 for an unusable dimensions/bits pair.
	ErrInvalidLayout = errors.New("invalid morton layout")
	// ErrDimensionMismatch is returned when the number of values differs from the dimensions.
	ErrDimensionMismatch = errors.New("number of values does not match dimensions")
	// ErrValueOutOfRange is returned when a value does not fit into the bits of its field.
	ErrValueOutOfRange = errors.New("value out of range")
)

// Morton64 packs up to 64 bits in total.
type Morton64 struct {
	dimensions uint64
	bits       uint64
}

// Make64 creates a codec for the given number of dimensions with bits per dimension.
func Make64(dimensions, bits uint64) (*Morton64, error) {
	if dimensions == 0 || bits == 0 || dimensions*bits > 64 {
		return nil, fmt.Errorf("%w: %d dimensions x %d bits", ErrInvalidLayout, dimensions, bits)
	}

	return &Morton64{dimensions: dimensions, bits: bits}, nil
}

// Dimensions returns the number of packed values.
func (m *Morton64) Dimensions() uint64 { return m.dimensions }

// Bits returns the field width of each value.
func (m *Morton64) Bits() uint64 { return m.bits }

// Pack interleaves unsigned values. Each value must be below 2^bits.
func (m *Morton64) Pack(values ...uint64) (int64, error) {
	if uint64(len(values)) != m.dimensions {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(values), m.dimensions)
	}

	for _, v := range values {
		if m.bits < 64 && v>>m.bits != 0 {
			return 0, fmt.Errorf("%w: %d needs more than %d bits", ErrValueOutOfRange, v, m.bits)
		}
	}

	return int64(m.interleave(values)), nil
}

// Unpack splits a code produced by Pack back into its values.
func (m *Morton64) Unpack(code int64) []uint64 {
	c := uint64(code)
	values := make([]uint64, m.dimensions)
	for d := range values {
		var v uint64
		for i := uint64(0); i < m.bits; i++ {
			v |= ((c >> (i*m.dimensions + uint64(d))) & 1) << i
		}
		values[d] = v
	}

	return values
}

// SPack interleaves signed values stored as sign and magnitude: the top bit
// of each field is the sign, so the magnitude must be below 2^(bits-1).
func (m *Morton64) SPack(values ...int64) (int64, error) {
	if uint64(len(values)) != m.dimensions {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(values), m.dimensions)
	}

	fields := make([]uint64, len(values))
	for d, v := range values {
		f, err := m.signField(v)
		if err != nil {
			return 0, err
		}
		fields[d] = f
	}

	return int64(m.interleave(fields)), nil
}

// SUnpack splits a code produced by SPack back into signed values.
func (m *Morton64) SUnpack(code int64) []int64 {
	sign := uint64(1) << (m.bits - 1)
	fields := m.Unpack(code)

	values := make([]int64, len(fields))
	for d, f := range fields {
		v := int64(f &^ sign)
		if f&sign != 0 {
			v = -v
		}
		values[d] = v
	}

	return values
}

func (m *Morton64) signField(v int64) (uint64, error) {
	limit := uint64(1) << (m.bits - 1)
	magnitude := uint64(v)
	if v < 0 {
		magnitude = -magnitude
	}
	if magnitude >= limit {
		return 0, fmt.Errorf("%w: |%d| must be below %d", ErrValueOutOfRange, v, limit)
	}

	if v < 0 {
		return magnitude | limit, nil
	}
	return magnitude, nil
}

func (m *Morton64) interleave(values []uint64) uint64 {
	var code uint64
	for d, v := range values {
		for i := uint64(0); i < m.bits; i++ {
			code |= ((v >> i) & 1) << (i*m.dimensions + uint64(d))
		}
	}

	return code
}
