// Package phpoint defines the fixed-width key tuples used throughout the
// PH-Tree: points (the internal key representation) and boxes (axis-aligned
// query/key ranges built from two points).
package phpoint

// Point is a DIM-dimensional key. Every coordinate is a signed 64 bit
// integer in bit-sortable form, i.e. already converted by a Converter
// (see package convert) if the caller's native key type is not an integer
// tuple. The dimensionality of a Point is fixed by the tree it was produced
// for; the type itself does not carry DIM, Points of different tree
// instances must not be mixed.
type Point []int64

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	if p == nil {
		return nil
	}
	cp := make(Point, len(p))
	copy(cp, p)
	return cp
}

// Equal reports whether p and other hold the same coordinates.
func (p Point) Equal(other Point) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Box is an axis-aligned DIM-dimensional range, inclusive on both ends:
// Lo[d] <= Hi[d] for every dimension d is expected of a well-formed Box,
// but is not enforced here (callers such as window queries get an empty
// result for a malformed box rather than a panic).
type Box struct {
	Lo Point
	Hi Point
}

// Contains reports whether k lies within the box, coordinate-wise
// inclusive. This implements the in_range check of the spec (§4.1, C1).
func (b Box) Contains(k Point) bool {
	for d := range k {
		if k[d] < b.Lo[d] || k[d] > b.Hi[d] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the box.
func (b Box) Clone() Box {
	return Box{Lo: b.Lo.Clone(), Hi: b.Hi.Clone()}
}
