package convert

import (
	"math"

	"github.com/tzdybal/phtree/phpoint"
)

// Float64 converts float64 coordinates to the tree's sign-magnitude-free
// signed integer representation, one dimension at a time (spec §6.1).
//
// IEEE-754 doubles do not compare correctly when their raw bit pattern is
// interpreted as a plain two's-complement integer: the sign bit inverts
// ordering among negative numbers (a more negative double has a *larger*
// raw bit pattern, because exponent and mantissa both grow with
// magnitude). The fix is the same bias-free trick the teacher's key.go
// uses a constant bias for: reinterpret the bits as a signed int64; a
// non-negative value is already ordered correctly and is left alone; a
// negative value has every bit except the sign bit flipped, which reverses
// the "larger magnitude negative number sorts higher" raw ordering into
// the correct "larger magnitude negative number sorts lower" key ordering.
// The inverse applies the same XOR, since it is its own inverse.
type Float64 struct{}

const signFlipMask = 0x7FFFFFFFFFFFFFFF

func floatToSortableInt(d float64) int64 {
	r := int64(math.Float64bits(d))
	if r >= 0 {
		return r
	}
	return r ^ signFlipMask
}

func sortableIntToFloat(r int64) float64 {
	if r >= 0 {
		return math.Float64frombits(uint64(r))
	}
	return math.Float64frombits(uint64(r ^ signFlipMask))
}

func (Float64) Pre(p []float64) phpoint.Point {
	out := make(phpoint.Point, len(p))
	for i, d := range p {
		out[i] = floatToSortableInt(d)
	}
	return out
}

func (Float64) Post(p phpoint.Point) []float64 {
	out := make([]float64, len(p))
	for i, r := range p {
		out[i] = sortableIntToFloat(r)
	}
	return out
}

func (c Float64) PreQuery(lo, hi []float64) phpoint.Box {
	return phpoint.Box{Lo: c.Pre(lo), Hi: c.Pre(hi)}
}
