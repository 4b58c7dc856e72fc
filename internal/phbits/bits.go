// Package phbits implements the bit-level address arithmetic shared by
// every PH-Tree node: hypercube addressing, prefix divergence, and box
// containment. These are the only three primitives the rest of the tree
// needs to agree on (spec §4.1); every other component builds on them.
package phbits

import (
	"math/bits"

	"github.com/tzdybal/phtree/phpoint"
)

// MaxBitWidth is W, the number of bits per key dimension.
const MaxBitWidth = 64

// HCAddress computes the hypercube address of k at the given postfix
// length: the d-th bit of the result, counted from the most significant
// end, is bit postfixLen of k[d], so dimension 0 is the most significant
// bit of the address. There are exactly 2^len(k)
// possible addresses at any given level.
//
// leading/trailing zero counts elsewhere in this package use math/bits,
// which lowers to the CLZ/CTZ hardware instruction on every architecture
// that has one — the "platform intrinsic where available" that spec §4.1
// asks for.
func HCAddress(k phpoint.Point, postfixLen uint8) uint64 {
	var addr uint64
	bit := uint64(1) << postfixLen
	for _, v := range k {
		addr <<= 1
		addr |= (uint64(v) & bit) >> postfixLen
	}
	return addr
}

// DivergingBits returns the bit-width of the longest common prefix's
// complement across all dimensions of k1 and k2: OR together the
// per-dimension XORs, then return MaxBitWidth minus the number of leading
// zeros of that OR. Two equal keys diverge in 0 bits.
func DivergingBits(k1, k2 phpoint.Point) uint8 {
	var diff uint64
	for i := range k1 {
		diff |= uint64(k1[i]) ^ uint64(k2[i])
	}
	if diff == 0 {
		return 0
	}
	return uint8(MaxBitWidth - bits.LeadingZeros64(diff))
}

// InRange reports whether k lies coordinate-wise within [lo, hi].
func InRange(k, lo, hi phpoint.Point) bool {
	for d := range k {
		if k[d] < lo[d] || k[d] > hi[d] {
			return false
		}
	}
	return true
}

// KeyEqualMasked reports whether a and b agree in every bit set in mask,
// for every dimension. This is the "match rule for an internal entry" of
// spec §4.3.4: comparing only bits from child_postfix_len+1 upward.
func KeyEqualMasked(a, b phpoint.Point, mask uint64) bool {
	for i := range a {
		if (uint64(a[i])^uint64(b[i]))&mask != 0 {
			return false
		}
	}
	return true
}

// PrefixMask returns a mask with every bit at or above position postfixLen+1
// set (and every bit at or below postfixLen clear), for use with KeyEqualMasked when
// testing whether a key still falls under an internal entry's compressed
// infix (spec §4.3.4). postfixLen+1 == MaxBitWidth yields an all-zero mask,
// which is correct: there is no prefix left to compare.
func PrefixMask(postfixLen uint8) uint64 {
	return ^uint64(0) << (uint(postfixLen) + 1)
}

// TrailingZeros64 exposes math/bits.TrailingZeros64 under the package's own
// name so callers scanning occupancy bitmaps (phchild's dense container)
// don't need a direct math/bits import for this one call site.
func TrailingZeros64(x uint64) int {
	return bits.TrailingZeros64(x)
}

// OnesCount64 is used by consistency checks and bitmap occupancy counts.
func OnesCount64(x uint64) int {
	return bits.OnesCount64(x)
}
