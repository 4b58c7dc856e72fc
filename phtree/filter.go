package phtree

import (
	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/internal/phbits"
	"github.com/tzdybal/phtree/phpoint"
)

// Filter lets a query skip entire node subtrees and individual entries
// before they are materialized. Grounded on the original source's
// phtree/common/filter.h: EntryValid mirrors IsEntryValid, NodeValid
// mirrors IsNodeValid. bitsToIgnore is the number of low-order bits of
// prefix that vary across the node (postfixLen+1); every query calls
// NodeValid before descending into a node and EntryValid before yielding
// a leaf, in internal (post-conversion) key space.
type Filter[T any] interface {
	EntryValid(key phpoint.Point, value T) bool
	NodeValid(prefix phpoint.Point, bitsToIgnore int) bool
}

// NoOpFilter accepts every entry and every node. It is the default filter
// used when a query is given none (spec: "By default all entries are
// returned").
type NoOpFilter[T any] struct{}

func (NoOpFilter[T]) EntryValid(phpoint.Point, T) bool    { return true }
func (NoOpFilter[T]) NodeValid(phpoint.Point, int) bool { return true }

// BoxFilter accepts entries and nodes that intersect an axis-aligned box
// given in internal (post-conversion) key space, grounded on filter.h's
// FilterAABB.
type BoxFilter[T any] struct {
	Lo, Hi phpoint.Point
}

func (f BoxFilter[T]) EntryValid(key phpoint.Point, _ T) bool {
	return phpoint.Box{Lo: f.Lo, Hi: f.Hi}.Contains(key)
}

func (f BoxFilter[T]) NodeValid(prefix phpoint.Point, bitsToIgnore int) bool {
	if bitsToIgnore >= phbits.MaxBitWidth-1 {
		return true
	}
	nodeMinBits := ^uint64(0) << uint(bitsToIgnore)
	nodeMaxBits := ^nodeMinBits
	for i := range prefix {
		p := uint64(prefix[i])
		if int64(p|nodeMaxBits) < f.Lo[i] || int64(p&nodeMinBits) > f.Hi[i] {
			return false
		}
	}
	return true
}

// SphereFilter accepts entries and nodes that intersect a sphere of the
// given radius around center, measured in external key space via dist.
// Grounded on filter.h's FilterSphere, generalized from always-Euclidean
// to an arbitrary distance.Func.
type SphereFilter[TExt any, T any] struct {
	Center TExt
	Radius float64
	Conv   convert.Converter[TExt]
	Dist   func(a, b TExt) float64
}

func (f SphereFilter[TExt, T]) EntryValid(key phpoint.Point, _ T) bool {
	ext := f.Conv.Post(key)
	return f.Dist(ext, f.Center) <= f.Radius
}

func (f SphereFilter[TExt, T]) NodeValid(prefix phpoint.Point, bitsToIgnore int) bool {
	// Always descends: a tight sphere/node bound needs per-dimension
	// post-conversion distance, which only makes sense for a known scalar
	// distance metric (ConverterIEEE's FilterSphere in the original source
	// is specialized exactly that way). Node-level pruning for arbitrary
	// distance.Func is left to BoxFilter, whose box bound is exact and
	// conversion-agnostic.
	return true
}
