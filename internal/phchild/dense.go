package phchild

import "github.com/tzdybal/phtree/internal/phbits"

// denseCapacity is 2^3, the largest hypercube size this container backs
// (spec §3.5: "DIM <= 3 (2^DIM <= 8)").
const denseCapacity = 8

// Dense is the DIM <= 3 child container: a fixed 8-slot array with a
// single 64-bit occupancy bitmap, giving O(1) find/insert/erase by address
// and bitmap-scan iteration. This is the direct generalization of the
// teacher's bitfield256 (art/presence_bitmap.go, bitfield.go) down to the
// 8-bit address space a node can have at DIM <= 3 - one bit of the
// occupancy word per address instead of one word of a 256-bit field per
// byte value.
type Dense[V any] struct {
	occupancy uint64
	slots     [denseCapacity]V
	size      int
}

// NewDense constructs an empty dense container.
func NewDense[V any]() *Dense[V] {
	return &Dense[V]{}
}

func (d *Dense[V]) Len() int { return d.size }

func (d *Dense[V]) Find(addr uint64) (*V, bool) {
	bit := uint64(1) << addr
	if d.occupancy&bit == 0 {
		return nil, false
	}
	return &d.slots[addr], true
}

func (d *Dense[V]) TryEmplace(addr uint64, val V) (*V, bool) {
	bit := uint64(1) << addr
	if d.occupancy&bit != 0 {
		return &d.slots[addr], false
	}
	d.occupancy |= bit
	d.slots[addr] = val
	d.size++
	return &d.slots[addr], true
}

func (d *Dense[V]) Erase(addr uint64) bool {
	bit := uint64(1) << addr
	if d.occupancy&bit == 0 {
		return false
	}
	d.occupancy &^= bit
	var zero V
	d.slots[addr] = zero
	d.size--
	return true
}

func (d *Dense[V]) LowerBound(addr uint64) Cursor[V] {
	return newCursor(d.collect(addr))
}

func (d *Dense[V]) Begin() Cursor[V] {
	return newCursor(d.collect(0))
}

func (d *Dense[V]) SoleEntry() (uint64, V) {
	addr := uint64(phbits.TrailingZeros64(d.occupancy))
	return addr, d.slots[addr]
}

// collect scans the occupancy bitmap from addr upward, trailing-zero-scan
// style (spec §3.5: "iteration via trailing-zeros scan of the bitmap").
func (d *Dense[V]) collect(from uint64) []item[V] {
	mask := d.occupancy &^ (uint64(1)<<from - 1)
	if from == 0 {
		mask = d.occupancy
	}
	items := make([]item[V], 0, phbits.OnesCount64(mask))
	for mask != 0 {
		addr := uint64(phbits.TrailingZeros64(mask))
		items = append(items, item[V]{addr: addr, ptr: &d.slots[addr]})
		mask &= mask - 1
	}
	return items
}
