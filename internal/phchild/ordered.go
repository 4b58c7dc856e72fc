package phchild

import "github.com/google/btree"

// Ordered is the DIM >= 9 child container: a balanced B-tree keyed by
// address, used once 2^DIM is too large for either the dense bitmap array
// or a linear sorted-slice scan to stay competitive (spec §3.5: "DIM >= 9:
// balanced ordered map/tree"). Backed by google/btree's generic BTreeG
// rather than a hand-rolled red-black tree - the C++ original's node.h
// reaches for std::map for the same size class, and there is no reason to
// reinvent a balanced tree in Go when a maintained one already ships a
// generic, ordered-map-shaped API.
//
// As with Sorted, each value is heap-allocated once on TryEmplace and the
// tree only ever moves the (addr, *V) pair around during rebalancing, so
// handed-out *V pointers remain valid for the entry's lifetime.
type Ordered[V any] struct {
	tree *btree.BTreeG[orderedPair[V]]
}

type orderedPair[V any] struct {
	addr uint64
	ptr  *V
}

func orderedLess[V any](a, b orderedPair[V]) bool { return a.addr < b.addr }

// orderedDegree is the B-tree branching factor; google/btree's README
// recommends 32 as a reasonable general-purpose default.
const orderedDegree = 32

// NewOrdered constructs an empty ordered container.
func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{tree: btree.NewG(orderedDegree, orderedLess[V])}
}

func (o *Ordered[V]) Len() int { return o.tree.Len() }

func (o *Ordered[V]) Find(addr uint64) (*V, bool) {
	p, ok := o.tree.Get(orderedPair[V]{addr: addr})
	if !ok {
		return nil, false
	}
	return p.ptr, true
}

func (o *Ordered[V]) TryEmplace(addr uint64, val V) (*V, bool) {
	if p, ok := o.tree.Get(orderedPair[V]{addr: addr}); ok {
		return p.ptr, false
	}
	ptr := new(V)
	*ptr = val
	o.tree.ReplaceOrInsert(orderedPair[V]{addr: addr, ptr: ptr})
	return ptr, true
}

func (o *Ordered[V]) Erase(addr uint64) bool {
	_, ok := o.tree.Delete(orderedPair[V]{addr: addr})
	return ok
}

func (o *Ordered[V]) LowerBound(addr uint64) Cursor[V] {
	items := make([]item[V], 0, o.tree.Len())
	o.tree.AscendGreaterOrEqual(orderedPair[V]{addr: addr}, func(p orderedPair[V]) bool {
		items = append(items, item[V]{addr: p.addr, ptr: p.ptr})
		return true
	})
	return newCursor(items)
}

func (o *Ordered[V]) Begin() Cursor[V] {
	items := make([]item[V], 0, o.tree.Len())
	o.tree.Ascend(func(p orderedPair[V]) bool {
		items = append(items, item[V]{addr: p.addr, ptr: p.ptr})
		return true
	})
	return newCursor(items)
}

func (o *Ordered[V]) SoleEntry() (uint64, V) {
	var addr uint64
	var val V
	o.tree.Ascend(func(p orderedPair[V]) bool {
		addr, val = p.addr, *p.ptr
		return false
	})
	return addr, val
}
