// Package phchild implements the per-node child container (spec §3.5): a
// map from hypercube address (0 .. 2^DIM-1) to an entry, with three
// backing strategies chosen by dimensionality at tree-construction time -
// a dense bitmap array for DIM <= 3, a sorted flat slice for 4 <= DIM <= 8,
// and a balanced ordered tree for DIM >= 9.
//
// This generalizes the teacher's node-kind dispatch (art_node.go's
// node5/node51/node256, selected by how many children a node currently
// holds and cast through unsafe.Pointer) into a dispatch by DIM fixed once
// per tree instance, matching spec §9's "prefer monomorphization by DIM at
// construction... over dynamic dispatch per node". Container[V] does not
// know about Entry; it is instantiated with V = phnode.Entry[T] by the
// node layer, keeping phchild free of a dependency on phnode.
package phchild

// Cursor walks a Container in ascending address order, starting from
// wherever it was produced (Begin or LowerBound). A zero-value Cursor is
// not valid; use Begin()/LowerBound() to obtain one.
type Cursor[V any] struct {
	items []item[V]
	pos   int
}

// item pairs an address with a pointer into the container's own storage,
// never a copy of the value. Every backing strategy allocates a value's
// storage once at insertion and hands out *V to that same storage for the
// value's entire lifetime in the container (spec §5: "nodes and values are
// heap-allocated individually"), so a Cursor built by collecting items stays
// a live, mutable view rather than a read-only snapshot.
type item[V any] struct {
	addr uint64
	ptr  *V
}

// Valid reports whether the cursor currently points at an entry.
func (c *Cursor[V]) Valid() bool { return c.pos < len(c.items) }

// Addr returns the address the cursor currently points at. Valid() must be
// true.
func (c *Cursor[V]) Addr() uint64 { return c.items[c.pos].addr }

// Value returns a mutable pointer to the value at the cursor's current
// position, aliasing the container's own storage. Valid() must be true.
func (c *Cursor[V]) Value() *V { return c.items[c.pos].ptr }

// Next advances the cursor by one position.
func (c *Cursor[V]) Next() { c.pos++ }

func newCursor[V any](items []item[V]) Cursor[V] {
	return Cursor[V]{items: items}
}

// Container is the node-local entry map contract every backing strategy
// satisfies (spec §3.5): ordered iteration by address, find, lower_bound,
// try_emplace, erase, size.
type Container[V any] interface {
	// Len returns the number of stored entries.
	Len() int

	// Find returns a mutable pointer to the value at addr, or (nil, false)
	// if no entry is stored there.
	Find(addr uint64) (*V, bool)

	// TryEmplace inserts val at addr if absent, returning a pointer to the
	// stored value and true. If an entry already occupies addr, it is left
	// untouched and TryEmplace returns a pointer to it and false.
	TryEmplace(addr uint64, val V) (*V, bool)

	// Erase removes the entry at addr, if any, and reports whether one was
	// removed.
	Erase(addr uint64) bool

	// LowerBound returns a cursor positioned at the first stored address
	// >= addr (or an exhausted cursor if none exists).
	LowerBound(addr uint64) Cursor[V]

	// Begin returns a cursor positioned at the smallest stored address.
	Begin() Cursor[V]

	// SoleEntry returns the single stored entry. It must only be called
	// when Len() == 1; used by node merging (spec §4.3.3).
	SoleEntry() (addr uint64, val V)
}

// New picks a node's backing container strategy from its dimensionality
// (spec §3.5): a dense bitmap array for DIM <= 3 (2^DIM <= 8 addresses), a
// sorted flat slice for 4 <= DIM <= 8, and a google/btree-backed ordered
// map for DIM >= 9. Every node of a given tree is built with the same DIM,
// so this dispatch happens once per node construction, never per access.
func New[V any](dim int) Container[V] {
	switch {
	case dim <= 3:
		return NewDense[V]()
	case dim <= 8:
		return NewSorted[V]()
	default:
		return NewOrdered[V]()
	}
}
