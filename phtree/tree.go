// Package phtree implements a PH-Tree: a multi-dimensional index over
// fixed-width integer key tuples, ordered by hypercube address (Z-order)
// at every level. It behaves like a map keyed by TExt (the caller's
// native key type, translated to and from the tree's internal integer
// key space by a convert.Converter[TExt]) associated with values of type
// T.
//
// Grounded end-to-end on the original source's
// phtree/v16/phtree_v16.h PhTreeV16 driver: try_emplace/insert/find/erase
// here are a thin, non-recursive descent loop over internal/phnode.Node,
// exactly mirroring the original's current_entry-walks-down-while-IsNode()
// loops.
package phtree

import (
	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/internal/phbits"
	"github.com/tzdybal/phtree/internal/phnode"
	"github.com/tzdybal/phtree/phpoint"
)

// PHTree is an ordered index over a DIM-dimensional key space (fixed at
// construction): at most one value is associated with each key.
type PHTree[TExt any, T any] struct {
	dim  int
	conv convert.Converter[TExt]
	root *phnode.Node[T]
	size int
}

// New constructs an empty tree of the given dimensionality, using conv to
// translate between the caller's external key type and the tree's
// internal phpoint.Point representation. It panics unless 1 <= dim <= 63.
func New[TExt any, T any](dim int, conv convert.Converter[TExt]) *PHTree[TExt, T] {
	if dim < 1 || dim > 63 {
		panic("phtree: dimension must be in [1, 63]")
	}
	return &PHTree[TExt, T]{
		dim:  dim,
		conv: conv,
		root: newRoot[T](dim),
	}
}

func newRoot[T any](dim int) *phnode.Node[T] {
	return phnode.New[T](dim, 0, phbits.MaxBitWidth-1)
}

// TryEmplace inserts value at key if no entry exists there yet; otherwise
// it leaves the existing entry untouched. The returned pointer always
// refers to the value now stored at key (new or pre-existing), and the
// bool reports whether an insertion actually happened.
func (t *PHTree[TExt, T]) TryEmplace(key TExt, value T) (*T, bool) {
	k := t.conv.Pre(key)
	n := t.root
	for {
		e, inserted := n.Emplace(k, value)
		if inserted {
			t.size++
			return e.ValuePtr(), true
		}
		if e.IsLeaf() {
			return e.ValuePtr(), false
		}
		n = e.ChildNode()
	}
}

// Insert is TryEmplace discarding the stored-value pointer, matching
// std::map::insert's boolean-only usage in the original source.
func (t *PHTree[TExt, T]) Insert(key TExt, value T) bool {
	_, inserted := t.TryEmplace(key, value)
	return inserted
}

// IndexGet returns the value stored at key if one exists. If none exists,
// one is inserted with the type's zero value and returned - mirroring the
// original's operator[] ("the value stored at position key; if no such
// value exists, one is added to the tree and returned").
func (t *PHTree[TExt, T]) IndexGet(key TExt) *T {
	var zero T
	ptr, _ := t.TryEmplace(key, zero)
	return ptr
}

// Find returns the value stored at key, if any.
func (t *PHTree[TExt, T]) Find(key TExt) (T, bool) {
	k := t.conv.Pre(key)
	n := t.root
	for {
		e, ok := n.Find(k)
		if !ok {
			var zero T
			return zero, false
		}
		if e.IsLeaf() {
			return e.Value(), true
		}
		n = e.ChildNode()
	}
}

// Count reports 1 if key has an associated value, 0 otherwise - matching
// std::map::count's contract for a tree that never holds duplicate keys.
func (t *PHTree[TExt, T]) Count(key TExt) int {
	if _, ok := t.Find(key); ok {
		return 1
	}
	return 0
}

// Erase removes the value associated with key, if any, and reports
// whether one was removed.
func (t *PHTree[TExt, T]) Erase(key TExt) bool {
	k := t.conv.Pre(key)
	// The root node itself is given no parent, so it never merges away:
	// that would need the root itself to be replaced, which the original
	// source avoids by construction (erase() never merges at the root).
	var parent *phnode.Node[T]
	n := t.root
	for {
		child, removed := n.Erase(k, parent)
		if removed {
			t.size--
			return true
		}
		if child == nil {
			return false
		}
		parent, n = n, child
	}
}

// ForEach visits every (key, value) pair in the tree in Z-order, in no
// particular filtered subset - the unconditional form of for_each.
func (t *PHTree[TExt, T]) ForEach(visit func(key TExt, value *T)) {
	t.root.ForEach(func(k phpoint.Point, v *T) {
		visit(t.conv.Post(k), v)
	})
}

// Size returns the number of key/value pairs stored in the tree.
func (t *PHTree[TExt, T]) Size() int { return t.size }

// Empty reports whether the tree holds no entries.
func (t *PHTree[TExt, T]) Empty() bool { return t.size == 0 }

// Clear removes every entry from the tree.
func (t *PHTree[TExt, T]) Clear() {
	t.size = 0
	t.root = newRoot[T](t.dim)
}

// Dim returns the tree's fixed dimensionality.
func (t *PHTree[TExt, T]) Dim() int { return t.dim }
