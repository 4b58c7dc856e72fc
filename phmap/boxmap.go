package phmap

import (
	"sync"

	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/phtree"
)

// BoxMap is a concurrency-safe map keyed by axis-aligned boxes (stored as
// a corner-pair via convert.Box, spec §6.1's box-key encoding), answering
// "which stored boxes overlap this query box" via Query. k-NN search is
// intentionally not offered here: "nearest box" has no single agreed
// definition (nearest corner? nearest surface? smallest enclosing?), so
// the original leaves it to the caller to pick a representative point and
// query a PointMap instead - the same Non-goal this package's point
// queries cover.
type BoxMap[TExt any, T any] struct {
	mu   sync.RWMutex
	tree *phtree.PHTree[convert.ExtBox[TExt], T]
	conv convert.Box[TExt]
}

// NewBoxMap constructs an empty BoxMap over dim-dimensional boxes.
func NewBoxMap[TExt any, T any](dim int, inner convert.Converter[TExt]) *BoxMap[TExt, T] {
	boxConv := convert.Box[TExt]{Inner: inner, Dim: dim}
	return &BoxMap[TExt, T]{
		tree: phtree.New[convert.ExtBox[TExt], T](2*dim, boxConv),
		conv: boxConv,
	}
}

// Put inserts or overwrites the value stored for the box [lo, hi].
func (m *BoxMap[TExt, T]) Put(lo, hi TExt, value T) {
	key := convert.ExtBox[TExt]{Lo: lo, Hi: hi}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.tree.Insert(key, value) {
		m.tree.Erase(key)
		m.tree.Insert(key, value)
	}
}

// Get returns the value stored for the box [lo, hi], if any.
func (m *BoxMap[TExt, T]) Get(lo, hi TExt) (T, bool) {
	key := convert.ExtBox[TExt]{Lo: lo, Hi: hi}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Find(key)
}

// Remove deletes the box [lo, hi], reporting whether it existed.
func (m *BoxMap[TExt, T]) Remove(lo, hi TExt) bool {
	key := convert.ExtBox[TExt]{Lo: lo, Hi: hi}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Erase(key)
}

// Size returns the number of boxes currently stored.
func (m *BoxMap[TExt, T]) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Size()
}

// Query visits every stored box that overlaps [qlo, qhi], using
// convert.Box.IntersectQuery's encoded-space overlap trick.
func (m *BoxMap[TExt, T]) Query(qlo, qhi TExt, visit func(lo, hi TExt, value T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	box := m.conv.IntersectQuery(qlo, qhi)
	for it := m.tree.BeginQueryBox(box, phtree.NoOpFilter[T]{}); it.Valid(); it.Next() {
		k := it.Key()
		visit(k.Lo, k.Hi, *it.Value())
	}
}
