// Package phmap provides map-flavored façades over phtree.PHTree, grounded
// on the teacher's multimap.go/array_based.go: the same thread-safe,
// clone-on-read public API, generalized from the teacher's single-
// dimension, linearly-scanned Key to an arbitrary-dimension coordinate
// tuple backed by a PH-Tree instead of a scanned slice.
package phmap

import (
	"sync"

	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/phtree"
)

// PointMap is a concurrency-safe map from TExt-typed point keys to values
// of type T, backed by a phtree.PHTree. Unlike the teacher's
// arrayBasedMultiMap (one value set per key, found by a linear scan),
// PointMap holds exactly one value per key and every lookup descends the
// tree in O(DIM * bit-width) instead of O(n).
type PointMap[TExt any, T any] struct {
	mu   sync.RWMutex
	tree *phtree.PHTree[TExt, T]
}

// NewPointMap constructs an empty PointMap of the given dimensionality.
func NewPointMap[TExt any, T any](dim int, conv convert.Converter[TExt]) *PointMap[TExt, T] {
	return &PointMap[TExt, T]{tree: phtree.New[TExt, T](dim, conv)}
}

// Put inserts or overwrites the value at key.
func (m *PointMap[TExt, T]) Put(key TExt, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.tree.Insert(key, value) {
		m.tree.Erase(key)
		m.tree.Insert(key, value)
	}
}

// Get returns the value stored at key, if any.
func (m *PointMap[TExt, T]) Get(key TExt) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Find(key)
}

// ContainsKey reports whether key has an associated value.
func (m *PointMap[TExt, T]) ContainsKey(key TExt) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Count(key) > 0
}

// Remove deletes the value at key, if any, and reports whether it existed.
func (m *PointMap[TExt, T]) Remove(key TExt) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Erase(key)
}

// Size returns the number of keys currently stored.
func (m *PointMap[TExt, T]) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Size()
}

// Clear removes every key and value.
func (m *PointMap[TExt, T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.Clear()
}

// ForEach visits every (key, value) pair, in no particular guaranteed
// order relative to insertion (Z-order within the tree).
func (m *PointMap[TExt, T]) ForEach(visit func(key TExt, value T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.tree.ForEach(func(k TExt, v *T) { visit(k, *v) })
}

// Query returns every (key, value) pair whose key falls within [lo, hi] -
// the PointMap's equivalent of the teacher's
// GetValuesBetweenInclusive/Exclusive family, generalized from a single
// ordered dimension to a window over all DIM dimensions at once.
func (m *PointMap[TExt, T]) Query(lo, hi TExt, visit func(key TExt, value T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for it := m.tree.BeginQuery(lo, hi); it.Valid(); it.Next() {
		visit(it.Key(), *it.Value())
	}
}
