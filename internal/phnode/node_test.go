package phnode

import (
	"testing"

	"github.com/tzdybal/phtree/internal/phbits"
	"github.com/tzdybal/phtree/phpoint"
)

// emplace drives Node.Emplace down through child nodes exactly the way the
// tree driver in package phtree will, so these tests exercise the split
// path the same way a real insertion would.
func emplace[T any](root *Node[T], key phpoint.Point, value T) (*Entry[T], bool) {
	n := root
	for {
		e, inserted := n.Emplace(key, value)
		if inserted || e.IsLeaf() {
			return e, inserted
		}
		n = e.ChildNode()
	}
}

func find[T any](root *Node[T], key phpoint.Point) (*Entry[T], bool) {
	n := root
	for {
		e, ok := n.Find(key)
		if !ok {
			return nil, false
		}
		if e.IsLeaf() {
			return e, true
		}
		n = e.ChildNode()
	}
}

func newRoot[T any](dim int) *Node[T] {
	return New[T](dim, 0, phbits.MaxBitWidth-1)
}

func TestEmplaceFindSingleEntry(t *testing.T) {
	root := newRoot[string](2)
	key := phpoint.Point{1, 2}

	e, inserted := emplace(root, key, "hello")
	if !inserted {
		t.Fatalf("first emplace reported inserted=false")
	}
	if e.Value() != "hello" {
		t.Fatalf("emplace returned value %q, want hello", e.Value())
	}

	found, ok := find(root, key)
	if !ok {
		t.Fatalf("Find did not locate the inserted key")
	}
	if found.Value() != "hello" {
		t.Fatalf("Find returned value %q, want hello", found.Value())
	}
}

func TestEmplaceExactDuplicateDoesNotOverwrite(t *testing.T) {
	root := newRoot[string](2)
	key := phpoint.Point{7, 7}

	emplace(root, key, "first")
	e, inserted := emplace(root, key, "second")
	if inserted {
		t.Fatalf("duplicate emplace reported inserted=true")
	}
	if e.Value() != "first" {
		t.Fatalf("duplicate emplace value = %q, want first (unchanged)", e.Value())
	}
}

func TestEmplaceSplitsOnDivergingKeys(t *testing.T) {
	root := newRoot[string](2)
	a := phpoint.Point{0, 0}
	b := phpoint.Point{5, 5}

	if _, inserted := emplace(root, a, "a"); !inserted {
		t.Fatalf("emplace a: inserted=false")
	}
	if _, inserted := emplace(root, b, "b"); !inserted {
		t.Fatalf("emplace b: inserted=false")
	}

	foundA, ok := find(root, a)
	if !ok || foundA.Value() != "a" {
		t.Fatalf("find a after split = (%v, %v), want (a, true)", foundA, ok)
	}
	foundB, ok := find(root, b)
	if !ok || foundB.Value() != "b" {
		t.Fatalf("find b after split = (%v, %v), want (b, true)", foundB, ok)
	}

	if root.CheckConsistency() != 2 {
		t.Fatalf("CheckConsistency() = %d, want 2", root.CheckConsistency())
	}
}

func TestEraseRemovesLeafAndMerges(t *testing.T) {
	root := newRoot[string](2)
	a := phpoint.Point{0, 0}
	b := phpoint.Point{5, 5}
	c := phpoint.Point{5, 6}

	emplace(root, a, "a")
	emplace(root, b, "b")
	emplace(root, c, "c")

	// erase b: drive down to the node that actually owns it, mirroring the
	// tree driver's descent-with-parent-tracking.
	n, parent := root, (*Node[string])(nil)
	for {
		child, removed := n.Erase(b, parent)
		if removed {
			break
		}
		if child == nil {
			t.Fatalf("erase(b) did not find the key")
		}
		parent, n = n, child
	}

	if _, ok := find(root, b); ok {
		t.Fatalf("b still findable after erase")
	}
	foundA, ok := find(root, a)
	if !ok || foundA.Value() != "a" {
		t.Fatalf("a missing after erasing b")
	}
	foundC, ok := find(root, c)
	if !ok || foundC.Value() != "c" {
		t.Fatalf("c missing after erasing b")
	}
	if got := root.CheckConsistency(); got != 2 {
		t.Fatalf("CheckConsistency() after erase = %d, want 2", got)
	}
}

func TestForEachVisitsAllLeaves(t *testing.T) {
	root := newRoot[int](2)
	keys := []phpoint.Point{{0, 0}, {5, 5}, {5, 6}, {100, 100}}
	for i, k := range keys {
		emplace(root, k, i)
	}

	seen := map[int]bool{}
	root.ForEach(func(_ phpoint.Point, value *int) {
		seen[*value] = true
	})
	if len(seen) != len(keys) {
		t.Fatalf("ForEach visited %d leaves, want %d", len(seen), len(keys))
	}
}
