package phtree

import (
	"testing"

	"github.com/tzdybal/phtree/phpoint"
)

func TestRelocateIfMovesMatchingEntry(t *testing.T) {
	tr := newIntTree()
	tr.Insert(phpoint.Point{0, 0}, "a")

	if !tr.RelocateIf(phpoint.Point{0, 0}, phpoint.Point{50, 50}, func(string) bool { return true }) {
		t.Fatalf("RelocateIf reported false for a matching entry")
	}
	if _, ok := tr.Find(phpoint.Point{0, 0}); ok {
		t.Fatalf("old key still present after RelocateIf")
	}
	v, ok := tr.Find(phpoint.Point{50, 50})
	if !ok || v != "a" {
		t.Fatalf("Find(newKey) = (%v, %v), want (a, true)", v, ok)
	}
	if tr.Size() != 1 {
		t.Fatalf("Size = %d after RelocateIf, want 1", tr.Size())
	}
	if err := tr.CheckConsistency(); err != nil {
		t.Fatalf("CheckConsistency: %v", err)
	}
}

func TestRelocateIfSameKeyOverwritesInPlace(t *testing.T) {
	tr := newIntTree()
	tr.Insert(phpoint.Point{3, 3}, "a")

	if !tr.RelocateIf(phpoint.Point{3, 3}, phpoint.Point{3, 3}, func(string) bool { return true }) {
		t.Fatalf("RelocateIf reported false for oldKey == newKey")
	}
	v, ok := tr.Find(phpoint.Point{3, 3})
	if !ok || v != "a" {
		t.Fatalf("Find(key) = (%v, %v), want (a, true)", v, ok)
	}
	if tr.Size() != 1 {
		t.Fatalf("Size = %d after a same-key RelocateIf, want 1", tr.Size())
	}
	if err := tr.CheckConsistency(); err != nil {
		t.Fatalf("CheckConsistency: %v", err)
	}
}

func TestRelocateIfRejectsPredicate(t *testing.T) {
	tr := newIntTree()
	tr.Insert(phpoint.Point{1, 1}, "a")
	if tr.RelocateIf(phpoint.Point{1, 1}, phpoint.Point{2, 2}, func(string) bool { return false }) {
		t.Fatalf("RelocateIf reported true despite a rejecting predicate")
	}
	if _, ok := tr.Find(phpoint.Point{1, 1}); !ok {
		t.Fatalf("entry moved despite a rejecting predicate")
	}
}

func TestRelocateIfMissingKey(t *testing.T) {
	tr := newIntTree()
	if tr.RelocateIf(phpoint.Point{9, 9}, phpoint.Point{1, 1}, func(string) bool { return true }) {
		t.Fatalf("RelocateIf reported true for a nonexistent old key")
	}
}

func TestRelocateIfTargetOccupied(t *testing.T) {
	tr := newIntTree()
	tr.Insert(phpoint.Point{1, 1}, "a")
	tr.Insert(phpoint.Point{2, 2}, "b")
	if tr.RelocateIf(phpoint.Point{1, 1}, phpoint.Point{2, 2}, func(string) bool { return true }) {
		t.Fatalf("RelocateIf reported true when the target key was already occupied")
	}
	v, _ := tr.Find(phpoint.Point{1, 1})
	if v != "a" {
		t.Fatalf("entry moved despite target being occupied")
	}
}
