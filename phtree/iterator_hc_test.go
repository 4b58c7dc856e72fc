package phtree

import (
	"fmt"
	"testing"

	"github.com/tzdybal/phtree/phpoint"
)

func TestBeginQueryReturnsOnlyEntriesInWindow(t *testing.T) {
	tr := newIntTree()
	inside := []phpoint.Point{{0, 0}, {5, 5}, {-5, -5}, {10, 10}}
	outside := []phpoint.Point{{100, 100}, {-100, 50}, {20, -20}}
	for _, k := range inside {
		tr.Insert(k, "in")
	}
	for _, k := range outside {
		tr.Insert(k, "out")
	}

	lo := phpoint.Point{-10, -10}
	hi := phpoint.Point{10, 10}
	got := map[string]bool{}
	for it := tr.BeginQuery(lo, hi); it.Valid(); it.Next() {
		if it.Value() == nil || *it.Value() != "in" {
			t.Fatalf("window query returned an out-of-window entry at %v", it.Key())
		}
		got[keyString(it.Key())] = true
	}
	if len(got) != len(inside) {
		t.Fatalf("window query returned %d entries, want %d", len(got), len(inside))
	}
}

func TestBeginQueryEmptyWindow(t *testing.T) {
	tr := newIntTree()
	tr.Insert(phpoint.Point{0, 0}, "a")
	it := tr.BeginQuery(phpoint.Point{100, 100}, phpoint.Point{200, 200})
	if it.Valid() {
		t.Fatalf("window query over an empty region reported Valid")
	}
}

func keyString(p phpoint.Point) string {
	return fmt.Sprint([]int64(p))
}
