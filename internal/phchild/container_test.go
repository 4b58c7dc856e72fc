package phchild

import "testing"

// containerCtors lists one constructor per backing strategy; every test
// below runs against all three so the dense/sorted/ordered implementations
// are held to the exact same Container[V] contract.
var containerCtors = map[string]func() Container[int]{
	"dense":   func() Container[int] { return NewDense[int]() },
	"sorted":  func() Container[int] { return NewSorted[int]() },
	"ordered": func() Container[int] { return NewOrdered[int]() },
}

func TestFindTryEmplaceErase(t *testing.T) {
	for name, ctor := range containerCtors {
		t.Run(name, func(t *testing.T) {
			c := ctor()
			if c.Len() != 0 {
				t.Fatalf("new container Len() = %d, want 0", c.Len())
			}
			if _, ok := c.Find(3); ok {
				t.Fatalf("Find on empty container found something")
			}

			ptr, inserted := c.TryEmplace(3, 300)
			if !inserted || *ptr != 300 {
				t.Fatalf("TryEmplace(3, 300) = (%v, %v), want (300, true)", *ptr, inserted)
			}
			if c.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", c.Len())
			}

			ptr2, inserted2 := c.TryEmplace(3, 999)
			if inserted2 {
				t.Fatalf("TryEmplace on occupied address reported inserted")
			}
			if *ptr2 != 300 {
				t.Fatalf("TryEmplace on occupied address returned %v, want untouched 300", *ptr2)
			}

			found, ok := c.Find(3)
			if !ok || *found != 300 {
				t.Fatalf("Find(3) = (%v, %v), want (300, true)", *found, ok)
			}

			// mutation through the returned pointer is visible to Find.
			*found = 301
			again, _ := c.Find(3)
			if *again != 301 {
				t.Fatalf("mutation through Find pointer did not persist, got %v", *again)
			}

			if !c.Erase(3) {
				t.Fatalf("Erase(3) = false, want true")
			}
			if c.Erase(3) {
				t.Fatalf("second Erase(3) = true, want false")
			}
			if c.Len() != 0 {
				t.Fatalf("Len() after erase = %d, want 0", c.Len())
			}
		})
	}
}

func TestLowerBoundOrdering(t *testing.T) {
	for name, ctor := range containerCtors {
		t.Run(name, func(t *testing.T) {
			c := ctor()
			addrs := []uint64{7, 1, 4, 2, 6}
			for _, a := range addrs {
				c.TryEmplace(a, int(a)*10)
			}

			var seen []uint64
			cur := c.Begin()
			for cur.Valid() {
				seen = append(seen, cur.Addr())
				if got, want := *cur.Value(), int(cur.Addr())*10; got != want {
					t.Fatalf("Begin() cursor value at addr %d = %d, want %d", cur.Addr(), got, want)
				}
				cur.Next()
			}
			want := []uint64{1, 2, 4, 6, 7}
			if !equalAddrs(seen, want) {
				t.Fatalf("Begin() order = %v, want %v", seen, want)
			}

			seen = nil
			cur = c.LowerBound(4)
			for cur.Valid() {
				seen = append(seen, cur.Addr())
				cur.Next()
			}
			want = []uint64{4, 6, 7}
			if !equalAddrs(seen, want) {
				t.Fatalf("LowerBound(4) order = %v, want %v", seen, want)
			}

			seen = nil
			cur = c.LowerBound(8)
			for cur.Valid() {
				seen = append(seen, cur.Addr())
				cur.Next()
			}
			if len(seen) != 0 {
				t.Fatalf("LowerBound(8) = %v, want empty", seen)
			}
		})
	}
}

func TestSoleEntry(t *testing.T) {
	for name, ctor := range containerCtors {
		t.Run(name, func(t *testing.T) {
			c := ctor()
			c.TryEmplace(5, 50)
			addr, val := c.SoleEntry()
			if addr != 5 || val != 50 {
				t.Fatalf("SoleEntry() = (%d, %d), want (5, 50)", addr, val)
			}
		})
	}
}

func equalAddrs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
