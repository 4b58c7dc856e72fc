package phmap

import (
	"testing"

	set3 "github.com/TomTonic/Set3"

	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/phpoint"
)

func TestMultiMapPutGetRemoveValue(t *testing.T) {
	m := NewMultiMap[phpoint.Point, int](2, convert.Identity{})
	key := phpoint.Point{1, 1}
	m.PutValue(key, 10)
	m.PutValue(key, 20)

	if values := m.GetValuesFor(key); !values.Equals(set3.From(10, 20)) {
		t.Fatalf("GetValuesFor returned unexpected set")
	}

	m.RemoveValue(key, 10)
	if values := m.GetValuesFor(key); !values.Equals(set3.From(20)) {
		t.Fatalf("after RemoveValue(10), GetValuesFor returned unexpected set")
	}
}

func TestMultiMapContainsAndRemoveKey(t *testing.T) {
	m := NewMultiMap[phpoint.Point, int](2, convert.Identity{})
	key := phpoint.Point{5, 5}
	if m.ContainsKey(key) {
		t.Fatalf("ContainsKey true before any Put")
	}
	m.PutValue(key, 1)
	if !m.ContainsKey(key) {
		t.Fatalf("ContainsKey false after PutValue")
	}
	m.RemoveKey(key)
	if m.ContainsKey(key) {
		t.Fatalf("ContainsKey true after RemoveKey")
	}
}

func TestMultiMapGetAllValues(t *testing.T) {
	m := NewMultiMap[phpoint.Point, int](2, convert.Identity{})
	m.PutValue(phpoint.Point{0, 0}, 1)
	m.PutValue(phpoint.Point{1, 1}, 2)
	m.PutValue(phpoint.Point{1, 1}, 3)

	if all := m.GetAllValues(); !all.Equals(set3.From(1, 2, 3)) {
		t.Fatalf("GetAllValues returned unexpected set")
	}
}

func TestMultiMapGetValuesInBox(t *testing.T) {
	m := NewMultiMap[phpoint.Point, int](2, convert.Identity{})
	m.PutValue(phpoint.Point{0, 0}, 1)
	m.PutValue(phpoint.Point{100, 100}, 2)

	inBox := m.GetValuesInBox(phpoint.Point{-1, -1}, phpoint.Point{10, 10})
	if !inBox.Equals(set3.From(1)) {
		t.Fatalf("GetValuesInBox returned unexpected set")
	}
}

func TestMultiMapSizeAndClear(t *testing.T) {
	m := NewMultiMap[phpoint.Point, int](2, convert.Identity{})
	m.PutValue(phpoint.Point{0, 0}, 1)
	m.PutValue(phpoint.Point{1, 1}, 2)
	if m.Size() != 2 {
		t.Fatalf("Size = %d, want 2", m.Size())
	}
	m.Clear()
	if m.Size() != 0 {
		t.Fatalf("Size = %d after Clear, want 0", m.Size())
	}
}
