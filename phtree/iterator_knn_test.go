package phtree

import (
	"testing"

	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/distance"
)

func TestBeginKnnReturnsNearestFirstInAscendingOrder(t *testing.T) {
	tr := New[[]float64, string](2, convert.Float64{})
	tr.Insert([]float64{0, 0}, "origin")
	tr.Insert([]float64{1, 0}, "near")
	tr.Insert([]float64{10, 10}, "far")
	tr.Insert([]float64{-1, 0}, "near2")

	it := tr.BeginKnn(3, []float64{0, 0}, distance.Euclidean[float64])
	var values []string
	var dists []float64
	for ; it.Valid(); it.Next() {
		values = append(values, *it.Value())
		dists = append(dists, it.Distance())
	}
	if len(values) != 3 {
		t.Fatalf("BeginKnn yielded %d results, want 3", len(values))
	}
	if values[0] != "origin" {
		t.Fatalf("nearest result = %q, want origin", values[0])
	}
	for i := 1; i < len(dists); i++ {
		if dists[i] < dists[i-1] {
			t.Fatalf("distances not ascending: %v", dists)
		}
	}
	for _, v := range values {
		if v == "far" {
			t.Fatalf("k=3 nearest-neighbor search returned the farthest point")
		}
	}
}

func TestBeginKnnMoreThanAvailable(t *testing.T) {
	tr := New[[]float64, string](2, convert.Float64{})
	tr.Insert([]float64{0, 0}, "a")
	tr.Insert([]float64{1, 1}, "b")

	it := tr.BeginKnn(10, []float64{0, 0}, distance.Euclidean[float64])
	count := 0
	for ; it.Valid(); it.Next() {
		count++
	}
	if count != 2 {
		t.Fatalf("BeginKnn with minResults > tree size yielded %d, want 2", count)
	}
}

func TestBeginKnnEmptyTree(t *testing.T) {
	tr := New[[]float64, string](2, convert.Float64{})
	it := tr.BeginKnn(5, []float64{0, 0}, distance.Euclidean[float64])
	if it.Valid() {
		t.Fatalf("BeginKnn over an empty tree reported Valid")
	}
}
