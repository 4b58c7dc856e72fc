// Command phtree-bench is a small flag-driven harness exercising a
// PH-Tree's insert, window-query, and k-NN workloads against randomly
// generated keys, for manual smoke-testing and rough timing. Grounded on
// the pack's small main.go entry points (flonle-diy-redis's app/main.go,
// gaissmai-bart's cmd/main.go): flag.Parse one flat set of options, run,
// print results, exit.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	dolthubmaphash "github.com/dolthub/maphash"

	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/distance"
	"github.com/tzdybal/phtree/phtree"
)

func main() {
	n := flag.Int("n", 100_000, "number of keys to insert")
	dim := flag.Int("dim", 3, "key dimensionality")
	seed := flag.Int64("seed", 1, "random seed")
	knn := flag.Int("knn", 10, "k for the k-NN query run after insertion")
	window := flag.Float64("window", 0.1, "window-query side length as a fraction of the key space")
	verify := flag.Bool("verify", false, "run CheckConsistency and print Stats after inserting")
	flag.Parse()

	if *dim < 1 {
		fmt.Fprintln(os.Stderr, "phtree-bench: -dim must be >= 1")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	keys := make([][]float64, *n)
	for i := range keys {
		k := make([]float64, *dim)
		for d := range k {
			k[d] = rng.Float64() * 1000
		}
		keys[i] = k
	}

	hasher := dolthubmaphash.NewHasher[string]()
	fingerprint := func(k []float64) uint64 {
		return hasher.Hash(fmt.Sprint(k))
	}

	tree := phtree.New[[]float64, uint64](*dim, convert.Float64{})

	start := time.Now()
	for _, k := range keys {
		tree.Insert(k, fingerprint(k))
	}
	insertElapsed := time.Since(start)
	fmt.Printf("inserted %d keys (dim=%d) in %s (%.0f ops/s)\n",
		tree.Size(), *dim, insertElapsed, float64(tree.Size())/insertElapsed.Seconds())

	if *verify {
		if err := tree.CheckConsistency(); err != nil {
			fmt.Fprintf(os.Stderr, "phtree-bench: consistency check failed: %v\n", err)
			os.Exit(1)
		}
		stats := tree.Stats()
		fmt.Printf("stats: nodes=%d leaves=%d maxDepth=%d avgDepth=%.2f\n",
			stats.NodeCount, stats.LeafCount, stats.MaxDepth, stats.AverageDepth())
	}

	lo := make([]float64, *dim)
	hi := make([]float64, *dim)
	for d := range lo {
		hi[d] = 1000 * *window
	}
	start = time.Now()
	windowCount := 0
	for it := tree.BeginQuery(lo, hi); it.Valid(); it.Next() {
		windowCount++
	}
	fmt.Printf("window query [%v, %v] matched %d entries in %s\n", lo, hi, windowCount, time.Since(start))

	center := make([]float64, *dim)
	start = time.Now()
	found := 0
	for it := tree.BeginKnn(*knn, center, distance.Euclidean[float64]); it.Valid(); it.Next() {
		found++
	}
	fmt.Printf("%d-NN query around %v returned %d results in %s\n", *knn, center, found, time.Since(start))
}
