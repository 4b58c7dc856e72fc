package phtree

import (
	"fmt"

	"github.com/tzdybal/phtree/internal/phnode"
)

// CheckConsistency walks every node in the tree verifying the
// postfix/infix-length invariant (parent.postfixLen == child.postfixLen +
// child.infixLen + 1, spec §4.2) and that the tree's cached Size matches
// the number of leaves actually reachable. It returns the first violation
// found as an error, or nil if the tree is consistent. Grounded on the
// original source's GetStats/assert-based consistency checks scattered
// through phtree_v16.h's test helpers: internal/phnode.Node.CheckConsistency
// keeps the original's assert()-as-panic style for the invariant walk
// itself, and this method converts that panic into the error this
// package's public API promises callers instead of crashing them.
func (t *PHTree[TExt, T]) CheckConsistency() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("phtree: %v", r)
		}
	}()
	count := t.root.CheckConsistency()
	if count != t.size {
		return fmt.Errorf("phtree: size mismatch: cached Size=%d, leaf count=%d", t.size, count)
	}
	return nil
}

// Stats summarizes the shape of a tree: how many nodes and leaves it has,
// and how deep the leaves sit. Grounded on the original source's
// PhTreeStats (phtree/v16/debug_helper_v16.h's GetStats): this is a
// reduced subset (the original also histograms infix lengths and node
// fan-out per depth) covering what cmd/phtree-bench's -verify flag
// prints.
type Stats struct {
	NodeCount  int
	LeafCount  int
	MaxDepth   int
	TotalDepth int
}

// AverageDepth returns the mean depth of the tree's leaves, or 0 for an
// empty tree.
func (s Stats) AverageDepth() float64 {
	if s.LeafCount == 0 {
		return 0
	}
	return float64(s.TotalDepth) / float64(s.LeafCount)
}

// Stats walks the tree and reports its shape. Like ForEach and
// internal/phnode.Node.CheckConsistency, this recurses through child
// nodes directly rather than through an explicit stack: every level
// consumes one Go call stack frame, which is fine because a PH-Tree's
// depth is bounded by the key width W (64 for the built-in integer/float
// converters), never by the number of entries stored.
func (t *PHTree[TExt, T]) Stats() Stats {
	var s Stats
	collectStats(t.root, 1, &s)
	return s
}

func collectStats[T any](n *phnode.Node[T], depth int, s *Stats) {
	s.NodeCount++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	for cur := n.Entries(); cur.Valid(); cur.Next() {
		e := cur.Value()
		if e.IsInternal() {
			collectStats(e.ChildNode(), depth+1, s)
		} else {
			s.LeafCount++
			s.TotalDepth += depth
		}
	}
}
