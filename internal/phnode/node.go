package phnode

import (
	"github.com/tzdybal/phtree/internal/debug"
	"github.com/tzdybal/phtree/internal/phbits"
	"github.com/tzdybal/phtree/internal/phchild"
	"github.com/tzdybal/phtree/phpoint"
)

// Node is a single level of the PH-Tree: up to 2^DIM entries sharing a
// common key prefix, indexed by hypercube address (spec §3.3, §4.2-§4.3).
// Grounded directly on the original source's phtree/v16/node.h; Emplace,
// Find and Erase are not recursive, matching the original's contract that
// they each advance exactly one level and hand the caller a
// child node to continue into when needed.
//
// A node always holds at least two entries, except for the root, which may
// hold fewer (including zero, for an empty tree).
type Node[T any] struct {
	postfixLen uint8
	infixLen   uint8
	entries    phchild.Container[Entry[T]]
}

// New constructs an empty node for a tree of the given dimensionality, with
// the given infix and postfix lengths (spec §3.3's "parent.postfix_len =
// child.postfix_len + 1 + child.infix_len" invariant is maintained by
// callers, not by New itself).
func New[T any](dim int, infixLen, postfixLen uint8) *Node[T] {
	return &Node[T]{
		postfixLen: postfixLen,
		infixLen:   infixLen,
		entries:    phchild.New[Entry[T]](dim),
	}
}

func (n *Node[T]) EntryCount() int { return n.entries.Len() }

// EntriesFrom returns a cursor over this node's entries in ascending
// address order, starting at the first address >= lower. Exposed so
// package phtree's window-query and k-NN iterators can walk a node's
// entries directly without reaching into phchild themselves.
func (n *Node[T]) EntriesFrom(lower uint64) phchild.Cursor[Entry[T]] {
	return n.entries.LowerBound(lower)
}

// Entries returns a cursor over all of this node's entries in ascending
// address order.
func (n *Node[T]) Entries() phchild.Cursor[Entry[T]] {
	return n.entries.Begin()
}

func (n *Node[T]) InfixLen() uint8 { return n.infixLen }

func (n *Node[T]) SetInfixLen(newLen uint8) { n.infixLen = newLen }

func (n *Node[T]) PostfixLen() uint8 { return n.postfixLen }

// Emplace attempts to insert value at key. If the hypercube address is
// free, a new leaf entry is created and *inserted reports true. If an
// entry already occupies that address, Emplace delegates to
// handleCollision: an exact-key match returns the existing entry
// (inserted=false); a diverging key under a compressed infix causes a
// split (inserted=true, new leaf entry returned); and a non-conflicting
// node entry is returned as-is for the caller to descend into
// (inserted=false, but the returned entry is internal - the caller must
// check IsInternal() to tell "collision resolved" from "keep descending").
func (n *Node[T]) Emplace(key phpoint.Point, value T) (entry *Entry[T], inserted bool) {
	addr := phbits.HCAddress(key, n.postfixLen)
	leaf := NewLeaf(key, value)
	ptr, ok := n.entries.TryEmplace(addr, leaf)
	if ok {
		return ptr, true
	}
	return n.handleCollision(ptr, key, value)
}

// Find returns the entry at key's address if its key (or, for an internal
// entry, its compressed prefix) matches key. Child nodes are not
// traversed; the caller inspects IsInternal() to decide whether to descend.
func (n *Node[T]) Find(key phpoint.Point) (*Entry[T], bool) {
	addr := phbits.HCAddress(key, n.postfixLen)
	e, ok := n.entries.Find(addr)
	if !ok || !n.matches(e, key) {
		return nil, false
	}
	return e, true
}

// Erase attempts to remove the leaf at key. If the address holds a child
// node instead, that child is returned for the caller to continue
// descending into (nothing is removed at this level). If a leaf was
// removed and this left the node with exactly one remaining entry and a
// non-nil parent, the node merges itself away into parent (spec §4.3.3):
// parent's entry is rewritten in place and this node's container becomes
// unreachable.
func (n *Node[T]) Erase(key phpoint.Point, parent *Node[T]) (child *Node[T], removed bool) {
	addr := phbits.HCAddress(key, n.postfixLen)
	e, ok := n.entries.Find(addr)
	if !ok || !n.matches(e, key) {
		return nil, false
	}
	if e.IsInternal() {
		return e.ChildNode(), false
	}
	n.entries.Erase(addr)
	if parent != nil && n.entries.Len() == 1 {
		n.mergeInto(parent)
	}
	return nil, true
}

// mergeInto moves this node's sole remaining entry into parent, replacing
// parent's entry that points at this node (spec §4.3.3). Grounded on
// node.h's free function MergeIntoParent: the C++ original calls this out
// as deleting `this` node as a side effect; in Go the node simply becomes
// unreachable once parent's entry stops pointing at it.
func (n *Node[T]) mergeInto(parent *Node[T]) {
	_, sole := n.entries.SoleEntry()
	parentAddr := phbits.HCAddress(sole.Key(), parent.postfixLen)
	parentEntry, ok := parent.entries.Find(parentAddr)
	if !ok {
		panic("phnode: merge target missing from parent")
	}
	if sole.IsInternal() {
		grandchild := sole.ChildNode()
		grandchild.SetInfixLen(n.infixLen + 1 + grandchild.infixLen)
	}
	parentEntry.Replace(sole)
}

// handleCollision resolves an Emplace that landed on an already-occupied
// address. Grounded on node.h's HandleCollision/InsertSplit pair.
func (n *Node[T]) handleCollision(existing *Entry[T], newKey phpoint.Point, value T) (*Entry[T], bool) {
	if existing.IsInternal() {
		if existing.HasInfix(n.postfixLen) {
			diverging := phbits.DivergingBits(newKey, existing.Key())
			if diverging > existing.ChildPostfixLen()+1 {
				return n.insertSplit(existing, newKey, value, diverging), true
			}
		}
		// no infix conflict: caller descends into existing's child node.
		return existing, false
	}
	diverging := phbits.DivergingBits(newKey, existing.Key())
	if diverging > 0 {
		return n.insertSplit(existing, newKey, value, diverging), true
	}
	// exact key match.
	return existing, false
}

// insertSplit creates a new intermediate node holding both the existing
// entry and a new leaf for newKey, and installs it in place of the
// existing entry (spec §4.3.2). Grounded on node.h's InsertSplit.
func (n *Node[T]) insertSplit(existing *Entry[T], newKey phpoint.Point, value T, diverging uint8) *Entry[T] {
	debug.Assert(diverging <= n.postfixLen, "insertSplit: diverging bit %d above node postfixLen %d", diverging, n.postfixLen)
	currentKey := existing.Key()
	dim := len(newKey)

	newInfixLen := n.postfixLen - diverging
	newPostfixLen := diverging - 1
	sub := New[T](dim, newInfixLen, newPostfixLen)

	posExisting := phbits.HCAddress(currentKey, newPostfixLen)
	posNew := phbits.HCAddress(newKey, newPostfixLen)

	sub.writeEntry(posExisting, *existing)
	newLeaf := NewLeaf(newKey, value)
	newPtr, _ := sub.entries.TryEmplace(posNew, newLeaf)

	existing.Replace(NewInternal(newKey, sub))
	return newPtr
}

// writeEntry installs entry at addr, fixing up the entry's cached child
// infix length if it wraps a node (mirrors node.h's WriteEntry, used only
// when moving an entry into a freshly created node during a split).
func (n *Node[T]) writeEntry(addr uint64, entry Entry[T]) {
	if entry.IsInternal() {
		child := entry.ChildNode()
		child.SetInfixLen(n.postfixLen - child.PostfixLen() - 1)
	}
	n.entries.TryEmplace(addr, entry)
}

// matches reports whether entry's key (full key for a leaf, compressed
// prefix for an internal entry) is compatible with key - spec §4.3.4's
// "match rule": a leaf must match exactly; an internal entry only needs to
// agree with key on the bits above its child's postfix length (the part
// of the key the compressed infix actually encodes).
func (n *Node[T]) matches(entry *Entry[T], key phpoint.Point) bool {
	if entry.IsInternal() {
		if !entry.HasInfix(n.postfixLen) {
			return true
		}
		mask := phbits.PrefixMask(entry.ChildPostfixLen())
		return phbits.KeyEqualMasked(entry.Key(), key, mask)
	}
	return entry.Key().Equal(key)
}

// ForEach visits every leaf entry reachable from this node, depth-first,
// in ascending hypercube-address order at each level. It does not filter
// by a query region - callers needing a window query use the HC-filtered
// traversal in package phtree instead (spec §4.4.1 vs §4.4.2).
//
// Unlike package phtree's public Iterator/HCIterator/KnnIterator, which
// all walk an explicit stack (spec §9: "no operation recurses
// unboundedly"), ForEach recurses through ChildNode() directly. That is
// safe here because tree depth is bounded by the key width W regardless of
// how many entries the tree holds (W=64 for the built-in converters), so
// this is the one place the explicit-stack convention is not followed.
func (n *Node[T]) ForEach(visit func(key phpoint.Point, value *T)) {
	cur := n.entries.Begin()
	for cur.Valid() {
		e := cur.Value()
		if e.IsInternal() {
			e.ChildNode().ForEach(visit)
		} else {
			visit(e.Key(), e.ValuePtr())
		}
		cur.Next()
	}
}

// CheckConsistency recursively verifies the postfix/infix-length invariant
// (spec §3.3: parent.postfix_len == child.postfix_len + 1 + child.infix_len)
// and returns the total number of leaf entries in this subtree. It panics
// on the first violation found, mirroring the original's assert()-based
// consistency check (spec §7: structural invariant violations panic).
// package phtree's exported (*PHTree).CheckConsistency recovers that panic
// and reports it as an error instead.
//
// Like ForEach, this recurses through ChildNode() rather than an explicit
// stack; see ForEach's doc comment for why that is safe here.
func (n *Node[T]) CheckConsistency() int {
	total := 0
	cur := n.entries.Begin()
	for cur.Valid() {
		e := cur.Value()
		if e.IsInternal() {
			child := e.ChildNode()
			if child.postfixLen+1+child.infixLen != n.postfixLen {
				panic("phnode: postfix/infix length invariant violated")
			}
			total += child.CheckConsistency()
		} else {
			total++
		}
		cur.Next()
	}
	return total
}
