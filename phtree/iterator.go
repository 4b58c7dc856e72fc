package phtree

import (
	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/internal/phchild"
	"github.com/tzdybal/phtree/internal/phnode"
	"github.com/tzdybal/phtree/phpoint"
)

// frame is one level of an Iterator's explicit DFS stack: a cursor over the
// remaining entries of the node being visited.
type frame[T any] struct {
	cur phchild.Cursor[phnode.Entry[T]]
}

// Iterator is a full, filtered, depth-first traversal of every (key,
// value) pair in a tree, grounded on the original source's
// phtree/v16/for_each.h (ForEach::TraverseNode): entries and child nodes
// rejected by the filter are skipped without being returned or descended
// into. Unlike ForEach, Iterator is a pull interface: call Next() while
// Valid() reports true, reading Key()/Value() in between.
//
// The original's ForEach::TraverseNode calls filter_.IsNodeValid(key,
// node.GetPostfixLen()+1) using the *parent* node's own key and postfix
// length for every child, which cannot distinguish between children (the
// check is constant across a node's entries) - almost certainly a latent
// bug in the upstream implementation. This iterator instead evaluates
// NodeValid against each child's own representative key and postfix
// length, the semantics the filter contract in phtree/common/filter.h
// actually documents.
type Iterator[TExt any, T any] struct {
	conv   convert.Converter[TExt]
	filter Filter[T]
	stack  []frame[T]
	curKey phpoint.Point
	curVal *T
	valid  bool
}

// Begin returns an unfiltered iterator over the whole tree.
func (t *PHTree[TExt, T]) Begin() *Iterator[TExt, T] {
	return t.BeginFiltered(NoOpFilter[T]{})
}

// BeginFiltered returns an iterator over the whole tree, skipping any
// entry or subtree filter rejects.
func (t *PHTree[TExt, T]) BeginFiltered(filter Filter[T]) *Iterator[TExt, T] {
	it := &Iterator[TExt, T]{conv: t.conv, filter: filter}
	it.stack = append(it.stack, frame[T]{cur: t.root.Entries()})
	it.advance()
	return it
}

func (it *Iterator[TExt, T]) advance() {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if !top.cur.Valid() {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		e := top.cur.Value()
		top.cur.Next()
		if e.IsInternal() {
			child := e.ChildNode()
			if !it.filter.NodeValid(e.Key(), int(child.PostfixLen())+1) {
				continue
			}
			it.stack = append(it.stack, frame[T]{cur: child.Entries()})
			continue
		}
		if it.filter.EntryValid(e.Key(), e.Value()) {
			it.curKey = e.Key()
			it.curVal = e.ValuePtr()
			it.valid = true
			return
		}
	}
	it.valid = false
}

// Valid reports whether the iterator currently points at an entry.
func (it *Iterator[TExt, T]) Valid() bool { return it.valid }

// Next advances to the next matching entry.
func (it *Iterator[TExt, T]) Next() { it.advance() }

// Key returns the current entry's key, translated back to external form.
func (it *Iterator[TExt, T]) Key() TExt { return it.conv.Post(it.curKey) }

// Value returns a mutable pointer to the current entry's value.
func (it *Iterator[TExt, T]) Value() *T { return it.curVal }
