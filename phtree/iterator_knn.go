package phtree

import (
	"container/heap"

	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/internal/phnode"
	"github.com/tzdybal/phtree/phpoint"
)

// knnCandidate is one entry in the best-first search's priority queue:
// either an unexpanded node (node != nil) or a data entry ready to be
// yielded (val != nil), tagged with its distance to the query center.
// Grounded on the original source's EntryDist pair (distance, *Entry).
type knnCandidate[T any] struct {
	dist float64
	key  phpoint.Point
	node *phnode.Node[T]
	val  *T
}

// knnQueue is a min-heap of knnCandidate ordered by ascending distance,
// implementing the Hjaltason-Samet best-first search (spec §6.2's
// reference: G.R. Hjaltason, H. Samet, "Distance browsing in spatial
// databases", ACM TODS 1999).
type knnQueue[T any] []knnCandidate[T]

func (q knnQueue[T]) Len() int            { return len(q) }
func (q knnQueue[T]) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q knnQueue[T]) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *knnQueue[T]) Push(x any)         { *q = append(*q, x.(knnCandidate[T])) }
func (q *knnQueue[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// KnnIterator yields the minResults entries nearest to a query center, in
// ascending distance order, without computing the distance to every entry
// in the tree: the priority queue lets whole subtrees that cannot contain
// a closer point stay unexpanded (spec §6.2). Grounded on the original
// source's IteratorKnnHS.
type KnnIterator[TExt any, T any] struct {
	conv      convert.Converter[TExt]
	filter    Filter[T]
	center    phpoint.Point
	centerExt TExt
	dist      func(a, b TExt) float64
	queue     knnQueue[T]
	remaining int
	curKey    phpoint.Point
	curVal    *T
	curDist   float64
	valid     bool
}

// BeginKnn returns a k-NN iterator over minResults neighbors of center,
// nearest-first, using dist as the distance function and no filter.
func (t *PHTree[TExt, T]) BeginKnn(minResults int, center TExt, dist func(a, b TExt) float64) *KnnIterator[TExt, T] {
	return t.BeginKnnFiltered(minResults, center, dist, NoOpFilter[T]{})
}

// BeginKnnFiltered is BeginKnn additionally skipping any entry or subtree
// the filter rejects.
func (t *PHTree[TExt, T]) BeginKnnFiltered(minResults int, center TExt, dist func(a, b TExt) float64, filter Filter[T]) *KnnIterator[TExt, T] {
	it := &KnnIterator[TExt, T]{
		conv:      t.conv,
		filter:    filter,
		center:    t.conv.Pre(center),
		centerExt: center,
		dist:      dist,
		remaining: minResults,
	}
	if minResults <= 0 || t.root.EntryCount() == 0 {
		return it
	}
	// Every imaginable point lies inside the root node, so its initial
	// distance is 0 - it is guaranteed to be expanded first.
	heap.Push(&it.queue, knnCandidate[T]{dist: 0, node: t.root})
	it.advance()
	return it
}

func (it *KnnIterator[TExt, T]) advance() {
	for it.remaining > 0 && it.queue.Len() > 0 {
		top := it.queue[0]
		if top.node == nil {
			heap.Pop(&it.queue)
			it.remaining--
			it.curKey = top.key
			it.curVal = top.val
			it.curDist = top.dist
			it.valid = true
			return
		}
		heap.Pop(&it.queue)
		node := top.node
		cur := node.Entries()
		for cur.Valid() {
			e := cur.Value()
			cur.Next()
			if e.IsInternal() {
				child := e.ChildNode()
				if !it.filter.NodeValid(e.Key(), int(child.PostfixLen())+1) {
					continue
				}
				d := it.distanceToNode(e.Key(), int(child.PostfixLen())+1)
				heap.Push(&it.queue, knnCandidate[T]{dist: d, key: e.Key(), node: child})
			} else {
				if !it.filter.EntryValid(e.Key(), e.Value()) {
					continue
				}
				d := it.dist(it.centerExt, it.conv.Post(e.Key()))
				heap.Push(&it.queue, knnCandidate[T]{dist: d, key: e.Key(), val: e.ValuePtr()})
			}
		}
	}
	it.valid = false
	it.curDist = 0
}

// distanceToNode computes the distance from the query center to the
// nearest point that could lie inside a node with the given representative
// prefix and bitsToIgnore (its child's postfixLen+1): clamp the center
// into the node's bounding hypercube dimension by dimension, then measure
// the clamped point's distance in external space. Grounded on the
// original source's IteratorKnnHS::DistanceToNode.
func (it *KnnIterator[TExt, T]) distanceToNode(prefix phpoint.Point, bitsToIgnore int) float64 {
	maskMin := ^uint64(0) << uint(bitsToIgnore)
	maskMax := ^maskMin
	buf := make(phpoint.Point, len(prefix))
	for i := range prefix {
		lo := int64(uint64(prefix[i]) & maskMin)
		hi := int64(uint64(prefix[i]) | maskMax)
		c := it.center[i]
		switch {
		case lo > c:
			buf[i] = lo
		case hi < c:
			buf[i] = hi
		default:
			buf[i] = c
		}
	}
	return it.dist(it.centerExt, it.conv.Post(buf))
}

// Valid reports whether the iterator currently points at a result.
func (it *KnnIterator[TExt, T]) Valid() bool { return it.valid }

// Next advances to the next-nearest result.
func (it *KnnIterator[TExt, T]) Next() { it.advance() }

// Key returns the current result's key, translated back to external form.
func (it *KnnIterator[TExt, T]) Key() TExt { return it.conv.Post(it.curKey) }

// Value returns a mutable pointer to the current result's value.
func (it *KnnIterator[TExt, T]) Value() *T { return it.curVal }

// Distance returns the current result's distance from the query center.
func (it *KnnIterator[TExt, T]) Distance() float64 { return it.curDist }
