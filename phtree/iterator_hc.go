package phtree

import (
	"github.com/tzdybal/phtree/convert"
	"github.com/tzdybal/phtree/internal/phbits"
	"github.com/tzdybal/phtree/internal/phchild"
	"github.com/tzdybal/phtree/internal/phnode"
	"github.com/tzdybal/phtree/phpoint"
)

// calcLimits computes the two hypercube-address bitmasks a node-local
// window query needs (spec §4.4.2, "HC-filtered window query"): every
// address in [lower, upper] that also satisfies IsPosValid overlaps the
// query box. Ported bit-for-bit from the original source's
// ForEachHC::CalcLimits, including its special case at the sign bit
// (postfixLen == W-1, where a leading 1 means "more negative", the
// opposite of every other bit's meaning).
func calcLimits(postfixLen uint8, prefix, lo, hi phpoint.Point) (lower, upper uint64) {
	if postfixLen < phbits.MaxBitWidth-1 {
		maskHcBit := uint64(1) << postfixLen
		maskVT := ^uint64(0) << postfixLen
		for i := range prefix {
			lower <<= 1
			upper <<= 1
			bisection := int64((uint64(prefix[i]) | maskHcBit) & maskVT)
			if lo[i] >= bisection {
				lower |= 1
			}
			if hi[i] >= bisection {
				upper |= 1
			}
		}
		return lower, upper
	}
	for i := range prefix {
		lower <<= 1
		upper <<= 1
		if lo[i] < 0 {
			upper |= 1
		}
		if hi[i] < 0 {
			lower |= 1
		}
	}
	return lower, upper
}

// isPosValid reports whether childAddr overlaps the query box given the
// node-local bitmasks from calcLimits (ForEachHC::TraverseNode's
// bit-mask check).
func isPosValid(childAddr, lower, upper uint64) bool {
	return (childAddr|lower)&upper == childAddr
}

// hcFrame is one level of an HCIterator's DFS stack.
type hcFrame[T any] struct {
	cur   phchild.Cursor[phnode.Entry[T]]
	lower uint64
	upper uint64
}

// HCIterator is a window (hypercube) query: it yields every entry whose
// key falls within [lo, hi], pruning whole subtrees via calcLimits/
// isPosValid/nodeValid rather than visiting every entry (spec §4.4.2).
// Grounded on the original source's phtree/v16/iterator_hc.h +
// for_each_hc.h.
type HCIterator[TExt any, T any] struct {
	conv   convert.Converter[TExt]
	filter Filter[T]
	lo, hi phpoint.Point
	stack  []hcFrame[T]
	curKey phpoint.Point
	curVal *T
	valid  bool
}

// BeginQuery returns an unfiltered window-query iterator over [lo, hi].
func (t *PHTree[TExt, T]) BeginQuery(lo, hi TExt) *HCIterator[TExt, T] {
	return t.BeginQueryFiltered(lo, hi, NoOpFilter[T]{})
}

// BeginQueryFiltered returns a window-query iterator over [lo, hi],
// additionally skipping any entry or subtree filter rejects.
func (t *PHTree[TExt, T]) BeginQueryFiltered(lo, hi TExt, filter Filter[T]) *HCIterator[TExt, T] {
	return t.BeginQueryBox(t.conv.PreQuery(lo, hi), filter)
}

// BeginQueryBox is BeginQueryFiltered for a caller that already has the
// query range in internal key space (phpoint.Box) rather than TExt -
// needed by converters such as convert.Box, whose most useful query
// (IntersectQuery, an overlap test) takes differently-shaped arguments
// than its Converter-interface-conformant PreQuery and so cannot be
// reached through the TExt-typed entry points above.
func (t *PHTree[TExt, T]) BeginQueryBox(box phpoint.Box, filter Filter[T]) *HCIterator[TExt, T] {
	it := &HCIterator[TExt, T]{conv: t.conv, filter: filter, lo: box.Lo, hi: box.Hi}
	it.pushNode(t.root, make(phpoint.Point, t.dim))
	it.advance()
	return it
}

func (it *HCIterator[TExt, T]) pushNode(n *phnode.Node[T], key phpoint.Point) {
	lower, upper := calcLimits(n.PostfixLen(), key, it.lo, it.hi)
	it.stack = append(it.stack, hcFrame[T]{cur: n.EntriesFrom(lower), lower: lower, upper: upper})
}

// nodeValid combines the infix-vs-box bound check and the caller's filter
// (ForEachHC::CheckNode): a node with a non-empty infix must still overlap
// the query box on the bits its prefix actually fixes.
func (it *HCIterator[TExt, T]) nodeValid(key phpoint.Point, node *phnode.Node[T]) bool {
	if node.InfixLen() > 0 {
		mask := phbits.PrefixMask(node.PostfixLen())
		for d := range key {
			prefix := int64(uint64(key[d]) & mask)
			loMasked := int64(uint64(it.lo[d]) & mask)
			if prefix > it.hi[d] || prefix < loMasked {
				return false
			}
		}
	}
	return it.filter.NodeValid(key, int(node.PostfixLen())+1)
}

func (it *HCIterator[TExt, T]) advance() {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if !top.cur.Valid() || top.cur.Addr() > top.upper {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		addr := top.cur.Addr()
		e := top.cur.Value()
		top.cur.Next()
		if !isPosValid(addr, top.lower, top.upper) {
			continue
		}
		if e.IsInternal() {
			child := e.ChildNode()
			if it.nodeValid(e.Key(), child) {
				it.pushNode(child, e.Key())
			}
			continue
		}
		if phbits.InRange(e.Key(), it.lo, it.hi) && it.filter.EntryValid(e.Key(), e.Value()) {
			it.curKey = e.Key()
			it.curVal = e.ValuePtr()
			it.valid = true
			return
		}
	}
	it.valid = false
}

func (it *HCIterator[TExt, T]) Valid() bool { return it.valid }
func (it *HCIterator[TExt, T]) Next()       { it.advance() }
func (it *HCIterator[TExt, T]) Key() TExt   { return it.conv.Post(it.curKey) }
func (it *HCIterator[TExt, T]) Value() *T   { return it.curVal }
