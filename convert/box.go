package convert

import (
	"math"

	"github.com/tzdybal/phtree/phpoint"
)

// ExtBox is a box-shaped external key: the low and high corner in the
// caller's own coordinate type.
type ExtBox[TExt any] struct {
	Lo TExt
	Hi TExt
}

// Box encodes a DIM-dimensional box key as a 2*DIM-dimensional point: the
// low corner's DIM coordinates followed by the high corner's DIM
// coordinates (spec §6.1).
//
// Box's PreQuery (required by the Converter interface so a Box-keyed tree
// can still use phtree.PHTree.BeginQuery directly) treats a query as a
// plain per-corner range: it returns every stored box whose own low and
// high corners both fall within [lo.Lo, hi.Lo] and [lo.Hi, hi.Hi]
// respectively, i.e. containment, not overlap. "Which stored boxes
// overlap this query rectangle" is a different, more useful query for
// spatial indexing, and is covered separately by IntersectQuery.
type Box[TExt any] struct {
	Inner Converter[TExt]
	// Dim is the dimensionality of the *unencoded* box (half of the
	// encoded point's dimensionality).
	Dim int
}

func (c Box[TExt]) Pre(b ExtBox[TExt]) phpoint.Point {
	lo := c.Inner.Pre(b.Lo)
	hi := c.Inner.Pre(b.Hi)
	out := make(phpoint.Point, 0, len(lo)+len(hi))
	out = append(out, lo...)
	out = append(out, hi...)
	return out
}

func (c Box[TExt]) Post(p phpoint.Point) ExtBox[TExt] {
	d := len(p) / 2
	return ExtBox[TExt]{
		Lo: c.Inner.Post(p[:d]),
		Hi: c.Inner.Post(p[d:]),
	}
}

// PreQuery builds the encoded-space search box for a per-corner
// containment query: every stored box whose low corner is in [lo.Lo,
// hi.Lo] and whose high corner is in [lo.Hi, hi.Hi], satisfying the
// Converter interface's contract that PreQuery's two arguments are the
// same type as Pre/Post's key.
func (c Box[TExt]) PreQuery(lo, hi ExtBox[TExt]) phpoint.Box {
	return phpoint.Box{Lo: c.Pre(lo), Hi: c.Pre(hi)}
}

// IntersectQuery builds the encoded-space search box for "find all stored
// boxes overlapping [qlo, qhi]": a stored box (slo, shi) overlaps iff
// slo <= qhi and shi >= qlo coordinate-wise, so the encoded low half is
// bounded above by qhi (and unbounded below) and the encoded high half is
// bounded below by qlo (and unbounded above) - the box-key
// intersection-query trick referenced in spec §9's open questions, and
// the reason D==MaxBitWidth (and the window query degrades to starting at
// the root) whenever a query box's low or high corner reaches the
// representable extreme. Unlike PreQuery, this takes plain TExt corners
// (a query rectangle, not a query box-of-boxes), so it is exposed as its
// own method rather than folded into the Converter interface.
func (c Box[TExt]) IntersectQuery(qlo, qhi TExt) phpoint.Box {
	encLo := c.Inner.Pre(qlo)
	encHi := c.Inner.Pre(qhi)

	lo := make(phpoint.Point, 2*c.Dim)
	hi := make(phpoint.Point, 2*c.Dim)
	for i := 0; i < c.Dim; i++ {
		lo[i] = math.MinInt64
		hi[i] = encHi[i]
		lo[c.Dim+i] = encLo[i]
		hi[c.Dim+i] = math.MaxInt64
	}
	return phpoint.Box{Lo: lo, Hi: hi}
}
