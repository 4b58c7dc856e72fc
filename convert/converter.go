// Package convert implements the PH-Tree's boundary between external key
// types (floats, strings, application-defined points) and the internal
// bit-sortable integer representation the tree actually indexes
// (phpoint.Point). See spec §6.1.
package convert

import "github.com/tzdybal/phtree/phpoint"

// Converter maps between an external key type TExt and the tree's internal
// phpoint.Point representation. Pre and Post must be inverses of one
// another, and Pre must be order-preserving per dimension: if two external
// keys compare as a < b in dimension d, Pre(a)[d] < Pre(b)[d] must hold.
//
// PreQuery converts an external box-shaped query range into an internal
// Box; for point converters this is simply Pre applied to both corners.
type Converter[TExt any] interface {
	Pre(TExt) phpoint.Point
	Post(phpoint.Point) TExt
	PreQuery(lo, hi TExt) phpoint.Box
}
