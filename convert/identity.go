package convert

import "github.com/tzdybal/phtree/phpoint"

// Identity is the no-op converter for keys that are already integer tuples.
type Identity struct{}

func (Identity) Pre(p phpoint.Point) phpoint.Point { return p }

func (Identity) Post(p phpoint.Point) phpoint.Point { return p }

func (Identity) PreQuery(lo, hi phpoint.Point) phpoint.Box {
	return phpoint.Box{Lo: lo, Hi: hi}
}
