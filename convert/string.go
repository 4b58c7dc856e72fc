package convert

import (
	"encoding/binary"

	dolthubmaphash "github.com/dolthub/maphash"
	"golang.org/x/text/unicode/norm"

	"github.com/tzdybal/phtree/phpoint"
)

// UTF8String converts strings into two-dimensional keys: the first
// dimension holds the leading 8 bytes of the NFC-normalized UTF-8 encoding
// (big-endian, so lexicographic byte order matches numeric order, the same
// trick the teacher's key.go applies per integer width), and the second
// dimension is a content hash used purely to disambiguate strings that
// share an 8-byte prefix - two strings sharing a prefix still get distinct
// keys as long as their full contents differ, which is all the uniqueness
// a map key needs. Only strings that are entirely identical after NFC
// normalization ever compare equal.
//
// Normalizing to NFC first (rather than hashing the raw bytes) is the
// reason to convert a string at all instead of treating it as an opaque
// byte blob: two Unicode strings that render identically but use different
// combining-character sequences should be treated as the same key, exactly
// as the teacher's FromString documents.
//
// The hash dimension does not make UTF8String order-preserving beyond the
// 8-byte prefix; this converter is intended for map-style key storage
// (phmap.MultiMap), not for window queries over string ranges.
type UTF8String struct {
	hasher dolthubmaphash.Hasher[string]
}

// NewUTF8String constructs a ready-to-use UTF8String converter. Each
// instance owns its own hash seed; Points produced by different instances
// must not be compared.
func NewUTF8String() UTF8String {
	return UTF8String{hasher: dolthubmaphash.NewHasher[string]()}
}

func (c UTF8String) Pre(s string) phpoint.Point {
	normalized := norm.NFC.String(s)
	var prefix [8]byte
	copy(prefix[:], normalized)
	return phpoint.Point{
		int64(binary.BigEndian.Uint64(prefix[:])),
		int64(c.hasher.Hash(normalized)),
	}
}

// Post cannot recover the original string from a hash-disambiguated key;
// callers that need the external key back must keep their own side table.
// Post returns the normalized 8-byte prefix re-rendered as a best-effort
// string for debugging purposes only.
func (c UTF8String) Post(p phpoint.Point) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(p[0]))
	n := 8
	for n > 0 && buf[n-1] == 0 {
		n--
	}
	return string(buf[:n])
}

func (c UTF8String) PreQuery(lo, hi string) phpoint.Box {
	return phpoint.Box{Lo: c.Pre(lo), Hi: c.Pre(hi)}
}
