package qptrie

// Keyer exposes the deterministic byte-sequence view of a key. Two keys
// compare equal iff their Bytes() are identical; the trie never calls
// Bytes() on the same logical key and expects different results.
type Keyer interface {
	Bytes() []byte
}

// Bytes adapts a plain []byte into a Keyer.
type Bytes []byte

// Bytes returns b itself; it is already a byte view.
func (b Bytes) Bytes() []byte { return b }

// Str adapts a string into a Keyer; converting a string to Str does not
// copy it.
type Str string

// Bytes returns a fresh copy of the UTF-8 bytes of s on each call.
func (s Str) Bytes() []byte { return []byte(s) }

func keysEqual[K Keyer](a, b K) bool {
	ab, bb := a.Bytes(), b.Bytes()
	if len(ab) != len(bb) {
		return false
	}
	for i := range ab {
		if ab[i] != bb[i] {
			return false
		}
	}
	return true
}
