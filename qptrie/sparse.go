package qptrie

import (
	"github.com/hideo55/go-popcount"
)

// bitmapWidth is the number of significant bits in a branch bitmap: one
// sentinel slot plus the 16 real nybble values.
const bitmapWidth = 17

// slotIndex returns the position a child for bit b occupies within a
// densely packed child vector, given the branch's current bitmap. It is
// the same bitmap+popcount trick veb/set.go uses to locate a child among
// 256 possible slots, applied here to 17.
func slotIndex(bitmap uint32, b uint) int {
	mask := uint32(1)<<b - 1
	return int(popcount.Count(uint64(bitmap & mask)))
}

func present(bitmap uint32, b uint) bool {
	return bitmap&(1<<b) != 0
}

// insertChild inserts child at bit b into children, which must not already
// hold a child for b. Returns the updated bitmap and child vector.
func insertChild[K Keyer, V any](bitmap uint32, children []node[K, V], b uint, child node[K, V]) (uint32, []node[K, V]) {
	idx := slotIndex(bitmap, b)

	grown := make([]node[K, V], len(children)+1)
	copy(grown[:idx], children[:idx])
	grown[idx] = child
	copy(grown[idx+1:], children[idx:])

	return bitmap | (1 << b), grown
}

// removeChild removes the child at bit b, which must be present. Returns
// the updated bitmap and child vector.
func removeChild[K Keyer, V any](bitmap uint32, children []node[K, V], b uint) (uint32, []node[K, V]) {
	idx := slotIndex(bitmap, b)

	shrunk := make([]node[K, V], len(children)-1)
	copy(shrunk[:idx], children[:idx])
	copy(shrunk[idx:], children[idx+1:])

	return bitmap &^ (1 << b), shrunk
}
