package simd

import (
	"encoding/binary"
	"math/bits"
)

// CommonPrefixLen returns the length of the common prefix of a and b.
// It compares eight bytes at a time via a single XOR + trailing-zero
// count (the portable analogue of the SSE/NEON wide-compare the
// teacher's match finder left as a placeholder loop), falling back to
// a byte-at-a-time tail for the remainder.
func CommonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	i := 0
	for i+8 <= n {
		wa := binary.LittleEndian.Uint64(a[i:])
		wb := binary.LittleEndian.Uint64(b[i:])
		if wa != wb {
			return i + bits.TrailingZeros64(wa^wb)/8
		}
		i += 8
	}
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
