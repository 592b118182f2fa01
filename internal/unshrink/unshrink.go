package unshrink

import (
	"fmt"

	"github.com/rasky/shrinkler/entropy"
	"github.com/rasky/shrinkler/internal/simd"
)

// Decompress inverts the LZ/range-coded bitstream lzcode.Encoder over
// an entropy.RangeCoder produces. expectedLen is the uncompressed size
// from the container header, used to preallocate and to recognize an
// empty block, whose stream holds only the terminator (no leading
// literal); otherwise decoding stops at the stream's own terminator
// symbol.
func Decompress(data []byte, expectedLen int, parityContext bool) ([]byte, error) {
	dec := newRangeDecoder(data)
	out := make([]byte, 0, expectedLen)

	parityOffset := func(parity int) int {
		if !parityContext {
			return 0
		}
		return (parity & 1) << 8
	}

	afterFirst := false
	prevWasRef := false
	parity := 0
	lastOffset := 0

	offsetBase := entropy.NumberContextBase(entropy.ContextGroupOffset)
	lengthBase := entropy.NumberContextBase(entropy.ContextGroupLength)

	decodeLiteral := func() byte {
		po := parityOffset(parity)
		contextState := 1
		for i := 0; i < 8; i++ {
			bit := dec.decodeBit(1 + po + contextState)
			contextState = (contextState << 1) | bit
		}
		return byte(contextState & 0xFF)
	}

	for {
		if !afterFirst && expectedLen > 0 {
			b := decodeLiteral()
			out = append(out, b)
			afterFirst = true
			prevWasRef = false
			parity++
			continue
		}

		po := parityOffset(parity)
		kind := dec.decodeBit(entropy.KindContext(po))
		if kind == 0 {
			b := decodeLiteral()
			out = append(out, b)
			prevWasRef = false
			parity++
			continue
		}

		rep := false
		if !prevWasRef {
			rep = dec.decodeBit(entropy.RepeatedContext) == 1
		}

		var offset int
		if rep {
			offset = lastOffset
		} else {
			n := dec.decodeNumber(offsetBase)
			offset = n - 2
		}

		if offset == 0 {
			break // stream terminator
		}
		if offset > len(out) {
			return nil, fmt.Errorf("unshrink: offset %d exceeds decoded length %d", offset, len(out))
		}

		length := dec.decodeNumber(lengthBase)
		pos := len(out)
		out = append(out, make([]byte, length)...)
		simd.RepeatCopy(out, pos, offset, length)

		prevWasRef = true
		parity += length
		lastOffset = offset
	}

	return out, nil
}
