// Package unshrink is a minimal, test-support-only inverse of the
// bitstream entropy.RangeCoder and lzcode.Encoder produce together: it
// exists so the compressor's round-trip property is checkable in this
// repository, not as a polished decompressor product.
package unshrink

import "github.com/rasky/shrinkler/entropy"

const (
	probBits = 16
	probOne  = 1 << probBits
	probInit = probOne / 2

	intervalLow  = 0x8000
	intervalHigh = 0x10000
)

// rangeDecoder mirrors entropy.RangeCoder's adaptive probability model
// and interval bit for bit, reading instead of writing. code tracks
// "value so far minus the encoder's intervalMin" (an offset always in
// [0, intervalSize)), so unlike the encoder it never needs to track
// intervalMin or propagate carries — those were already resolved by
// the encoder before any bit it emitted was read here.
type rangeDecoder struct {
	prob         []uint16
	code         uint32
	intervalSize uint32
	in           []byte
	bitPos       int
}

func newRangeDecoder(data []byte) *rangeDecoder {
	d := &rangeDecoder{
		prob:         make([]uint16, entropy.NumContexts),
		intervalSize: intervalHigh - 1,
		in:           data,
	}
	for i := range d.prob {
		d.prob[i] = probInit
	}
	// Preload a full interval-width window of real stream bits, the
	// bit-level analogue of an LZMA decoder's upfront code-register
	// read: the very first comparison needs intervalSize-worth of
	// precision before any renormalize step would otherwise supply it.
	for i := 0; i < 16; i++ {
		d.code = (d.code<<1 | uint32(d.nextBit())) & (intervalHigh - 1)
	}
	return d
}

func (d *rangeDecoder) nextBit() int {
	byteIdx := d.bitPos / 8
	bitInByte := uint(d.bitPos % 8)
	d.bitPos++
	if byteIdx >= len(d.in) {
		return 0
	}
	return int((d.in[byteIdx] >> (7 - bitInByte)) & 1)
}

// decodeBit inverts RangeCoder.Code for the same ctx.
func (d *rangeDecoder) decodeBit(ctx int) int {
	p := uint32(d.prob[ctx])
	threshold := (d.intervalSize * p) >> probBits

	var bit int
	if d.code < threshold {
		bit = 1
		d.intervalSize = threshold
		d.prob[ctx] = uint16(p + ((probOne - 1) >> entropy.AdjustShift) - (p >> entropy.AdjustShift))
	} else {
		bit = 0
		d.code -= threshold
		d.intervalSize -= threshold
		d.prob[ctx] = uint16(p - (p >> entropy.AdjustShift))
	}

	for d.intervalSize < intervalLow {
		d.code = (d.code<<1 | uint32(d.nextBit())) & (intervalHigh - 1)
		d.intervalSize <<= 1
	}
	return bit
}

// decodeNumber inverts entropy.EncodeNumberGeneric.
func (d *rangeDecoder) decodeNumber(base int) int {
	k := 0
	for d.decodeBit(base+2*k+2) == 1 {
		k++
	}
	payload := 0
	for i := 0; i <= k; i++ {
		payload = (payload << 1) | d.decodeBit(base+2*i+1)
	}
	return (1 << uint(k+1)) + payload
}
