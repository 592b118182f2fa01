package entropy

import "math"

// SizeMeasuringCoder is a cost oracle: for each context it precomputes
// the fractional-bit cost of coding a 0 and a 1 from a CountingCoder's
// observed frequencies, using Shannon coding with count-1 smoothing.
// Code never mutates anything; it only looks up the stored cost.
type SizeMeasuringCoder struct {
	zeroCost []uint32
	oneCost  []uint32

	// numberCache memoizes EncodeNumber(base, n) for n in
	// [2, cacheLimit), lazily filled on first use of each n. Pure
	// optimization; correctness never depends on it (spec.md §4.5,
	// §9).
	numberCache map[int]uint32
	cacheBase   int
	cacheLimit  int
}

// NewSizeMeasuringCoder builds the cost table from counts. total is
// not read from counts directly because the Shannon cost of a bit
// needs the per-context total of both outcomes.
func NewSizeMeasuringCoder(counts *CountingCoder) *SizeMeasuringCoder {
	s := &SizeMeasuringCoder{
		zeroCost: make([]uint32, NumContexts),
		oneCost:  make([]uint32, NumContexts),
	}
	for i := 0; i < NumContexts; i++ {
		z := counts.Zeros[i]
		o := counts.Ones[i]
		total := z + o
		s.zeroCost[i] = sizeForCount(z, total)
		s.oneCost[i] = sizeForCount(o, total)
	}
	return s
}

// sizeForCount implements spec.md §4.5's Shannon-cost formula with
// count-1 smoothing: size(c,t) = clamp(round(log2(t/c) *
// 2^BitPrecision), 2, 12<<BitPrecision). c is smoothed by +1 and t by
// +2 (one per outcome) so a context with zero observations never
// yields an infinite or zero-probability estimate.
func sizeForCount(c, total uint32) uint32 {
	cc := float64(c) + 1
	tt := float64(total) + 2 // +1 on each side's smoothing sums to +2
	bitsF := math.Log2(tt/cc) * float64(FullBit)
	size := int64(math.Round(bitsF))
	if size < 2 {
		size = 2
	}
	if max := int64(12 << BitPrecision); size > max {
		size = max
	}
	return uint32(size)
}

// Code implements Coder: returns the precomputed cost, charging
// nothing else. ctx is already a final slot index.
func (s *SizeMeasuringCoder) Code(ctx int, bit int) uint32 {
	if bit == 0 {
		return s.zeroCost[ctx]
	}
	return s.oneCost[ctx]
}

// EnableNumberCache turns on memoized EncodeNumber results for numbers
// in [2, dataLength], all sharing the same baseContext group. An
// instance caches one group only; numbers of any other base are
// computed uncached. The driver enables it for the offset group.
func (s *SizeMeasuringCoder) EnableNumberCache(baseContext, dataLength int) {
	s.cacheBase = baseContext
	s.cacheLimit = dataLength + 1
	s.numberCache = make(map[int]uint32, dataLength/4+1)
}

// EncodeNumber implements Coder, transparently consulting the cache
// when enabled and the base matches.
func (s *SizeMeasuringCoder) EncodeNumber(base int, n int) uint32 {
	if s.numberCache != nil && base == s.cacheBase && n < s.cacheLimit {
		if v, ok := s.numberCache[n]; ok {
			return v
		}
		cost := EncodeNumberGeneric(s, base, n)
		s.numberCache[n] = cost
		return cost
	}
	return EncodeNumberGeneric(s, base, n)
}
