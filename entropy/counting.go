package entropy

// CountingCoder gathers bit-frequency statistics per context. Code
// always returns 0: a counting pass costs nothing, it only observes.
// This is the "learn, don't measure" back-end the driver re-encodes
// each non-final pass's result through, to accumulate the next pass's
// SizeMeasuringCoder statistics.
type CountingCoder struct {
	Zeros []uint32
	Ones  []uint32
}

// NewCountingCoder allocates a zeroed counting coder over NumContexts
// contexts.
func NewCountingCoder() *CountingCoder {
	return &CountingCoder{
		Zeros: make([]uint32, NumContexts),
		Ones:  make([]uint32, NumContexts),
	}
}

// Code implements Coder. ctx is already a final slot index.
func (c *CountingCoder) Code(ctx int, bit int) uint32 {
	if bit == 0 {
		c.Zeros[ctx]++
	} else {
		c.Ones[ctx]++
	}
	return 0
}

// EncodeNumber implements Coder.
func (c *CountingCoder) EncodeNumber(base int, n int) uint32 {
	return EncodeNumberGeneric(c, base, n)
}

// Reset zeroes all counts in place, for reuse across passes.
func (c *CountingCoder) Reset() {
	for i := range c.Zeros {
		c.Zeros[i] = 0
		c.Ones[i] = 0
	}
}

// Merge folds new's counts into c with a 3:1 weighted average
// (merged = (old*3 + new)/4), damping how fast statistics swing
// between passes, per spec.md §4.5.
func (c *CountingCoder) Merge(newCounts *CountingCoder) {
	for i := range c.Zeros {
		c.Zeros[i] = (c.Zeros[i]*3 + newCounts.Zeros[i]) / 4
		c.Ones[i] = (c.Ones[i]*3 + newCounts.Ones[i]) / 4
	}
}
