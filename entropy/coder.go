// Package entropy implements the three interchangeable entropy
// back-ends the compressor drives through a single pass of the parser
// and driver: a counting coder (gathers statistics, free), a
// size-measuring coder (a cost oracle built from those statistics,
// also free), and a range coder (the real bitwise arithmetic coder
// that produces the final bytes). All three share one context-indexed
// probability contract so the parser can be pointed at any of them
// without caring which.
package entropy

// BitPrecision is the number of fractional bits each unit of returned
// size represents: a full coded bit costs 1<<BitPrecision units.
const BitPrecision = 6

// FullBit is one real bit expressed in fractional units.
const FullBit = 1 << BitPrecision

// NumContexts is the total size of the context-probability bank: one
// slot for the repeated-offset flag, a 256-wide binary literal tree
// doubled for byte parity, one kind bit doubled for parity, and two
// 256-wide number-encoding groups (offset, length). See lzcode's
// context layout doc comment for the exact index algebra.
const NumContexts = 1025

// AdjustShift controls how fast the range coder's probabilities track
// observed bit frequencies: a smaller shift adapts faster but noisier.
const AdjustShift = 5

// Coder is the capability set spec.md's LZ encoder drives: a context
// indexed binary decision, and a number encoder built generically on
// top of it (see EncodeNumberGeneric). ctx is always a final slot
// index in [0, NumContexts) — callers apply the "1 + raw_context"
// convention themselves (see KindContext, RepeatedContext,
// NumberContextBase, and lzcode's literal tree) before calling Code;
// Code never re-offsets it.
type Coder interface {
	// Code records/charges one bit in the given context and returns
	// the (possibly zero) fractional-bit cost of doing so.
	Code(ctx int, bit int) uint32
	// EncodeNumber encodes n (n>=2) as described in spec.md §4.4 using
	// contexts based at baseContext, and returns its fractional-bit
	// cost.
	EncodeNumber(baseContext int, n int) uint32
}

// Raw context group identifiers, per spec.md §4.4 (exact,
// bitstream-defining). These are "raw_context" values: the final
// slot index a caller feeds to Code is always 1+raw_context.
const (
	ContextKind        = 0
	ContextRepeated    = -1
	ContextGroupOffset = 2
	ContextGroupLength = 3
)

// NumberContextBase returns the final base slot index for a number
// group (ContextGroupOffset or ContextGroupLength), i.e. 1+(group<<8).
// EncodeNumberGeneric adds to this base directly; the result is
// already a final slot index, not a raw context needing further
// offsetting.
func NumberContextBase(group int) int {
	return 1 + (group << 8)
}

// KindContext returns the final slot index for the literal/Ref kind
// bit given the current parity offset (0 or 256).
func KindContext(parityOffset int) int {
	return 1 + ContextKind + parityOffset
}

// RepeatedContext is the final slot index for the repeated-offset
// flag (slot 0, i.e. 1+ContextRepeated).
const RepeatedContext = 1 + ContextRepeated

// EncodeNumberGeneric implements spec.md §4.4's number encoding atop
// any Coder: let k be one less than the number of payload bits after
// the implicit leading one (k = bits.Len(n)-2 for n>=2). Emit k continuation '1'
// bits then a '0' stop bit into base+2*i+2 for i=0..k, then the k+1
// payload bits MSB-first into base+2*i+1 for i=0..k.
func EncodeNumberGeneric(c Coder, base int, n int) uint32 {
	k := numberClass(n)
	payload := n - (1 << uint(k+1))

	var size uint32
	for i := 0; i < k; i++ {
		size += c.Code(base+2*i+2, 1)
	}
	size += c.Code(base+2*k+2, 0)

	for i := 0; i <= k; i++ {
		bit := (payload >> uint(k-i)) & 1
		size += c.Code(base+2*i+1, bit)
	}
	return size
}

// numberClass returns k such that n lies in [4<<(k-1), 4<<k), i.e.
// k = bitlen(n) - 2, valid for n>=2.
func numberClass(n int) int {
	k := 0
	for (4 << uint(k)) <= n {
		k++
	}
	return k
}

// NumberBitLen returns how many real bits (unscaled, not fractional)
// EncodeNumberGeneric spends encoding n, without per-context cost
// detail.
func NumberBitLen(n int) int {
	k := numberClass(n)
	return 2*k + 2
}
