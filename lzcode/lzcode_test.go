package lzcode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rasky/shrinkler/entropy"
)

func TestEncodeLiteralFirstSymbolSkipsKindBit(t *testing.T) {
	counts := entropy.NewCountingCoder()
	enc := New(counts, false)
	var st State

	enc.EncodeLiteral('A', &st)
	require.True(t, st.AfterFirst)
	require.False(t, st.PrevWasRef)
	require.Equal(t, 1, st.Parity)

	// First symbol must not have charged the kind-bit context.
	kindCtx := entropy.KindContext(0)
	require.Zero(t, counts.Zeros[kindCtx]+counts.Ones[kindCtx])
}

func TestEncodeReferenceRepeatedOffsetOmitsNumber(t *testing.T) {
	counts := entropy.NewCountingCoder()
	enc := New(counts, false)
	st := State{AfterFirst: true, PrevWasRef: false, LastOffset: 5}

	enc.EncodeReference(5, 4, &st)
	require.True(t, st.PrevWasRef)
	require.Equal(t, 5, st.LastOffset)

	offsetBase := entropy.NumberContextBase(entropy.ContextGroupOffset)
	require.Zero(t, counts.Zeros[offsetBase+2]+counts.Ones[offsetBase+2])
}

func TestEncodeReferenceAfterRefOmitsRepeatedBit(t *testing.T) {
	counts := entropy.NewCountingCoder()
	enc := New(counts, false)
	st := State{AfterFirst: true, PrevWasRef: true, LastOffset: 9}

	before := counts.Zeros[entropy.RepeatedContext] + counts.Ones[entropy.RepeatedContext]
	enc.EncodeReference(3, 4, &st)
	after := counts.Zeros[entropy.RepeatedContext] + counts.Ones[entropy.RepeatedContext]
	require.Equal(t, before, after)
}

func TestFinishEncodesSentinelOffset(t *testing.T) {
	counts := entropy.NewCountingCoder()
	enc := New(counts, false)
	st := State{AfterFirst: true, PrevWasRef: false}

	enc.Finish(&st)

	offsetBase := entropy.NumberContextBase(entropy.ContextGroupOffset)
	// encode_number(base, 2) emits one stop bit (k=0) then one payload
	// bit, both charged somewhere in [base, base+2].
	var total uint32
	for i := 0; i < 4; i++ {
		total += counts.Zeros[offsetBase+i] + counts.Ones[offsetBase+i]
	}
	require.NotZero(t, total)
}

func TestParityContextSplitsLiteralContexts(t *testing.T) {
	counts := entropy.NewCountingCoder()
	enc := New(counts, true)

	var even State
	enc.EncodeLiteral('x', &even)

	odd := State{Parity: 1}
	enc.EncodeLiteral('x', &odd)

	// With parity context on, the two calls must not collide on the
	// same literal-tree slots: each call's first bit lands in its own
	// bank's tree root (1+0+1 for even, 1+256+1 for odd parity).
	total := uint32(0)
	for i := 0; i < entropy.NumContexts; i++ {
		total += counts.Zeros[i] + counts.Ones[i]
	}
	require.Equal(t, uint32(16), total) // 8 bits * 2 calls, no kind bit on first call of each state
	require.Equal(t, uint32(1), counts.Zeros[2]+counts.Ones[2])
	require.Equal(t, uint32(1), counts.Zeros[2+256]+counts.Ones[2+256])
}

func TestCountingCoderNumberEncodingCostsNothing(t *testing.T) {
	counts := entropy.NewCountingCoder()
	for _, n := range []int{2, 3, 4, 7, 8, 100, 4095} {
		cost := entropy.EncodeNumberGeneric(counts, entropy.NumberContextBase(entropy.ContextGroupLength), n)
		require.Equal(t, uint32(0), cost) // counting coder always reports 0 cost
	}
}
