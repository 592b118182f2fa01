// Package lzcode translates a sequence of LZ symbols (literals and
// back-references) into context-indexed bit decisions against any
// entropy.Coder, and back-projects the fractional bit cost that
// translation spends. It defines the bitstream-facing context layout
// shared by every entropy back-end; get this wrong and counting,
// size-measuring, and range-coding diverge even though they share a
// context-index space.
package lzcode

import "github.com/rasky/shrinkler/entropy"

// State tracks the four pieces of coder state that ripple from one
// symbol to the next, per spec.md §4.2/§4.4.
type State struct {
	AfterFirst bool
	PrevWasRef bool
	Parity     int
	LastOffset int
}

// Encoder drives an entropy.Coder with the Shrinkler literal/reference
// context scheme. ParityContext controls whether the literal/kind
// context banks are split by current byte parity (widens the model;
// exposed to the decoder via the container's flags word).
type Encoder struct {
	Coder         entropy.Coder
	ParityContext bool
}

// New builds an Encoder over the given back-end.
func New(coder entropy.Coder, parityContext bool) *Encoder {
	return &Encoder{Coder: coder, ParityContext: parityContext}
}

func (e *Encoder) parityOffset(parity int) int {
	if !e.ParityContext {
		return 0
	}
	return (parity & 1) << 8
}

// EncodeLiteral codes one literal byte and advances state in place,
// per spec.md §4.4's encode_literal.
func (e *Encoder) EncodeLiteral(value byte, state *State) uint32 {
	parityOffset := e.parityOffset(state.Parity)
	var size uint32

	if state.AfterFirst {
		size += e.Coder.Code(entropy.KindContext(parityOffset), 0)
	}

	contextState := 1
	for i := 7; i >= 0; i-- {
		bit := int(value>>uint(i)) & 1
		size += e.Coder.Code(1+parityOffset+contextState, bit)
		contextState = (contextState << 1) | bit
	}

	state.AfterFirst = true
	state.PrevWasRef = false
	state.Parity++
	return size
}

// EncodeReference codes one back-reference and advances state in
// place, per spec.md §4.4's encode_reference. Requires
// state.AfterFirst, length>=2, offset>=1.
func (e *Encoder) EncodeReference(offset, length int, state *State) uint32 {
	parityOffset := e.parityOffset(state.Parity)
	var size uint32

	size += e.Coder.Code(entropy.KindContext(parityOffset), 1)

	rep := false
	if !state.PrevWasRef {
		rep = offset == state.LastOffset
		bit := 0
		if rep {
			bit = 1
		}
		size += e.Coder.Code(entropy.RepeatedContext, bit)
	}
	if !rep {
		size += e.Coder.EncodeNumber(entropy.NumberContextBase(entropy.ContextGroupOffset), offset+2)
	}
	size += e.Coder.EncodeNumber(entropy.NumberContextBase(entropy.ContextGroupLength), length)

	state.AfterFirst = true
	state.PrevWasRef = true
	state.Parity += length
	state.LastOffset = offset
	return size
}

// Finish codes the stream terminator: a Ref whose offset field
// decodes to 0 (encoded as offset+2 == 2).
func (e *Encoder) Finish(state *State) uint32 {
	parityOffset := e.parityOffset(state.Parity)
	var size uint32

	size += e.Coder.Code(entropy.KindContext(parityOffset), 1)
	if !state.PrevWasRef {
		size += e.Coder.Code(entropy.RepeatedContext, 0)
	}
	size += e.Coder.EncodeNumber(entropy.NumberContextBase(entropy.ContextGroupOffset), 2)
	return size
}

// LiteralCost returns the cost of encoding value as a literal from
// state, leaving the caller's state unchanged (it encodes from a
// copy). It runs the real encode against the same coder, so the coder
// itself is driven as usual: only a SizeMeasuringCoder is left
// untouched, a CountingCoder records the bits and a RangeCoder
// narrows its interval.
func (e *Encoder) LiteralCost(value byte, state State) uint32 {
	return e.EncodeLiteral(value, &state)
}
