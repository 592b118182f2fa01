package lzcode

// Symbol is either a literal byte or a back-reference, the two LZ
// symbol shapes spec.md's block format is built from.
type Symbol struct {
	Ref     bool
	Literal byte
	Offset  int
	Length  int
}

// Lit builds a literal symbol.
func Lit(b byte) Symbol { return Symbol{Literal: b} }

// MakeRef builds a back-reference symbol.
func MakeRef(offset, length int) Symbol { return Symbol{Ref: true, Offset: offset, Length: length} }

// EncodeAll drives symbols through a fresh zero State, followed by the
// stream terminator, and returns the total fractional-bit cost. Used
// both to measure a chosen parse's real cost against any back-end and,
// with a RangeCoder, to actually emit the compressed bytes.
func (e *Encoder) EncodeAll(symbols []Symbol) uint32 {
	var state State
	var size uint32
	for _, s := range symbols {
		if s.Ref {
			size += e.EncodeReference(s.Offset, s.Length, &state)
		} else {
			size += e.EncodeLiteral(s.Literal, &state)
		}
	}
	size += e.Finish(&state)
	return size
}
