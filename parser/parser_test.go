package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rasky/shrinkler/entropy"
	"github.com/rasky/shrinkler/lzcode"
	"github.com/rasky/shrinkler/matcher"
	"github.com/rasky/shrinkler/suffixarray"
)

func reconstruct(data []byte, symbols []lzcode.Symbol) []byte {
	out := make([]byte, 0, len(data))
	for _, s := range symbols {
		if !s.Ref {
			out = append(out, s.Literal)
			continue
		}
		for i := 0; i < s.Length; i++ {
			out = append(out, out[len(out)-s.Offset])
		}
	}
	return out
}

func parseData(t *testing.T, data []byte) Result {
	t.Helper()
	ix, err := suffixarray.Build(data)
	require.NoError(t, err)
	counts := entropy.NewCountingCoder()
	sizer := entropy.NewSizeMeasuringCoder(counts)
	m := matcher.New(data, ix, matcher.DefaultConfig())
	p := New(data, sizer, false, Config{LengthMargin: 3, SkipLength: 3000})
	return p.Parse(m)
}

func TestParseEmptyBlock(t *testing.T) {
	result := parseData(t, []byte{})
	require.Empty(t, result.Symbols)
}

func TestParseSingleByte(t *testing.T) {
	result := parseData(t, []byte("A"))
	require.Equal(t, []byte("A"), reconstruct([]byte("A"), result.Symbols))
	require.Len(t, result.Symbols, 1)
	require.False(t, result.Symbols[0].Ref)
}

func TestParseRoundTripsVariousInputs(t *testing.T) {
	inputs := [][]byte{
		[]byte("AAAAAAAAAAAAAAAA"),
		[]byte("banana banana banana"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		[]byte("abcabcabcabcabcabcabcabcabcabc"),
	}
	for _, data := range inputs {
		result := parseData(t, data)
		got := reconstruct(data, result.Symbols)
		require.Equal(t, data, got, "round trip for %q", data)
	}
}

func TestParseRepetitionUsesReferences(t *testing.T) {
	data := []byte("AAAAAAAAAAAAAAAA")
	result := parseData(t, data)
	var sawRef bool
	for _, s := range result.Symbols {
		if s.Ref {
			sawRef = true
		}
	}
	require.True(t, sawRef, "expected at least one back-reference for a repeated run")
}

func TestParseTerminates(t *testing.T) {
	data := make([]byte, 2000)
	for i := range data {
		data[i] = byte(i % 7)
	}
	result := parseData(t, data)
	got := reconstruct(data, result.Symbols)
	require.Equal(t, data, got)
}
