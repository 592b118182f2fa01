package shrinkler

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rasky/shrinkler/compress"
	"github.com/rasky/shrinkler/internal/unshrink"
)

func decompressContainer(t *testing.T, blob []byte) []byte {
	t.Helper()
	header, n, err := compress.ParseHeader(blob)
	require.NoError(t, err)
	require.Equal(t, int(header.CompressedSize), len(blob)-n)

	out, err := unshrink.Decompress(blob[n:], int(header.UncompressedSize), header.Flags&compress.FlagParityContext != 0)
	require.NoError(t, err)
	return out
}

func TestCompressRoundTripsTextSample(t *testing.T) {
	data := []byte(`Shrinklers pack Amiga executables by combining LZ77
parsing with an adaptive binary range coder. Shrinklers pack Amiga
executables tightly.`)

	blob, err := Compress(data, Preset(2))
	require.NoError(t, err)

	got := decompressContainer(t, blob)
	require.Equal(t, data, got)
}

func TestCompressRoundTripsEmptyInput(t *testing.T) {
	blob, err := Compress(nil, Preset(1))
	require.NoError(t, err)

	got := decompressContainer(t, blob)
	require.Equal(t, []byte{}, got)
}

func TestCompressRoundTripsRandomBytes(t *testing.T) {
	data := make([]byte, 1024)
	_, err := rand.Read(data)
	require.NoError(t, err)

	blob, err := Compress(data, Preset(1))
	require.NoError(t, err)

	got := decompressContainer(t, blob)
	require.Equal(t, data, got)
}

func TestCompressShrinksRepetitiveInput(t *testing.T) {
	data := bytes.Repeat([]byte("shrinkler "), 200)

	blob, err := Compress(data, DefaultConfig())
	require.NoError(t, err)
	require.Less(t, len(blob), len(data))

	got := decompressContainer(t, blob)
	require.Equal(t, data, got)
}

func TestCompressHeaderCarriesSizes(t *testing.T) {
	data := []byte("the container header must carry both sizes")
	blob, err := Compress(data, Preset(1))
	require.NoError(t, err)

	header, _, err := compress.ParseHeader(blob)
	require.NoError(t, err)
	require.Equal(t, uint32(len(data)), header.UncompressedSize)
	require.Equal(t, uint32(len(blob)-24), header.CompressedSize)
}

func TestPresetsAllRoundTrip(t *testing.T) {
	data := []byte("preset coverage across the full 1..9 range must all decode correctly")
	for level := 1; level <= 9; level++ {
		blob, err := Compress(data, Preset(level))
		require.NoError(t, err)
		got := decompressContainer(t, blob)
		require.Equal(t, data, got)
	}
}
