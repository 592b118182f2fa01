package compress

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rasky/shrinkler/internal/unshrink"
)

func roundTrip(t *testing.T, data []byte, cfg Config) {
	t.Helper()
	result, err := Pack(data, cfg)
	require.NoError(t, err)

	got, err := unshrink.Decompress(result.Data, len(data), cfg.ParityContext)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestPackEmptyBlock(t *testing.T) {
	roundTrip(t, []byte{}, Preset(1))
}

func TestPackSingleByte(t *testing.T) {
	roundTrip(t, []byte("A"), Preset(1))
}

func TestPackPureRepetition(t *testing.T) {
	data := bytes.Repeat([]byte("A"), 16)
	cfg := Preset(1)
	result, err := Pack(data, cfg)
	require.NoError(t, err)
	require.Less(t, len(result.Data), len(data))

	got, err := unshrink.Decompress(result.Data, len(data), cfg.ParityContext)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestPackZeroBlock(t *testing.T) {
	data := make([]byte, 256)
	roundTrip(t, data, Preset(1))
}

func TestPackRandomBytes(t *testing.T) {
	data := make([]byte, 512)
	_, err := rand.Read(data)
	require.NoError(t, err)
	roundTrip(t, data, Preset(1))
}

func TestPackTextSample(t *testing.T) {
	data := []byte(`The quick brown fox jumps over the lazy dog.
The quick brown fox jumps over the lazy dog again.
Pack, pack, pack: the quick brown fox packs twice.`)
	roundTrip(t, data, Preset(2))
}

func TestPackDeterministic(t *testing.T) {
	data := []byte("determinism must hold across repeated runs of the same input")
	cfg := Preset(2)

	r1, err := Pack(data, cfg)
	require.NoError(t, err)
	r2, err := Pack(data, cfg)
	require.NoError(t, err)
	require.Equal(t, r1.Data, r2.Data)
}

func TestPackMoreIterationsNeverWorsens(t *testing.T) {
	data := []byte("abcabcabcabcabcabc abcabcabcabcabcabc xyzxyzxyzxyzxyzxyz")

	low, err := Pack(data, Config{Iterations: 1, LengthMargin: 3, MatchPatience: 300, MaxSameLength: 30, SkipLength: 3000, References: 100000})
	require.NoError(t, err)
	high, err := Pack(data, Config{Iterations: 4, LengthMargin: 3, MatchPatience: 300, MaxSameLength: 30, SkipLength: 3000, References: 100000})
	require.NoError(t, err)

	require.LessOrEqual(t, len(high.Data), len(low.Data))
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{CompressedSize: 123, UncompressedSize: 456, SafetyMargin: 0, Flags: FlagParityContext}
	marshaled := h.Marshal()

	parsed, n, err := ParseHeader(marshaled)
	require.NoError(t, err)
	require.Equal(t, len(marshaled), n)
	require.Equal(t, h, parsed)
}

func TestConfigValidateRejectsBadParameters(t *testing.T) {
	cfg := Preset(3)
	cfg.Iterations = 0
	_, err := Pack([]byte("x"), cfg)
	require.Error(t, err)
}
