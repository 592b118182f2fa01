package suffixarray

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSmall(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte("A")},
		{"two distinct", []byte("ba")},
		{"repeated byte", bytes.Repeat([]byte{'a'}, 16)},
		{"banana", []byte("banana")},
		{"mississippi", []byte("mississippi")},
		{"all same length", []byte("aaaaaaaaaa")},
		{"zero bytes", bytes.Repeat([]byte{0x00}, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix, err := Build(tt.data)
			require.NoError(t, err)
			require.Equal(t, len(tt.data), ix.Len())
			require.NoError(t, ix.Verify(tt.data))
		})
	}
}

func TestBuildRandom(t *testing.T) {
	for _, size := range []int{0, 1, 2, 17, 257, 1024, 4096} {
		data := make([]byte, size)
		_, _ = rand.Read(data)

		ix, err := Build(data)
		require.NoError(t, err)
		require.NoError(t, ix.Verify(data))
	}
}

func TestRSAInverse(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	ix, err := Build(data)
	require.NoError(t, err)

	for i := 0; i <= len(data); i++ {
		require.Equal(t, int32(i), ix.RSA[ix.SA[i]])
	}
}

func TestLCPMatchesBruteForce(t *testing.T) {
	data := []byte("abracadabra abracadabra")
	ix, err := Build(data)
	require.NoError(t, err)

	require.Equal(t, int32(0), ix.LCP[0])
	require.Equal(t, int32(0), ix.LCP[len(data)])

	for i := 0; i < len(data); i++ {
		a := int(ix.SA[i])
		b := int(ix.SA[i+1])
		want := bruteForceCommonPrefix(data, a, b)
		require.Equalf(t, int32(want), ix.LCP[i], "lcp[%d] (sa=%d,%d)", i, a, b)
	}
}

func bruteForceCommonPrefix(data []byte, a, b int) int {
	n := len(data)
	l := 0
	for a+l < n && b+l < n && data[a+l] == data[b+l] {
		l++
	}
	return l
}
