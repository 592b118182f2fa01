package simd

import (
	"bytes"
	"testing"
)

func TestCommonPrefixLen(t *testing.T) {
	tests := []struct {
		a, b []byte
		want int
	}{
		{[]byte(""), []byte(""), 0},
		{[]byte("abc"), []byte(""), 0},
		{[]byte("abcdefgh"), []byte("abcdefgh"), 8},
		{[]byte("abcdefghij"), []byte("abcdefghZZ"), 8},
		{[]byte("abcdefghijklmnop"), []byte("abcdefghijklmnoX"), 15},
		{[]byte("X"), []byte("Y"), 0},
		{[]byte("same"), []byte("same"), 4},
	}
	for _, tt := range tests {
		got := CommonPrefixLen(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("CommonPrefixLen(%q,%q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRepeatCopyNonOverlapping(t *testing.T) {
	dst := make([]byte, 16)
	copy(dst, []byte("ABCDEFGH........"))
	RepeatCopy(dst, 8, 8, 8)
	if string(dst) != "ABCDEFGHABCDEFGH" {
		t.Fatalf("got %q", dst)
	}
}

func TestRepeatCopyOverlapping(t *testing.T) {
	// offset=1: run-length expansion of a single repeated byte.
	dst := make([]byte, 10)
	dst[0] = 'A'
	RepeatCopy(dst, 1, 1, 9)
	if !bytes.Equal(dst, bytes.Repeat([]byte{'A'}, 10)) {
		t.Fatalf("got %q", dst)
	}

	// offset=3, length=7: period-3 pattern extended past one period.
	dst2 := make([]byte, 10)
	copy(dst2, []byte("XYZ"))
	RepeatCopy(dst2, 3, 3, 7)
	if string(dst2) != "XYZXYZXYZX" {
		t.Fatalf("got %q", dst2)
	}
}
