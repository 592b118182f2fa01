//go:build amd64
// +build amd64

package simd

import "golang.org/x/sys/cpu"

// detectCPUFeaturesImpl fills in the AMD64-specific feature flags.
func detectCPUFeaturesImpl() {
	hasSSE2 = cpu.X86.HasSSE2
	hasSSE41 = cpu.X86.HasSSE41
	hasAVX2 = cpu.X86.HasAVX2
}
