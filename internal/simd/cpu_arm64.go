//go:build arm64
// +build arm64

package simd

// detectCPUFeaturesImpl fills in the ARM64-specific feature flags.
// NEON is mandatory on arm64, so there is nothing further to probe.
func detectCPUFeaturesImpl() {
	hasNEON = true
}
