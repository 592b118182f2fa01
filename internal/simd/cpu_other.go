//go:build !amd64 && !arm64
// +build !amd64,!arm64

package simd

// detectCPUFeaturesImpl is a no-op on architectures with no dedicated
// probe. CommonPrefixLen and RepeatCopy do not consult the feature
// flags and run the same code on every architecture.
func detectCPUFeaturesImpl() {}
