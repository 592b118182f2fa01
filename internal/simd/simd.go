// Package simd provides word-at-a-time byte-compare and byte-copy
// kernels for the hot loops of the compressor: suffix/match
// common-prefix extension and the overlapping copy used to replay a
// back-reference. It also reports detected CPU features
// (DetectFeatures); the kernels do not dispatch on them.
package simd

import (
	"runtime"
	"sync"
)

// CPU architecture and feature detection, mirroring the structure of
// a typical Go SIMD-dispatch package: a portable default plus
// per-arch overrides wired through build-tagged files.
var (
	isAMD64 = runtime.GOARCH == "amd64"
	isARM64 = runtime.GOARCH == "arm64"

	hasSSE2   bool
	hasSSE41  bool
	hasAVX2   bool
	hasNEON   bool

	detectOnce sync.Once
)

// Features reports which CPU features were detected on this machine.
type Features struct {
	HasSSE2  bool
	HasSSE41 bool
	HasAVX2  bool
	HasNEON  bool
}

// DetectFeatures initializes (once) and returns the detected feature
// set. Exported for diagnostics only; CommonPrefixLen and RepeatCopy
// do not read these flags.
func DetectFeatures() Features {
	detectOnce.Do(detectCPUFeatures)
	return Features{
		HasSSE2:  hasSSE2,
		HasSSE41: hasSSE41,
		HasAVX2:  hasAVX2,
		HasNEON:  hasNEON,
	}
}

func detectCPUFeatures() {
	if isAMD64 {
		hasSSE2 = true
	}
	if isARM64 {
		hasNEON = true
	}
	detectCPUFeaturesImpl()
}
