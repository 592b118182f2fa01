package compress

import (
	"github.com/rasky/shrinkler/entropy"
	"github.com/rasky/shrinkler/lzcode"
	"github.com/rasky/shrinkler/matcher"
	"github.com/rasky/shrinkler/parser"
	"github.com/rasky/shrinkler/suffixarray"
)

// numberCacheContexts is the headroom added to len(data) when sizing
// the offset-number cost cache, so every encoded offset field
// (offset+2) falls inside it.
const numberCacheContexts = 16

// Result is one completed compression: the container header plus the
// real range-coded payload.
type Result struct {
	Header Header
	Data   []byte
}

// Pack runs the iterative refinement loop of spec.md §4.7 and emits
// the final container.
func Pack(data []byte, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	ix, err := suffixarray.Build(data)
	if err != nil {
		return Result{}, err
	}

	matchCfg := matcher.Config{
		MaxSameLength: cfg.MaxSameLength,
		Patience:      cfg.MatchPatience,
		MinLength:     2,
	}
	parseCfg := parser.Config{
		LengthMargin: cfg.LengthMargin,
		SkipLength:   cfg.SkipLength,
		EdgeCapacity: cfg.References,
	}

	counts := entropy.NewCountingCoder()
	var best []lzcode.Symbol
	var bestSize uint32
	haveBest := false

	for pass := 0; pass < cfg.Iterations; pass++ {
		sizer := entropy.NewSizeMeasuringCoder(counts)
		sizer.EnableNumberCache(entropy.NumberContextBase(entropy.ContextGroupOffset), len(data)+numberCacheContexts)

		m := matcher.New(data, ix, matchCfg)
		p := parser.New(data, sizer, cfg.ParityContext, parseCfg)
		result := p.Parse(m)

		realSize := measureRealSize(result.Symbols, cfg.ParityContext)
		if !haveBest || realSize < bestSize {
			best = result.Symbols
			bestSize = realSize
			haveBest = true
		}

		if pass < cfg.Iterations-1 {
			passCounts := entropy.NewCountingCoder()
			passEnc := lzcode.New(passCounts, cfg.ParityContext)
			passEnc.EncodeAll(result.Symbols)
			counts.Merge(passCounts)
		}
	}

	payload, err := emit(best, cfg.ParityContext)
	if err != nil {
		return Result{}, err
	}

	header := Header{
		CompressedSize:   uint32(len(payload)),
		UncompressedSize: uint32(len(data)),
		SafetyMargin:     0,
		Flags:            0,
	}
	if cfg.ParityContext {
		header.Flags |= FlagParityContext
	}
	return Result{Header: header, Data: payload}, nil
}

// measureRealSize re-encodes symbols through a throwaway RangeCoder and
// sums its fractional-bit cost (entropy.BitPrecision units per real
// bit), per spec.md §4.7 step 3 — this is the true coded size, finer
// grained than a whole output byte, so passes differing by less than a
// byte can still be told apart.
func measureRealSize(symbols []lzcode.Symbol, parityContext bool) uint32 {
	rc := entropy.NewRangeCoder()
	enc := lzcode.New(rc, parityContext)
	return enc.EncodeAll(symbols)
}

// emit drives the chosen symbol sequence through a fresh RangeCoder
// and returns the finished byte stream.
func emit(symbols []lzcode.Symbol, parityContext bool) ([]byte, error) {
	rc := entropy.NewRangeCoder()
	enc := lzcode.New(rc, parityContext)
	enc.EncodeAll(symbols)
	return rc.Finish(), nil
}
