// Package shrinkler implements a Shrinkler-compatible compressor: an
// LZ77-style scheme layered over an adaptive binary range coder, with
// a graph-search parser that explores many (offset, length)
// factorizations per position before committing to a parse. See
// compress.Pack for the iterative refinement loop and
// compress.Header for the on-disk container.
package shrinkler

import "github.com/rasky/shrinkler/compress"

// Config is the set of recognized compression options.
type Config = compress.Config

// Preset maps preset levels 1..9 onto Config, as documented on
// compress.Preset.
func Preset(level int) Config {
	return compress.Preset(level)
}

// DefaultConfig is Preset(3).
func DefaultConfig() Config {
	return compress.DefaultConfig()
}

// Compress packs data into a Shrinkler-format container: the fixed
// header followed by the range-coded bitstream.
func Compress(data []byte, cfg Config) ([]byte, error) {
	result, err := compress.Pack(data, cfg)
	if err != nil {
		return nil, err
	}
	return append(result.Header.Marshal(), result.Data...), nil
}
