// Package compress drives the iterative pack loop: repeated
// parse/measure/merge passes over the shared entropy contexts,
// finishing with a real range-coded emission of whichever pass's
// result was cheapest, wrapped in the Shrinkler container header.
package compress

import "fmt"

// Config holds every recognized compression option (spec.md §6).
type Config struct {
	ParityContext bool
	Iterations    int
	LengthMargin  int
	MatchPatience int
	MaxSameLength int
	SkipLength    int
	References    int
}

// Validate rejects parameter combinations the spec calls out as
// invalid at entry, before any work starts.
func (c Config) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("compress: iterations must be >= 1, got %d", c.Iterations)
	}
	if c.LengthMargin < 0 {
		return fmt.Errorf("compress: length_margin must be >= 0, got %d", c.LengthMargin)
	}
	if c.MatchPatience < 0 {
		return fmt.Errorf("compress: match_patience must be >= 0, got %d", c.MatchPatience)
	}
	if c.MaxSameLength < 1 {
		return fmt.Errorf("compress: max_same_length must be >= 1, got %d", c.MaxSameLength)
	}
	if c.SkipLength < 2 {
		return fmt.Errorf("compress: skip_length must be >= 2, got %d", c.SkipLength)
	}
	if c.References < 1000 {
		return fmt.Errorf("compress: references must be >= 1000, got %d", c.References)
	}
	return nil
}

// Preset maps presets 1..9 onto the recognized options, multiplying
// the default (preset 3) effort parameters by preset/3; References
// stays 100000 and ParityContext true at every preset. Preset 3 is
// intentionally exact: iterations=3, length_margin=3, same_length=30,
// patience=300, skip_length=3000, references=100000.
func Preset(n int) Config {
	if n < 1 {
		n = 1
	}
	if n > 9 {
		n = 9
	}
	scale := func(base int) int {
		v := base * n / 3
		if v < 1 {
			v = 1
		}
		return v
	}
	return Config{
		ParityContext: true,
		Iterations:    scale(3),
		LengthMargin:  scale(3),
		MatchPatience: scale(300),
		MaxSameLength: scale(30),
		SkipLength:    scale(3000),
		References:    100000,
	}
}

// DefaultConfig is Preset(3).
func DefaultConfig() Config {
	return Preset(3)
}
