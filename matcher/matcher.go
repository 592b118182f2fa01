// Package matcher enumerates (offset, length) back-reference
// candidates at a query position by walking outward from the
// position's rank in a precomputed suffix array, using the LCP array
// to bound each extension step. Candidates are produced in order of
// decreasing length, as required by the LZ parser's graph search.
package matcher

import (
	"golang.org/x/exp/slices"

	"github.com/rasky/shrinkler/internal/simd"
	"github.com/rasky/shrinkler/suffixarray"
)

// Match is one candidate back-reference: a source position strictly
// before the query position, and the length of the common run
// starting there.
type Match struct {
	Pos    int
	Length int
}

// Config bounds the search effort per spec.md §4.2 / §6.
type Config struct {
	// MaxSameLength caps how many candidates of equal length survive
	// pruning at a single length tier.
	MaxSameLength int
	// Patience caps the number of LCP-gap steps tried per extension
	// side before that side is abandoned for the rest of this query.
	Patience int
	// MinLength is the shortest candidate worth reporting.
	MinLength int
}

// DefaultConfig matches preset 3 (see compress.Preset).
func DefaultConfig() Config {
	return Config{MaxSameLength: 30, Patience: 300, MinLength: 2}
}

// Matcher finds candidates against a fixed *suffixarray.Index built
// once over the whole block.
type Matcher struct {
	data []byte
	ix   *suffixarray.Index
	cfg  Config

	pos    int
	minPos int

	left, right         int // current rank pointers
	leftLen, rightLen    int // running clamped length on each side
	leftSteps, rightSteps int
	leftDone, rightDone   bool

	pending []Match // candidates for the current tier, descending by Pos
	done    bool
}

// New builds a Matcher over data using a pre-built suffix array index.
func New(data []byte, ix *suffixarray.Index, cfg Config) *Matcher {
	if cfg.MaxSameLength <= 0 {
		cfg.MaxSameLength = 1
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = 2
	}
	return &Matcher{data: data, ix: ix, cfg: cfg}
}

// Begin restarts matching at a new query position. minPos is the
// smallest source position that may be returned (callers use this to
// exclude positions consumed by a just-taken long match).
func (m *Matcher) Begin(pos int, minPos int) {
	m.pos = pos
	m.minPos = minPos
	rank := int(m.ix.RSA[pos])
	m.left = rank
	m.right = rank
	m.leftLen = len(m.data) - pos
	m.rightLen = len(m.data) - pos
	m.leftSteps, m.rightSteps = 0, 0
	m.leftDone, m.rightDone = rank == 0, false
	m.pending = m.pending[:0]
	m.done = false
}

// Next returns the next candidate in order of non-increasing length,
// or ok=false once the sequence is exhausted.
func (m *Matcher) Next() (Match, bool) {
	for len(m.pending) == 0 {
		if m.done {
			return Match{}, false
		}
		if !m.collectTier() {
			m.done = true
			return Match{}, false
		}
	}
	next := m.pending[0]
	m.pending = m.pending[1:]
	return next, true
}

// collectTier gathers every valid candidate at the next (highest
// remaining) length tier, bounds them to MaxSameLength keeping the
// ones closest to pos, and stores them descending by position in
// m.pending. Returns false when no tier reaches MinLength.
func (m *Matcher) collectTier() bool {
	// next reports the length the next step on one side would yield (its
	// running length clamped by the LCP gap that step crosses), or 0 if
	// that side cannot step any more.
	next := func(right bool) int {
		if right && !m.rightDone && m.right < len(m.data) && m.rightSteps < m.cfg.Patience {
			return min(m.rightLen, int(m.ix.LCP[m.right]))
		}
		if !right && !m.leftDone && m.left > 0 && m.leftSteps < m.cfg.Patience {
			return min(m.leftLen, int(m.ix.LCP[m.left-1]))
		}
		return 0
	}
	for {
		length := max(next(false), next(true))
		if length < m.cfg.MinLength {
			return false
		}

		var tier []Match
		for next(false) == length || next(true) == length {
			var pos int
			var ok bool
			if next(true) == length {
				pos, ok = m.stepRight()
			} else {
				pos, ok = m.stepLeft()
			}
			if ok && pos < m.pos && pos >= m.minPos {
				tier = append(tier, Match{Pos: pos, Length: m.extend(pos, length)})
			}
		}

		if len(tier) == 0 {
			continue
		}

		slices.SortFunc(tier, func(a, b Match) int { return b.Pos - a.Pos })
		if len(tier) > m.cfg.MaxSameLength {
			tier = tier[:m.cfg.MaxSameLength]
			// The weakest surviving candidate becomes the new floor:
			// anything farther is no longer worth reporting even at
			// a shorter length (spec.md §4.2's min_pos ratchet).
			if floor := tier[len(tier)-1].Pos; floor > m.minPos {
				m.minPos = floor
			}
		}

		m.pending = tier
		return true
	}
}

// extend takes the cheap lower bound the LCP-gap walk already proved
// for pos (length) and pushes it out as far as the data actually
// agrees past that point, via the SIMD-accelerated compare: the LCP
// array only bounds the run shared with ranks crossed along the way,
// not necessarily the full run shared with this specific candidate,
// so every candidate gets a direct byte-level extension before it's
// reported.
func (m *Matcher) extend(pos, length int) int {
	return length + CommonPrefixLen(m.data, pos+length, m.pos+length)
}

// stepLeft advances the left pointer outward (decreasing rank),
// clamping the running length to the LCP gap crossed. ok is false if
// the pointer could not advance (hit rank 0) or patience ran out,
// either of which permanently retires this side for the query.
func (m *Matcher) stepLeft() (int, bool) {
	if m.leftDone {
		return 0, false
	}
	if m.leftSteps >= m.cfg.Patience || m.left == 0 {
		m.leftDone = true
		m.leftLen = 0
		return 0, false
	}
	m.leftSteps++
	gap := int(m.ix.LCP[m.left-1])
	if gap < m.leftLen {
		m.leftLen = gap
	}
	m.left--
	if m.left == 0 {
		m.leftDone = true
	}
	return int(m.ix.SA[m.left]), true
}

// stepRight is the mirror image of stepLeft, advancing to increasing
// rank.
func (m *Matcher) stepRight() (int, bool) {
	if m.rightDone {
		return 0, false
	}
	if m.rightSteps >= m.cfg.Patience || m.right >= len(m.data) {
		m.rightDone = true
		m.rightLen = 0
		return 0, false
	}
	m.rightSteps++
	gap := int(m.ix.LCP[m.right])
	if gap < m.rightLen {
		m.rightLen = gap
	}
	m.right++
	if m.right >= len(m.data) {
		m.rightDone = true
	}
	return int(m.ix.SA[m.right]), true
}

// CommonPrefixLen reports how many bytes starting at a and b agree,
// via the SIMD-accelerated compare. extend uses this to push each
// candidate's LCP-derived length out to its real matched length; it's
// exported since a caller re-verifying or re-extending a candidate
// directly against the data needs the same primitive.
func CommonPrefixLen(data []byte, a, b int) int {
	return simd.CommonPrefixLen(data[a:], data[b:])
}
