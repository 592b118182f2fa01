package parser

import (
	"github.com/rasky/shrinkler/entropy"
	"github.com/rasky/shrinkler/lzcode"
	"github.com/rasky/shrinkler/matcher"
)

// Config bounds the graph search per spec.md §4.6 / §6.
type Config struct {
	// LengthMargin widens each match candidate into a small family of
	// shorter lengths worth trying alongside the longest one found.
	LengthMargin int
	// SkipLength is the match length past which the parser gives up
	// exploring alternatives and jumps ahead inside the run.
	SkipLength int
	// EdgeCapacity bounds the arena; 0 (or less) selects a default
	// capacity of 4*len(data)+64.
	EdgeCapacity int
}

// Result is the chosen symbol sequence for one parse, plus its
// estimated fractional-bit cost under the Coder used to drive the
// search. Callers that need an authoritative size re-measure it with
// lzcode.Encoder.EncodeAll against whichever back-end matters to them.
type Result struct {
	Symbols       []lzcode.Symbol
	EstimatedSize uint32
}

// Parser runs the bounded graph search described in spec.md §4.3/§4.6:
// a DAG of candidate Ref placements, pruned online to the cheapest
// chain reaching each position, with a tail-as-literal estimate baked
// into every open edge so that frontiers at different positions stay
// comparable.
type Parser struct {
	data []byte
	enc  *lzcode.Encoder
	cfg  Config

	arena *arena
	heap  *edgeHeap

	edgesToPos    []*offsetMap // lazily allocated per target position
	bestForOffset *offsetMap

	literalSize []uint32
	root        int32
}

// rootImmortal is large enough that ordinary refcount churn never
// drives the root edge's count to zero; it exists purely so release()
// needs no special case for "don't destroy the root".
const rootImmortal = 1 << 30

// New builds a Parser over data using coder as the cost oracle
// (normally an *entropy.SizeMeasuringCoder) and parityContext matching
// the container's flag.
func New(data []byte, coder entropy.Coder, parityContext bool, cfg Config) *Parser {
	if cfg.EdgeCapacity <= 0 {
		cfg.EdgeCapacity = len(data)*4 + 64
	}
	p := &Parser{
		data:          data,
		enc:           lzcode.New(coder, parityContext),
		cfg:           cfg,
		arena:         newArena(cfg.EdgeCapacity),
		bestForOffset: newOffsetMap(),
		edgesToPos:    make([]*offsetMap, len(data)+1),
	}
	p.heap = newEdgeHeap(p.arena)
	p.buildLiteralSize()

	n := len(data)
	p.root = p.arena.create(0, 0, 0, p.literalSize[n], noEdge)
	p.arena.get(p.root).refcount = rootImmortal
	return p
}

func (p *Parser) buildLiteralSize() {
	n := len(p.data)
	p.literalSize = make([]uint32, n+1)
	var state lzcode.State
	var cum uint32
	for i := 0; i < n; i++ {
		cum += p.enc.EncodeLiteral(p.data[i], &state)
		p.literalSize[i+1] = cum
	}
}

func targetOf(a *arena, idx int32) int32 {
	e := a.get(idx)
	return e.pos + e.length
}

func offsetOf(a *arena, idx int32) int32 {
	return a.get(idx).offset
}

// synthState builds the coder state spec.md §4.6 says to synthesize
// when pricing a candidate Ref taken from source at pos.
func (p *Parser) synthState(source int32, pos int32) lzcode.State {
	return lzcode.State{
		AfterFirst: pos > 0,
		PrevWasRef: pos == targetOf(p.arena, source),
		Parity:     int(pos),
		LastOffset: int(offsetOf(p.arena, source)),
	}
}

func (p *Parser) sourceTotalSize(source int32) uint32 {
	return p.arena.get(source).totalSize
}

// priceReference implements spec.md §4.6's total_size formula.
func (p *Parser) priceReference(source int32, pos, offset, length int32) uint32 {
	n := int32(len(p.data))
	state := p.synthState(source, pos)
	edgeCost := p.enc.EncodeReference(int(offset), int(length), &state)
	pre := p.sourceTotalSize(source) - (p.literalSize[n] - p.literalSize[pos])
	post := p.literalSize[n] - p.literalSize[pos+length]
	return pre + edgeCost + post
}

func (p *Parser) bucket(target int32) *offsetMap {
	b := p.edgesToPos[target]
	if b == nil {
		b = newOffsetMap()
		p.edgesToPos[target] = b
	}
	return b
}

// insertPending implements the edges_to_pos insertion policy: keep
// the cheapest edge per offset, releasing whichever one loses.
func (p *Parser) insertPending(target, offset int32, idx int32) {
	b := p.bucket(target)
	if existing, ok := b.get(offset); ok {
		if p.arena.get(idx).totalSize < p.arena.get(existing).totalSize {
			p.heap.remove(existing)
			p.arena.release(existing)
			b.put(offset, idx)
			p.heap.insert(idx)
		} else {
			p.arena.release(idx)
		}
		return
	}
	b.put(offset, idx)
	p.heap.insert(idx)
}

func better(aSize, bSize uint32, aOffset, bOffset int32) bool {
	if aSize != bSize {
		return aSize < bSize
	}
	return aOffset < bOffset
}

// drain absorbs every edge that targets pos: it may replace curBest,
// and always migrates into bestForOffset.
func (p *Parser) drain(pos int32, curBest *int32) {
	bucket := p.edgesToPos[pos]
	if bucket == nil {
		return
	}
	bucket.each(func(offset int32, idx int32) {
		p.heap.remove(idx)

		e := p.arena.get(idx)
		cb := p.arena.get(*curBest)
		if better(e.totalSize, cb.totalSize, e.offset, cb.offset) {
			old := *curBest
			*curBest = idx
			p.arena.retain(idx)
			p.arena.release(old)
		}

		if oldBest, ok := p.bestForOffset.get(offset); ok && oldBest != idx {
			p.arena.release(oldBest)
		}
		p.bestForOffset.put(offset, idx)
	})
	p.edgesToPos[pos] = nil
}

// clearThrough releases every pending edge targeting a position in
// [from, through], used by the long-match skip-ahead heuristic.
func (p *Parser) clearThrough(from, through int32) {
	for t := from; t <= through; t++ {
		bucket := p.edgesToPos[t]
		if bucket == nil {
			continue
		}
		bucket.each(func(_ int32, idx int32) {
			p.heap.remove(idx)
			p.arena.release(idx)
		})
		p.edgesToPos[t] = nil
	}
}

func (p *Parser) clearBestForOffset() {
	p.bestForOffset.each(func(_ int32, idx int32) {
		p.arena.release(idx)
	})
	p.bestForOffset.reset()
}

// cleanWorst evicts the globally worst pending edge when the arena
// runs out of room, per spec.md §4.3. Any edge still resident in the
// heap has not yet been drained, so nothing can have taken it as a
// source yet: its refcount is guaranteed to be exactly 1, held solely
// by its edges_to_pos bucket. releaseMarking both frees it and, since
// that drops it to zero, continues releasing its own source chain.
func (p *Parser) cleanWorst() bool {
	worst := p.heap.removeWorst()
	if worst == noEdge {
		return false
	}
	e := p.arena.get(worst)
	b := p.edgesToPos[e.pos+e.length]
	if b != nil {
		b.delete(e.offset)
	}
	p.arena.releaseMarking(worst, true)
	return true
}

func (p *Parser) ensureRoom() {
	for p.arena.edgeCount >= p.cfg.EdgeCapacity {
		if !p.cleanWorst() {
			return
		}
	}
}

// Parse runs the graph search to completion and extracts the chosen
// symbol sequence. m must already be built over the same data Parser
// was constructed with.
func (p *Parser) Parse(m *matcher.Matcher) Result {
	n := int32(len(p.data))
	curBest := p.root
	p.arena.retain(curBest)

	for pos := int32(1); pos <= n; pos++ {
		p.drain(pos, &curBest)

		m.Begin(int(pos), 0)
		var maxMatchLen int32
		for {
			match, ok := m.Next()
			if !ok {
				break
			}
			matchPos := int32(match.Pos)
			length := int32(match.Length)
			if length > n-pos {
				length = n - pos
			}
			if length < 2 {
				continue
			}
			offset := pos - matchPos
			if length > maxMatchLen {
				maxMatchLen = length
			}

			minLen := length - int32(p.cfg.LengthMargin)
			if minLen < 2 {
				minLen = 2
			}
			for l := minLen; l <= length; l++ {
				p.ensureRoom()
				p.createCandidate(curBest, pos, offset, l)

				if other, ok := p.bestForOffset.get(offset); ok {
					if offsetOf(p.arena, curBest) != offset {
						p.ensureRoom()
						p.createCandidate(other, pos, offset, l)
					}
				}
			}
		}

		if maxMatchLen >= int32(p.cfg.SkipLength) {
			target := pos + maxMatchLen
			if target <= n && p.edgesToPos[target] != nil {
				p.clearBestForOffset()
				p.clearThrough(pos, target)
				p.arena.release(curBest)
				curBest = p.root
				p.arena.retain(curBest)

				resume := pos + maxMatchLen - 1
				pos = resume - 1 // loop's pos++ brings us to resume next
				continue
			}
		}
	}

	result := p.extract(curBest)
	p.arena.release(curBest)
	return result
}

func (p *Parser) createCandidate(source, pos, offset, length int32) {
	total := p.priceReference(source, pos, offset, length)
	idx := p.arena.create(pos, offset, length, total, source)
	p.insertPending(pos+length, offset, idx)
}

// extract walks the source chain from best back to the root, reverses
// it, and fills every gap between consecutive edges (and the final
// gap to N) with literal bytes.
func (p *Parser) extract(best int32) Result {
	var chain []int32
	for idx := best; idx != p.root; idx = p.arena.get(idx).source {
		chain = append(chain, idx)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var symbols []lzcode.Symbol
	cursor := int32(0)
	for _, idx := range chain {
		e := p.arena.get(idx)
		for cursor < e.pos {
			symbols = append(symbols, lzcode.Lit(p.data[cursor]))
			cursor++
		}
		symbols = append(symbols, lzcode.MakeRef(int(e.offset), int(e.length)))
		cursor += e.length
	}
	n := int32(len(p.data))
	for cursor < n {
		symbols = append(symbols, lzcode.Lit(p.data[cursor]))
		cursor++
	}

	// Re-derive the size by sequentially replaying the chosen symbols
	// from a genuinely fresh state, rather than trusting the
	// per-edge synthesized state used during the search: that
	// synthesis is only valid for pos>=1, and coincides badly with
	// the root's target==0 on an empty block.
	size := p.enc.EncodeAll(symbols)
	return Result{Symbols: symbols, EstimatedSize: size}
}
