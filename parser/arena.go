// Package parser implements the graph-search LZ parser: a bounded
// arena of candidate-parse edges, an indexed max-heap over their
// accumulated cost, and offset-keyed open-addressed maps tying
// candidates to the positions and offsets competing at each step.
package parser

// edge is one node in the parse DAG: "take this (offset, length) Ref
// at pos, having reached pos via source". source==noEdge marks the
// sentinel root (the all-literals parse).
type edge struct {
	pos       int32
	offset    int32
	length    int32
	totalSize uint32
	source    int32
	refcount  int32
	heapIndex int32 // index into the heap's backing slice, -1 if not in the heap
}

// noEdge is the arena-index sentinel meaning "no edge" (nil source, or
// free-list terminator).
const noEdge int32 = -1

// arena is a slot-indexed pool of edges backed by a free-list, per
// spec.md §4.3.
type arena struct {
	slots        []edge
	free         []int32
	edgeCount    int
	cleanedEdges int
	capacity     int
}

func newArena(capacity int) *arena {
	return &arena{
		slots:    make([]edge, 0, capacity),
		capacity: capacity,
	}
}

// create allocates an edge with refcount 1, bumping source's refcount
// if it has one.
func (a *arena) create(pos, offset, length int32, totalSize uint32, source int32) int32 {
	e := edge{
		pos:       pos,
		offset:    offset,
		length:    length,
		totalSize: totalSize,
		source:    source,
		refcount:  1,
		heapIndex: -1,
	}
	var idx int32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx] = e
	} else {
		idx = int32(len(a.slots))
		a.slots = append(a.slots, e)
	}
	if source != noEdge {
		a.slots[source].refcount++
	}
	a.edgeCount++
	return idx
}

// get returns a pointer into the arena's backing slice; valid until
// the next create() reallocates it (create never reallocates past
// cap, since callers honor capacity via cleanWorst, but destroy/create
// cycles reuse freed slots in place).
func (a *arena) get(idx int32) *edge {
	return &a.slots[idx]
}

// destroy returns idx to the free-list. clean marks an eviction (as
// opposed to ordinary refcount-driven release) for bookkeeping.
func (a *arena) destroy(idx int32, clean bool) {
	a.free = append(a.free, idx)
	a.edgeCount--
	if clean {
		a.cleanedEdges++
	}
}

// release walks the source chain, decrementing refcounts, destroying
// and continuing through any node that hits zero. It is the inverse
// of every refcount increment performed by create and retain
// (offsetMap.put never touches refcounts: a map slot holds the
// reference create handed out, transferred rather than retained).
func (a *arena) release(idx int32) {
	a.releaseMarking(idx, false)
}

// releaseMarking is release, but the first node actually destroyed
// (if any) is recorded as an eviction rather than an ordinary
// refcount-driven death when firstClean is set. Used by the arena
// eviction path, which force-drops an edge that is guaranteed to be
// solely owned by the pending-edge heap.
func (a *arena) releaseMarking(idx int32, firstClean bool) {
	clean := firstClean
	for idx != noEdge {
		e := &a.slots[idx]
		e.refcount--
		if e.refcount > 0 {
			return
		}
		parent := e.source
		a.destroy(idx, clean)
		clean = false
		idx = parent
	}
}

// retain increments an edge's refcount; used whenever a new owner
// (a map slot, a "best" pointer) starts holding onto idx.
func (a *arena) retain(idx int32) {
	if idx != noEdge {
		a.slots[idx].refcount++
	}
}
