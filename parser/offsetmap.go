package parser

// emptyOffset is the sentinel key marking an unused slot: real Ref
// offsets are always >= 1, so 0 is free to reserve (spec.md §4.3).
const emptyOffset int32 = 0

// offsetMap is an open-addressed hash table from a Ref's offset to
// the arena index of the edge currently "best" for that offset,
// linear-probed over a power-of-two capacity. A cuckoo table with two
// hash functions would work as well; the spec permits either, and
// linear probing is the simpler of the two.
type offsetMap struct {
	keys  []int32
	vals  []int32
	count int
}

func newOffsetMap() *offsetMap {
	return &offsetMap{
		keys: make([]int32, 8),
		vals: make([]int32, 8),
	}
}

func hashOffset(offset int32, mask int) int {
	h := uint32(offset) * 2654435761
	return int(h) & mask
}

// get returns the edge index stored for offset, or (noEdge, false).
func (m *offsetMap) get(offset int32) (int32, bool) {
	mask := len(m.keys) - 1
	i := hashOffset(offset, mask)
	for m.keys[i] != emptyOffset {
		if m.keys[i] == offset {
			return m.vals[i], true
		}
		i = (i + 1) & mask
	}
	return noEdge, false
}

// put inserts or overwrites the entry for offset.
func (m *offsetMap) put(offset int32, edgeIdx int32) {
	if m.count*2 >= len(m.keys) {
		m.grow()
	}
	mask := len(m.keys) - 1
	i := hashOffset(offset, mask)
	for m.keys[i] != emptyOffset {
		if m.keys[i] == offset {
			m.vals[i] = edgeIdx
			return
		}
		i = (i + 1) & mask
	}
	m.keys[i] = offset
	m.vals[i] = edgeIdx
	m.count++
}

// delete removes the entry for offset, if any, closing the probe
// chain by re-inserting every displaced entry after it.
func (m *offsetMap) delete(offset int32) {
	mask := len(m.keys) - 1
	i := hashOffset(offset, mask)
	for m.keys[i] != emptyOffset {
		if m.keys[i] == offset {
			m.keys[i] = emptyOffset
			m.count--
			j := (i + 1) & mask
			for m.keys[j] != emptyOffset {
				k, v := m.keys[j], m.vals[j]
				m.keys[j] = emptyOffset
				m.count--
				m.put(k, v)
				j = (j + 1) & mask
			}
			return
		}
		i = (i + 1) & mask
	}
}

// each calls fn for every (offset, edgeIdx) currently stored.
func (m *offsetMap) each(fn func(offset int32, edgeIdx int32)) {
	for i, k := range m.keys {
		if k != emptyOffset {
			fn(k, m.vals[i])
		}
	}
}

func (m *offsetMap) reset() {
	for i := range m.keys {
		m.keys[i] = emptyOffset
	}
	m.count = 0
}

func (m *offsetMap) grow() {
	oldKeys, oldVals := m.keys, m.vals
	m.keys = make([]int32, len(oldKeys)*2)
	m.vals = make([]int32, len(oldVals)*2)
	m.count = 0
	for i, k := range oldKeys {
		if k != emptyOffset {
			m.put(k, oldVals[i])
		}
	}
}
