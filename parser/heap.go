package parser

// edgeHeap is an indexed max-heap over edge.totalSize: edges with the
// largest accumulated cost surface first, so the parser can evict the
// worst candidate when the arena fills. Each edge's heapIndex field
// lets remove(idx) locate and extract an arbitrary entry in O(log n)
// instead of needing a linear scan.
type edgeHeap struct {
	a    *arena
	data []int32 // arena indices, heap-ordered
}

func newEdgeHeap(a *arena) *edgeHeap {
	return &edgeHeap{a: a}
}

func (h *edgeHeap) Len() int { return len(h.data) }

func (h *edgeHeap) less(i, j int) bool {
	return h.a.get(h.data[i]).totalSize > h.a.get(h.data[j]).totalSize
}

func (h *edgeHeap) swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
	h.a.get(h.data[i]).heapIndex = int32(i)
	h.a.get(h.data[j]).heapIndex = int32(j)
}

// insert pushes edgeIdx onto the heap.
func (h *edgeHeap) insert(edgeIdx int32) {
	i := len(h.data)
	h.data = append(h.data, edgeIdx)
	h.a.get(edgeIdx).heapIndex = int32(i)
	h.up(i)
}

// remove extracts edgeIdx from wherever it sits in the heap.
func (h *edgeHeap) remove(edgeIdx int32) {
	i := int(h.a.get(edgeIdx).heapIndex)
	if i < 0 {
		return
	}
	last := len(h.data) - 1
	h.swap(i, last)
	h.data = h.data[:last]
	h.a.get(edgeIdx).heapIndex = -1
	if i < last {
		h.down(i)
		h.up(i)
	}
}

// removeWorst pops and returns the root (the single largest
// totalSize), or noEdge if the heap is empty.
func (h *edgeHeap) removeWorst() int32 {
	if len(h.data) == 0 {
		return noEdge
	}
	root := h.data[0]
	h.remove(root)
	return root
}

func (h *edgeHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *edgeHeap) down(i int) {
	n := len(h.data)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && h.less(left, largest) {
			largest = left
		}
		if right < n && h.less(right, largest) {
			largest = right
		}
		if largest == i {
			return
		}
		h.swap(i, largest)
		i = largest
	}
}
