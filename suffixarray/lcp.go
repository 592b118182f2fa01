package suffixarray

// kasai computes the LCP array in O(n) time: lcp[i] is the common
// prefix length of the suffixes at sa[i] and sa[i+1]. It walks
// positions in text order, carrying the previous match length h over
// (h can drop by at most 1 per step since dropping the first
// character of a suffix removes at most one unit of shared prefix
// with its sorted neighbor).
func kasai(data []byte, sa, rsa []int32) []int32 {
	n := len(data)
	lcp := make([]int32, n+1)
	if n == 0 {
		return lcp
	}

	h := int32(0)
	for i := 0; i < n; i++ {
		rank := rsa[i]
		if rank == int32(n) {
			// Suffix i sorts last (the sentinel suffix is rank 0);
			// no successor to compare against within the data.
			h = 0
			continue
		}
		j := int(sa[rank+1])
		for i+int(h) < n && j+int(h) < n && data[i+int(h)] == data[j+int(h)] {
			h++
		}
		lcp[rank] = h
		if h > 0 {
			h--
		}
	}
	lcp[n] = 0
	return lcp
}
