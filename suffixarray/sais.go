// Package suffixarray builds a suffix array and LCP array over a byte
// block using the SA-IS induced-sorting algorithm, and exposes Kasai's
// linear-time LCP construction on top of it.
package suffixarray

import "fmt"

// Index holds the suffix array, its inverse, and the LCP array for a
// data block that has already been terminated with a virtual sentinel
// smaller than every real symbol.
type Index struct {
	// SA[i] is the starting position of the i'th suffix in sorted
	// order, for i in [0, N]. SA[0] always equals N (the sentinel).
	SA []int32
	// RSA is the inverse permutation of SA: RSA[SA[i]] == i.
	RSA []int32
	// LCP[i] is the longest common prefix length between the suffix
	// starting at SA[i] and the one at SA[i+1]. LCP[0] == LCP[N] == 0.
	LCP []int32

	n int32 // len(data), not counting the sentinel
}

// Len returns the length of the original data block (excluding the
// sentinel).
func (ix *Index) Len() int { return int(ix.n) }

// Build constructs the suffix array, its inverse, and the LCP array
// for data. The implementation reinterprets data over an alphabet of
// size 257: every byte is shifted up by one so that a synthetic
// sentinel value of 0 can be appended and is guaranteed to sort
// strictly before every real symbol.
func Build(data []byte) (*Index, error) {
	n := len(data)
	t := make([]int32, n+1)
	for i, b := range data {
		t[i] = int32(b) + 1
	}
	t[n] = 0 // sentinel

	sa := make([]int32, n+1)
	sais(t, sa, 257)

	rsa := make([]int32, n+1)
	for i, p := range sa {
		rsa[p] = int32(i)
	}

	ix := &Index{SA: sa, RSA: rsa, n: int32(n)}
	ix.LCP = kasai(data, sa, rsa)
	return ix, nil
}

// sais computes the suffix array of t (alphabet size alphaSize, values
// in [0, alphaSize), with t[len(t)-1] the unique minimum) into sa.
// len(sa) must equal len(t). This is the classic induced-sorting
// algorithm: classify S/L types, find LMS positions, induce-sort them
// using bucket boundaries, name the LMS substrings, recurse if names
// are not already unique, then induce-sort the final order from the
// sorted LMS suffixes.
func sais(t []int32, sa []int32, alphaSize int) {
	n := len(t)
	if n == 0 {
		return
	}
	if n == 1 {
		sa[0] = 0
		return
	}

	isS := classifyTypes(t)

	bucketSizes := make([]int32, alphaSize)
	for _, c := range t {
		bucketSizes[c]++
	}

	for i := range sa {
		sa[i] = -1
	}

	lmsPositions := collectLMS(t, isS)

	placeLMS(t, sa, bucketSizes, isS, lmsPositions)
	induceSortL(t, sa, bucketSizes, isS)
	induceSortS(t, sa, bucketSizes, isS)

	sortedLMS := make([]int32, 0, len(lmsPositions))
	for _, p := range sa {
		if p >= 0 && isLMS(isS, int(p)) {
			sortedLMS = append(sortedLMS, p)
		}
	}

	names, numNames := nameLMSSubstrings(t, isS, sortedLMS)

	if int(numNames) < len(sortedLMS) {
		// Names are not unique: recurse on the reduced problem.
		reduced := make([]int32, len(sortedLMS))
		lmsIndexOf := make(map[int32]int32, len(lmsPositions))
		for i, p := range lmsPositions {
			lmsIndexOf[p] = int32(i)
		}
		for _, p := range lmsPositions {
			reduced[lmsIndexOf[p]] = -1
		}
		// names is indexed in text order of lmsPositions (see
		// nameLMSSubstrings); build the reduced string directly.
		reducedSA := make([]int32, len(sortedLMS))
		sais(names, reducedSA, int(numNames))

		orderedLMS := make([]int32, len(lmsPositions))
		for i, r := range reducedSA {
			orderedLMS[i] = lmsPositions[r]
		}
		placeLMSOrdered(t, sa, bucketSizes, isS, orderedLMS)
	} else {
		placeLMS(t, sa, bucketSizes, isS, sortedLMS)
	}

	induceSortL(t, sa, bucketSizes, isS)
	induceSortS(t, sa, bucketSizes, isS)
}

// classifyTypes returns, for each position in t, whether it is S-type.
// Position n-1 (the sentinel) is always S-type by convention; position
// i<n-1 is S-type if t[i]<t[i+1], or t[i]==t[i+1] and i+1 is S-type.
func classifyTypes(t []int32) []bool {
	n := len(t)
	isS := make([]bool, n)
	isS[n-1] = true
	for i := n - 2; i >= 0; i-- {
		if t[i] < t[i+1] {
			isS[i] = true
		} else if t[i] == t[i+1] {
			isS[i] = isS[i+1]
		} else {
			isS[i] = false
		}
	}
	return isS
}

// isLMS reports whether position i is a left-most-S position: S-type
// with an L-type (or nonexistent) predecessor.
func isLMS(isS []bool, i int) bool {
	if i == 0 {
		return false
	}
	return isS[i] && !isS[i-1]
}

func collectLMS(t []int32, isS []bool) []int32 {
	var lms []int32
	for i := 1; i < len(t); i++ {
		if isLMS(isS, i) {
			lms = append(lms, int32(i))
		}
	}
	return lms
}

// bucketHeads/bucketTails compute, from bucketSizes, the starting
// index of each symbol's bucket (heads fill forward for L-type) and
// the last index of each symbol's bucket (tails fill backward for
// S-type / LMS seeding).
func bucketHeads(bucketSizes []int32) []int32 {
	heads := make([]int32, len(bucketSizes))
	sum := int32(0)
	for c, size := range bucketSizes {
		heads[c] = sum
		sum += size
	}
	return heads
}

func bucketTails(bucketSizes []int32) []int32 {
	tails := make([]int32, len(bucketSizes))
	sum := int32(0)
	for c, size := range bucketSizes {
		sum += size
		tails[c] = sum - 1
	}
	return tails
}

// placeLMS seeds sa with the LMS positions (in the order given, not
// necessarily sorted) at the ends of their symbol buckets, as the
// first step before induced sorting.
func placeLMS(t []int32, sa []int32, bucketSizes []int32, isS []bool, lms []int32) {
	for i := range sa {
		sa[i] = -1
	}
	tails := bucketTails(bucketSizes)
	for i := len(lms) - 1; i >= 0; i-- {
		p := lms[i]
		c := t[p]
		sa[tails[c]] = p
		tails[c]--
	}
}

// placeLMSOrdered seeds sa with LMS positions that are already known
// to be in fully sorted order (from the recursive call), placing each
// at the current tail of its bucket working from the back so that
// ties preserve relative order.
func placeLMSOrdered(t []int32, sa []int32, bucketSizes []int32, isS []bool, orderedLMS []int32) {
	for i := range sa {
		sa[i] = -1
	}
	tails := bucketTails(bucketSizes)
	for i := len(orderedLMS) - 1; i >= 0; i-- {
		p := orderedLMS[i]
		c := t[p]
		sa[tails[c]] = p
		tails[c]--
	}
}

// induceSortL fills in L-type positions left-to-right: whenever sa[i]
// points to a position p such that p-1 is L-type, place p-1 at the
// current head of its bucket and advance that head.
func induceSortL(t []int32, sa []int32, bucketSizes []int32, isS []bool) {
	heads := bucketHeads(bucketSizes)
	for i := 0; i < len(sa); i++ {
		p := sa[i]
		if p <= 0 {
			continue
		}
		j := p - 1
		if !isS[j] {
			c := t[j]
			sa[heads[c]] = j
			heads[c]++
		}
	}
}

// induceSortS fills in S-type positions right-to-left: whenever sa[i]
// points to a position p such that p-1 is S-type, place p-1 at the
// current tail of its bucket and retreat that tail.
func induceSortS(t []int32, sa []int32, bucketSizes []int32, isS []bool) {
	tails := bucketTails(bucketSizes)
	for i := len(sa) - 1; i >= 0; i-- {
		p := sa[i]
		if p <= 0 {
			continue
		}
		j := p - 1
		if isS[j] {
			c := t[j]
			sa[tails[c]] = j
			tails[c]--
		}
	}
}

// nameLMSSubstrings assigns each LMS substring (the span between two
// consecutive LMS positions, inclusive) a name equal to its rank among
// distinct LMS substrings, in the order the LMS positions occur in
// the text (required so the reduced string can be recursively sorted).
// It returns the reduced string and the number of distinct names.
func nameLMSSubstrings(t []int32, isS []bool, sortedLMS []int32) ([]int32, int32) {
	n := len(t)
	names := make([]int32, n)
	for i := range names {
		names[i] = -1
	}

	var name int32 = -1
	var prev int32 = -1
	for _, p := range sortedLMS {
		if prev < 0 {
			name = 0
		} else if !lmsSubstringsEqual(t, isS, prev, p) {
			name++
		}
		names[p] = name
		prev = p
	}

	// Compact into text order of LMS occurrences.
	var textOrderLMS []int32
	for i := 1; i < n; i++ {
		if isLMS(isS, i) {
			textOrderLMS = append(textOrderLMS, int32(i))
		}
	}
	reduced := make([]int32, len(textOrderLMS))
	for i, p := range textOrderLMS {
		reduced[i] = names[p]
	}
	return reduced, name + 1
}

// lmsSubstringsEqual reports whether the LMS substrings starting at
// positions a and b (both LMS positions) are character-for-character
// identical, including matching type bits, up to and including the
// next LMS position.
func lmsSubstringsEqual(t []int32, isS []bool, a, b int32) bool {
	n := int32(len(t))
	for first := true; ; first = false {
		aIsLMS := isLMS(isS, int(a))
		bIsLMS := isLMS(isS, int(b))
		if aIsLMS != bIsLMS {
			return false
		}
		if t[a] != t[b] {
			return false
		}
		if isS[a] != isS[b] {
			return false
		}
		if !first && aIsLMS {
			return true
		}
		a++
		b++
		if a >= n || b >= n {
			return a >= n && b >= n
		}
	}
}

// Verify checks the structural invariants of the index: SA is a
// permutation of [0,N], RSA is its inverse, and the suffixes are in
// strictly increasing lexicographic order. Intended for tests and as an
// implementer's assertion aid, not called from the hot path.
func (ix *Index) Verify(data []byte) error {
	n := int(ix.n)
	if len(ix.SA) != n+1 || len(ix.RSA) != n+1 {
		return fmt.Errorf("suffixarray: wrong array length")
	}
	seen := make([]bool, n+1)
	for _, p := range ix.SA {
		if p < 0 || int(p) > n || seen[p] {
			return fmt.Errorf("suffixarray: SA is not a permutation")
		}
		seen[p] = true
	}
	for i := 0; i <= n; i++ {
		if ix.RSA[ix.SA[i]] != int32(i) {
			return fmt.Errorf("suffixarray: RSA is not the inverse of SA")
		}
	}
	for i := 0; i < n; i++ {
		if !suffixLess(data, int(ix.SA[i]), int(ix.SA[i+1])) {
			return fmt.Errorf("suffixarray: suffixes out of order at rank %d", i)
		}
	}
	return nil
}

// suffixLess reports whether data[a:] sorts strictly before data[b:]
// under the sentinel-terminated ordering (a shorter suffix that is a
// strict prefix of a longer one sorts first).
func suffixLess(data []byte, a, b int) bool {
	if a == b {
		return false
	}
	n := len(data)
	for a < n && b < n {
		if data[a] != data[b] {
			return data[a] < data[b]
		}
		a++
		b++
	}
	return a >= n && b < n
}
