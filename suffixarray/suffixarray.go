// Package suffixarray implements C6: linear-time suffix array
// construction via the DC3/skew algorithm (Kärkkäinen & Sanders),
// producing a WordVector of indices, plus an O(n^2 log n) fallback
// constructor for tests and small inputs. Neither original_source nor
// the teacher repo carries a working DC3 implementation (original_
// source/unialgo/pattern/suffixArray.cpp is a stub that never got past
// a bare #include <algorithm>), so this package is built directly from
// spec §4.6's construction algorithm, following the teacher's container
// conventions (WordVector storage, errutil sentinel errors) for
// everything around the algorithm itself.
package suffixarray

import (
	"golang.org/x/exp/slices"

	"succinct/errutil"
	"succinct/wordvector"
)

// SuffixArray wraps a WordVector of indices: SA[r] is the starting
// position of the r-th lexicographically smallest suffix of the text
// it was built from.
type SuffixArray struct {
	sa *wordvector.WordVector
	n  uint64
}

// Len returns the number of suffixes (equal to the source text length).
func (s *SuffixArray) Len() uint64 { return s.n }

// At returns SA[r], the text position of the r-th smallest suffix.
// Grounded in the original SuffixArray::operator[] (original_source/
// unialgo/pattern/suffixArray.hpp).
func (s *SuffixArray) At(r uint64) uint64 {
	errutil.BugOn(r >= s.n, "suffixarray: At(%d) out of range for length %d", r, s.n)
	return s.sa.MustGet(r)
}

// Bits exposes the backing WordVector, e.g. for size reporting.
func (s *SuffixArray) Bits() *wordvector.WordVector { return s.sa }

// ByteSize returns the size in bytes of the backing WordVector.
func (s *SuffixArray) ByteSize() uint64 { return s.sa.ByteSize() }

// HumanSize renders ByteSize in human-readable form, for diagnostic use.
func (s *SuffixArray) HumanSize() string { return s.sa.HumanSize() }

// checkSentinel enforces spec §4.6's "unique smallest symbol" input
// contract: the VALUE at the last position must be the strict minimum
// of the alphabet actually used by the text. This does not forbid that
// value from recurring at other positions (e.g. plain "mississippi"
// has no distinguished $ character at all, yet its last symbol 'i' is
// already the text's global minimum and recurs three times elsewhere;
// spec §8 scenario 5 builds a suffix array directly over it) — it only
// forbids some OTHER, smaller value from existing anywhere but the end.
func checkSentinel(text *wordvector.WordVector) error {
	n := text.Len()
	if n == 0 {
		return nil
	}
	last := text.MustGet(n - 1)
	for i := uint64(0); i+1 < n; i++ {
		if text.MustGet(i) < last {
			return errutil.Wrap(errutil.MalformedInput,
				"suffixarray: symbol %d at position %d is smaller than the terminal symbol %d",
				text.MustGet(i), i, last)
		}
	}
	return nil
}

func widthFor(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	w := uint64(0)
	for (uint64(1) << w) < n {
		w++
	}
	return w
}

func packSuffixArray(sa []int, n uint64) *SuffixArray {
	width := widthFor(n)
	wv, err := wordvector.New(n, width)
	errutil.BugOn(err != nil, "suffixarray: New(%d,%d): %v", n, width, err)
	for i, v := range sa {
		wv.MustSet(uint64(i), uint64(v))
	}
	return &SuffixArray{sa: wv, n: n}
}

// Build constructs the suffix array of text in O(n) via DC3/skew (spec
// §4.6). text's last symbol must be no larger than any other symbol in
// it (it may recur elsewhere, see checkSentinel); otherwise fails with
// MalformedInput.
func Build(text *wordvector.WordVector) (*SuffixArray, error) {
	if err := checkSentinel(text); err != nil {
		return nil, err
	}
	n := text.Len()
	if n == 0 {
		return packSuffixArray(nil, 0), nil
	}

	// Shift every real symbol up by one so dc3's virtual zero-padding
	// (see at, below) is always strictly below any real symbol,
	// regardless of whether the caller's alphabet already reserves a
	// zero value for its own sentinel. Shifting preserves relative
	// order, so SA positions are unaffected.
	s := make([]int, n)
	maxSym := 0
	for i := uint64(0); i < n; i++ {
		v := int(text.MustGet(i)) + 1
		s[i] = v
		if v > maxSym {
			maxSym = v
		}
	}

	sa := dc3(s, maxSym)
	return packSuffixArray(sa, n), nil
}

// NaiveBuild sorts the n suffixes by pairwise comparison in
// O(n^2 log n); used by tests as an oracle and for small inputs where
// the constant factors of dc3 aren't worth paying. Contract: produces
// identical output to Build (spec §4.6).
func NaiveBuild(text *wordvector.WordVector) (*SuffixArray, error) {
	if err := checkSentinel(text); err != nil {
		return nil, err
	}
	n := text.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	slices.SortFunc(idx, func(a, b int) bool {
		return compareSuffixes(text, uint64(a), uint64(b)) < 0
	})

	return packSuffixArray(idx, n), nil
}

// compareSuffixes lexicographically compares text[a:] and text[b:],
// returning <0, 0, >0. Mirrors the safety-net bounds guard spec §9
// calls out in the source's comparison lambda: the loop stops as soon
// as either suffix runs out of symbols. Because checkSentinel lets the
// terminal symbol recur, one suffix can be a proper prefix of the
// other; the shorter (exhausted) suffix then sorts first.
func compareSuffixes(text *wordvector.WordVector, a, b uint64) int {
	n := text.Len()
	for a < n && b < n {
		va, vb := text.MustGet(a), text.MustGet(b)
		if va != vb {
			if va < vb {
				return -1
			}
			return 1
		}
		a++
		b++
	}
	switch {
	case a < n:
		return 1
	case b < n:
		return -1
	default:
		return 0
	}
}

// --- DC3 / skew construction ---

// at returns s[i], or 0 when i is past the end of s: the algorithm's
// three virtual zero-padding symbols past the text, per spec §4.6's
// input contract, materialised as a bounds check rather than physical
// padding. The merge step reads the rank array s12 through it too, so
// a rank past the end of s12 also reads as 0.
func at(s []int, i int) int {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func leq2(a1, a2, b1, b2 int) bool {
	return a1 < b1 || (a1 == b1 && a2 <= b2)
}

func leq3(a1, a2, a3, b1, b2, b3 int) bool {
	return a1 < b1 || (a1 == b1 && leq2(a2, a3, b2, b3))
}

// radixPass stable-sorts the positions in a by the key at(s, a[i]+offset),
// writing the result into b. Counting sort over K+1 buckets, O(n+K).
func radixPass(a, b, s []int, offset, K int) {
	n := len(a)
	count := make([]int, K+2)
	for i := 0; i < n; i++ {
		count[at(s, a[i]+offset)+1]++
	}
	for i := 0; i < K+1; i++ {
		count[i+1] += count[i]
	}
	for i := 0; i < n; i++ {
		v := at(s, a[i]+offset)
		b[count[v]] = a[i]
		count[v]++
	}
}

// dc3 returns the suffix array of s (values in [0, K]) via the
// Kärkkäinen-Sanders skew algorithm, recursing on the n0+n2 sampled
// positions whenever their lexicographic names aren't already unique
// (spec §4.6 steps 1-6).
func dc3(s []int, K int) []int {
	n := len(s)
	sa := make([]int, n)
	if n == 0 {
		return sa
	}
	if n == 1 {
		return sa // the only suffix starts at 0
	}

	n0 := (n + 2) / 3
	n1 := (n + 1) / 3
	n2 := n / 3
	n12 := n0 + n2

	s12 := make([]int, n12)
	j := 0
	for i := 0; i < n+(n0-n1); i++ {
		if i%3 != 0 {
			s12[j] = i
			j++
		}
	}

	sa12 := make([]int, n12)
	radixPass(s12, sa12, s, 2, K)
	radixPass(sa12, s12, s, 1, K)
	radixPass(s12, sa12, s, 0, K)

	name := 0
	c0, c1, c2 := -1, -1, -1
	for i := 0; i < n12; i++ {
		p := sa12[i]
		if at(s, p) != c0 || at(s, p+1) != c1 || at(s, p+2) != c2 {
			name++
			c0, c1, c2 = at(s, p), at(s, p+1), at(s, p+2)
		}
		if p%3 == 1 {
			s12[p/3] = name
		} else {
			s12[p/3+n0] = name
		}
	}

	if name < n12 {
		rec := dc3(s12, name)
		copy(sa12, rec)
		for i := 0; i < n12; i++ {
			s12[sa12[i]] = i + 1
		}
	} else {
		for i := 0; i < n12; i++ {
			sa12[s12[i]-1] = i
		}
	}

	s0 := make([]int, n0)
	sa0 := make([]int, n0)
	j = 0
	for i := 0; i < n12; i++ {
		if sa12[i] < n0 {
			s0[j] = 3 * sa12[i]
			j++
		}
	}
	radixPass(s0, sa0, s, 0, K)

	getI := func(t int) int {
		if sa12[t] < n0 {
			return sa12[t]*3 + 1
		}
		return (sa12[t]-n0)*3 + 2
	}

	p, t, k := 0, n0-n1, 0
	for k < n {
		i := getI(t)
		jj := sa0[p]

		var less bool
		if sa12[t] < n0 {
			less = leq2(at(s, i), at(s12, sa12[t]+n0), at(s, jj), s12[jj/3])
		} else {
			less = leq3(at(s, i), at(s, i+1), s12[sa12[t]-n0+1], at(s, jj), at(s, jj+1), at(s12, jj/3+n0))
		}

		if less {
			sa[k] = i
			k++
			t++
			if t == n12 {
				for ; p < n0; p++ {
					sa[k] = sa0[p]
					k++
				}
			}
		} else {
			sa[k] = jj
			k++
			p++
			if p == n0 {
				for ; t < n12; t++ {
					sa[k] = getI(t)
					k++
				}
			}
		}
	}

	return sa
}
