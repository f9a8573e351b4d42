// Package fmindex implements C7: an FM-index over a $-terminated text,
// built from the text's BWT (via a wavelet.Matrix over the L column)
// plus a dense C table, giving O(w) backward-search steps. Grounded in
// the original Bwt (original_source/unialgo/pattern/bwt.cpp), adapted
// from its unordered_map-based C table (spec §3's deviation) to a dense
// slice indexed by symbol value, and reworked to take a pre-built
// SuffixArray instead of calling the source's (non-functional) SA
// constructor internally.
package fmindex

import (
	"github.com/dustin/go-humanize"

	"succinct/errutil"
	"succinct/suffixarray"
	"succinct/wavelet"
	"succinct/wordvector"
)

// Index is an FM-index: the implicit BWT (as a wavelet.Matrix) plus the
// cumulative symbol-count table C.
type Index struct {
	n     uint64
	width uint64
	occ   *wavelet.Matrix
	c     []uint64 // c[sym] = count of symbols strictly less than sym
}

func checkSentinel(text *wordvector.WordVector) error {
	n := text.Len()
	if n == 0 {
		return errutil.Wrap(errutil.MalformedInput, "fmindex: empty text has no sentinel")
	}
	last := text.MustGet(n - 1)
	for i := uint64(0); i+1 < n; i++ {
		if text.MustGet(i) <= last {
			return errutil.Wrap(errutil.MalformedInput,
				"fmindex: symbol %d at position %d is not strictly greater than the terminal sentinel %d",
				text.MustGet(i), i, last)
		}
	}
	return nil
}

// Build constructs an FM-index from text (a $-terminated WordVector)
// and its precomputed SuffixArray (spec §4.7).
func Build(text *wordvector.WordVector, sa *suffixarray.SuffixArray) (*Index, error) {
	if err := checkSentinel(text); err != nil {
		return nil, err
	}
	n := text.Len()
	errutil.BugOn(sa.Len() != n, "fmindex: suffix array length %d != text length %d", sa.Len(), n)
	width := text.Width()

	l, err := wordvector.New(n, width)
	errutil.BugOn(err != nil, "fmindex: wordvector.New(%d,%d): %v", n, width, err)

	l.MustSet(0, text.MustGet(n-2))
	for r := uint64(1); r < n; r++ {
		p := sa.At(r)
		if p > 0 {
			l.MustSet(r, text.MustGet(p-1))
		} else {
			l.MustSet(r, text.MustGet(n-1))
		}
	}

	occ := wavelet.Build(l)

	alphabetSize := uint64(1) << width
	c := make([]uint64, alphabetSize+1)
	for sym := uint64(0); sym < alphabetSize; sym++ {
		c[sym+1] = c[sym] + occ.Rank(sym, n-1)
	}

	return &Index{n: n, width: width, occ: occ, c: c}, nil
}

// Len returns the number of rows in the index (the $-terminated text's length).
func (ix *Index) Len() uint64 { return ix.n }

// Width returns the symbol bit-width.
func (ix *Index) Width() uint64 { return ix.width }

// ByteSize returns an approximate size in bytes: the occ WaveletMatrix
// plus the dense C table.
func (ix *Index) ByteSize() uint64 { return ix.occ.ByteSize() + uint64(len(ix.c))*8 }

// HumanSize renders ByteSize in human-readable form, for diagnostic use.
func (ix *Index) HumanSize() string { return humanize.Bytes(ix.ByteSize()) }

// Access returns L[r], the BWT symbol at row r, in O(width).
func (ix *Index) Access(r uint64) uint64 {
	errutil.BugOn(r >= ix.n, "fmindex: Access(%d) out of range for length %d", r, ix.n)
	return ix.occ.Access(r)
}

// BackwardExtend maps a Q-interval [b,e) to the sigmaQ-interval [b',e')
// (spec §4.7), in O(width).
func (ix *Index) BackwardExtend(b, e, sigma uint64) (uint64, uint64) {
	var rb, re uint64
	if b > 0 {
		rb = ix.occ.Rank(sigma, b-1)
	}
	if e > 0 {
		re = ix.occ.Rank(sigma, e-1)
	}
	return ix.c[sigma] + rb, ix.c[sigma] + re
}

// checkWidth enforces spec §4.7's WidthMismatch precondition.
func (ix *Index) checkWidth(pattern *wordvector.WordVector) error {
	if pattern.Width() != ix.width {
		return errutil.Wrap(errutil.WidthMismatch,
			"fmindex: pattern width %d != index width %d", pattern.Width(), ix.width)
	}
	return nil
}

// search runs backward search over pattern, returning the half-open SA
// interval [b,e) of matching positions. Returns b==e for no match.
func (ix *Index) search(pattern *wordvector.WordVector) (uint64, uint64) {
	b, e := uint64(0), ix.n
	m := pattern.Len()
	for j := uint64(0); j < m; j++ {
		sigma := pattern.MustGet(m - 1 - j)
		b, e = ix.BackwardExtend(b, e, sigma)
		if b == e {
			return b, e
		}
	}
	return b, e
}

// Locate returns the SA positions (rows of the index) matching pattern.
func (ix *Index) Locate(pattern *wordvector.WordVector) ([]uint64, error) {
	if err := ix.checkWidth(pattern); err != nil {
		return nil, err
	}
	b, e := ix.search(pattern)
	out := make([]uint64, 0, e-b)
	for r := b; r < e; r++ {
		out = append(out, r)
	}
	return out, nil
}

// LocateWithSA returns text positions matching pattern, obtained by
// mapping each matching SA row through sa.
func (ix *Index) LocateWithSA(pattern *wordvector.WordVector, sa *suffixarray.SuffixArray) ([]uint64, error) {
	if err := ix.checkWidth(pattern); err != nil {
		return nil, err
	}
	b, e := ix.search(pattern)
	out := make([]uint64, 0, e-b)
	for r := b; r < e; r++ {
		out = append(out, sa.At(r))
	}
	return out, nil
}
