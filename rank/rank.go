// Package rank implements C4: a RankHelper giving constant-time (in
// practice, small-constant) rank1 over a shared bitvector.Bitvector,
// plus rank0, ranged rank, and O(log n) select. Grounded in the
// original C++ RankHelper (original_source/unialgo/utils/bitvector/
// rankHelper.hpp)'s two-layer counting-block design, reworked per
// spec §4.4's block_large/block_small naming and the explicit warning
// in spec §9 not to blindly reproduce the original's boundary bugs.
//
// Deviation from the construction prose of spec §4.4, noted here and in
// DESIGN.md: the shared popcount table is keyed by the *full*
// block_small-bit pattern of each complete small block (not a
// block_small-1 bit prefix), storing block_small prefix-popcount
// entries (offsets 0..block_small-1) rather than block_small-1. The
// block_small-1 framing in the prose does not by itself supply the
// value of a block's last bit without risking key collisions across
// blocks that share a (block_small-1)-bit prefix but differ in their
// last bit — exactly the kind of boundary subtlety spec §9 calls out
// as bug-prone in the original source. Using the full block closes
// that gap while preserving the two-level O(1)-amortised shape spec
// §4.4 describes.
package rank

import (
	"math"

	"github.com/dustin/go-humanize"

	"succinct/bitvector"
	"succinct/errutil"
)

// NONE is the sentinel returned by Select when k exceeds the total
// count of the requested bit value.
const NONE = ^uint64(0)

// Helper precomputes two count layers plus a shared popcount lookup
// table over a Bitvector, giving O(1)-amortised rank1 and O(log n)
// select (spec §4.4).
type Helper struct {
	bv *bitvector.Bitvector

	blockSmall uint64
	blockLarge uint64

	cumLarge []uint64 // cumLarge[j] = popcount([0, j*blockLarge))
	cumSmall []uint64 // cumSmall[k] = popcount([largeStart(k), k*blockSmall))

	table map[uint64][]uint16 // block-pattern hash -> prefix popcounts, length blockSmall
}

// New precomputes both count layers and the popcount table over bv.
// Freezes bv: per spec §5's shared-resource policy, a Bitvector must
// not be mutated once a RankHelper has been built over it.
func New(bv *bitvector.Bitvector) *Helper {
	bv.Freeze()
	n := bv.Len()

	bs := blockSmallFor(n)
	bl := bs * bs

	h := &Helper{
		bv:         bv,
		blockSmall: bs,
		blockLarge: bl,
		table:      make(map[uint64][]uint16),
	}

	if n == 0 {
		h.cumLarge = []uint64{0}
		h.cumSmall = []uint64{0}
		return h
	}

	numSmall := n/bs + 1
	numLarge := n/bl + 2
	h.cumSmall = make([]uint64, numSmall)
	h.cumLarge = make([]uint64, numLarge)

	var sinceLargeStart uint64
	var largeIdx uint64
	for k := uint64(0); k < numSmall; k++ {
		blockStart := k * bs
		if blockStart/bl != largeIdx {
			largeIdx = blockStart / bl
			h.cumLarge[largeIdx] = h.cumLarge[largeIdx-1] + sinceLargeStart
			sinceLargeStart = 0
		}
		h.cumSmall[k] = sinceLargeStart

		if blockStart >= n {
			continue
		}
		blockLen := bs
		if blockStart+blockLen > n {
			blockLen = n - blockStart
		}

		popcount, prefix := h.scanBlock(blockStart, blockLen)
		sinceLargeStart += popcount

		if blockLen == bs {
			key := h.blockKey(blockStart, bs)
			if _, ok := h.table[key]; !ok {
				h.table[key] = prefix
			}
		}
	}
	// fill any trailing cumLarge slots so lookups past the last
	// processed large block still resolve.
	for j := largeIdx + 1; j < numLarge; j++ {
		h.cumLarge[j] = h.cumLarge[largeIdx] + sinceLargeStart
	}

	return h
}

func blockSmallFor(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	bs := uint64(math.Ceil(math.Log2(float64(n)) / 2))
	if bs < 1 {
		bs = 1
	}
	return bs
}

// scanBlock reads blockLen bits starting at blockStart and returns the
// block's total popcount plus the prefix-popcount array of length
// blockLen (entry u = popcount of bits [blockStart, blockStart+u]).
func (h *Helper) scanBlock(blockStart, blockLen uint64) (uint64, []uint16) {
	prefix := make([]uint16, blockLen)
	var running uint16
	for u := uint64(0); u < blockLen; u++ {
		if h.bv.MustGet(blockStart + u) {
			running++
		}
		prefix[u] = running
	}
	return uint64(running), prefix
}

// blockKey hashes the length-bit pattern starting at start through a
// scratch Bitvector, per spec §4.4 ("the slice key is hashed via
// Bitvector hashing"). A single ReadRange call (at most two cells, per
// spec §4.1) fetches the pattern, keeping this O(1).
func (h *Helper) blockKey(start, length uint64) uint64 {
	v, err := h.bv.ReadRange(start, length)
	errutil.BugOn(err != nil, "rank: blockKey(%d,%d): %v", start, length, err)

	scratch := bitvector.New(length)
	errutil.BugOn(scratch.WriteRange(0, v, length) != nil, "rank: scratch write failed")
	return scratch.Hash()
}

// ByteSize returns an approximate size in bytes of the two count
// layers plus the shared popcount table (the indexed Bitvector itself
// is not counted, since RankHelper only shares it, per spec §3).
func (h *Helper) ByteSize() uint64 {
	size := uint64(len(h.cumLarge)+len(h.cumSmall)) * 8
	for _, prefix := range h.table {
		size += uint64(len(prefix)) * 2
	}
	return size
}

// HumanSize renders ByteSize in human-readable form, for diagnostic use.
func (h *Helper) HumanSize() string { return humanize.Bytes(h.ByteSize()) }

// BlockSmall returns the small-block size, for callers that recompute
// block boundaries independently.
func (h *Helper) BlockSmall() uint64 { return h.blockSmall }

// BlockLarge returns the large-block size.
func (h *Helper) BlockLarge() uint64 { return h.blockLarge }

// Rank1 returns the number of 1-bits in B[0..=i].
func (h *Helper) Rank1(i uint64) uint64 {
	errutil.BugOn(i >= h.bv.Len(), "rank: Rank1(%d) out of range for length %d", i, h.bv.Len())

	largeIdx := i / h.blockLarge
	smallIdx := i / h.blockSmall
	u := i % h.blockSmall
	blockStart := smallIdx * h.blockSmall

	base := h.cumLarge[largeIdx] + h.cumSmall[smallIdx]

	if blockStart+h.blockSmall <= h.bv.Len() {
		key := h.blockKey(blockStart, h.blockSmall)
		prefix := h.table[key]
		errutil.BugOn(prefix == nil, "rank: missing table entry for full block at %d", blockStart)
		return base + uint64(prefix[u])
	}

	// trailing fragment shorter than a full small block: naive count,
	// bounded by blockSmall-1 extra bit reads.
	var count uint64
	for p := blockStart; p <= i; p++ {
		if h.bv.MustGet(p) {
			count++
		}
	}
	return base + count
}

// RankBit returns Rank1(i) if v, else i+1-Rank1(i) (count of zeros).
func (h *Helper) RankBit(i uint64, v bool) uint64 {
	if v {
		return h.Rank1(i)
	}
	return i + 1 - h.Rank1(i)
}

// RankRange returns the count of bit v in [a, b].
func (h *Helper) RankRange(a, b uint64, v bool) uint64 {
	var r uint64
	if a == 0 {
		r = h.RankBit(b, v)
	} else {
		hi := h.RankBit(b, v)
		lo := h.RankBit(a-1, v)
		if hi <= lo {
			return 0
		}
		r = hi - lo
	}
	return r
}

// Select returns the smallest index i such that RankBit(i, v) == k, or
// NONE if k is 0 or exceeds the total count of v.
func (h *Helper) Select(k uint64, v bool) uint64 {
	n := h.bv.Len()
	if n == 0 || k == 0 {
		return NONE
	}

	total := h.RankBit(n-1, v)
	if k > total {
		return NONE
	}

	lo, hi := uint64(0), n-1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if h.RankBit(mid, v) >= k {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
