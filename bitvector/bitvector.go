// Package bitvector implements C2: a finite, immutable-after-build-layer
// sequence of bits backed by 64-bit cells, with slicing, bitwise AND,
// right-shift, equality and hashing. Style follows the teacher's
// Thesis/bits package (CharBitString / Uint64ArrayBitString), adapted
// to the cell-array layout and the fixed contracts of spec §3/§4.2.
package bitvector

import (
	"encoding/binary"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/xxh3"

	"succinct/bitpack"
	"succinct/errutil"
)

// Bitvector is a finite ordered sequence of bits. Index 0 is the
// logical LSB position; bit i lives in cell i/64 at intra-cell offset
// i%64. Length is fixed at construction (spec §3).
type Bitvector struct {
	cells  []uint64
	nBits  uint64
	frozen bool // true once a RankHelper/WaveletMatrix has taken a snapshot
}

// New creates a Bitvector of length n, all bits zero.
func New(n uint64) *Bitvector {
	numCells := (n + bitpack.CellBits - 1) / bitpack.CellBits
	return &Bitvector{cells: make([]uint64, numCells), nBits: n}
}

// Len returns the number of bits.
func (b *Bitvector) Len() uint64 { return b.nBits }

// ByteSize returns the size of the backing cell storage in bytes.
func (b *Bitvector) ByteSize() uint64 { return uint64(len(b.cells)) * 8 }

// HumanSize renders ByteSize in human-readable form (e.g. "1.2 kB"),
// for diagnostic/reporting use only.
func (b *Bitvector) HumanSize() string { return humanize.Bytes(b.ByteSize()) }

// Get returns the value of bit i. Fails with errutil.OutOfRange when
// i >= Len().
func (b *Bitvector) Get(i uint64) (bool, error) {
	if i >= b.nBits {
		return false, errutil.Wrap(errutil.OutOfRange, "bitvector: index %d >= length %d", i, b.nBits)
	}
	return bitpack.ReadBits(b.cells, i, 1) != 0, nil
}

// MustGet panics instead of returning an error; used internally and by
// callers that have already validated i.
func (b *Bitvector) MustGet(i uint64) bool {
	v, err := b.Get(i)
	errutil.BugOn(err != nil, "bitvector: MustGet(%d): %v", i, err)
	return v
}

// Set sets bit i to 1.
func (b *Bitvector) Set(i uint64) error {
	if i >= b.nBits {
		return errutil.Wrap(errutil.OutOfRange, "bitvector: index %d >= length %d", i, b.nBits)
	}
	errutil.BugOn(b.frozen, "bitvector: mutated after a RankHelper/WaveletMatrix snapshot was taken")
	bitpack.WriteBits(b.cells, 1, i, 1)
	return nil
}

// Clear sets bit i to 0.
func (b *Bitvector) Clear(i uint64) error {
	if i >= b.nBits {
		return errutil.Wrap(errutil.OutOfRange, "bitvector: index %d >= length %d", i, b.nBits)
	}
	errutil.BugOn(b.frozen, "bitvector: mutated after a RankHelper/WaveletMatrix snapshot was taken")
	bitpack.WriteBits(b.cells, 0, i, 1)
	return nil
}

// ReadRange returns the length-bit value starting at bit offset off.
// Used by wordvector for element access; length must be <= 64.
func (b *Bitvector) ReadRange(off, length uint64) (uint64, error) {
	if off+length > b.nBits {
		return 0, errutil.Wrap(errutil.OutOfRange, "bitvector: range [%d,%d) exceeds length %d", off, off+length, b.nBits)
	}
	return bitpack.ReadBits(b.cells, off, length), nil
}

// WriteRange writes the low length bits of value starting at bit
// offset off. length must be <= 64.
func (b *Bitvector) WriteRange(off, value, length uint64) error {
	if off+length > b.nBits {
		return errutil.Wrap(errutil.OutOfRange, "bitvector: range [%d,%d) exceeds length %d", off, off+length, b.nBits)
	}
	errutil.BugOn(b.frozen, "bitvector: mutated after a RankHelper/WaveletMatrix snapshot was taken")
	bitpack.WriteBits(b.cells, value, off, length)
	return nil
}

// SetTo writes v into bit i.
func (b *Bitvector) SetTo(i uint64, v bool) error {
	if v {
		return b.Set(i)
	}
	return b.Clear(i)
}

// Freeze marks the bitvector read-only for the remainder of its
// lifetime. Called by RankHelper/WaveletMatrix when they take a
// snapshot, per spec §5's shared-resource policy.
func (b *Bitvector) Freeze() { b.frozen = true }

// Slice returns a new Bitvector holding bits [a, b] inclusive on both
// ends. Reads full source cells where possible to stay linear in
// output bits.
func (b *Bitvector) Slice(a, end uint64) (*Bitvector, error) {
	if a > end {
		return nil, errutil.Wrap(errutil.OutOfRange, "bitvector: slice(%d,%d): a > b", a, end)
	}
	if end >= b.nBits {
		return nil, errutil.Wrap(errutil.OutOfRange, "bitvector: slice(%d,%d): b >= length %d", a, end, b.nBits)
	}

	out := New(end - a + 1)
	var written uint64
	for written < out.nBits {
		remaining := out.nBits - written
		chunk := remaining
		if chunk > bitpack.CellBits {
			chunk = bitpack.CellBits
		}
		v := bitpack.ReadBits(b.cells, a+written, chunk)
		bitpack.WriteBits(out.cells, v, written, chunk)
		written += chunk
	}
	return out, nil
}

// And returns the bitwise AND of b and other. Requires equal length.
func (b *Bitvector) And(other *Bitvector) (*Bitvector, error) {
	out, err := b.cloneForAnd(other)
	if err != nil {
		return nil, err
	}
	out.andInPlaceUnchecked(other)
	return out, nil
}

// AndInPlace ANDs other into b in place. Requires equal length.
func (b *Bitvector) AndInPlace(other *Bitvector) error {
	if b.nBits != other.nBits {
		return errutil.Wrap(errutil.LengthMismatch, "bitvector: and_in_place: %d != %d", b.nBits, other.nBits)
	}
	errutil.BugOn(b.frozen, "bitvector: mutated after a RankHelper/WaveletMatrix snapshot was taken")
	b.andInPlaceUnchecked(other)
	return nil
}

func (b *Bitvector) cloneForAnd(other *Bitvector) (*Bitvector, error) {
	if b.nBits != other.nBits {
		return nil, errutil.Wrap(errutil.LengthMismatch, "bitvector: and: %d != %d", b.nBits, other.nBits)
	}
	out := New(b.nBits)
	copy(out.cells, b.cells)
	return out, nil
}

func (b *Bitvector) andInPlaceUnchecked(other *Bitvector) {
	for i := range b.cells {
		b.cells[i] &= other.cells[i]
	}
}

// ShiftRightInPlace shifts bits toward lower indices by k, zero-filling
// the high end. k >= 64 is not a required case for the core.
func (b *Bitvector) ShiftRightInPlace(k uint64) {
	errutil.BugOn(b.frozen, "bitvector: mutated after a RankHelper/WaveletMatrix snapshot was taken")
	if k == 0 || b.nBits == 0 {
		return
	}
	errutil.BugOn(k >= bitpack.CellBits, "bitvector: ShiftRightInPlace(%d): k >= 64 unsupported", k)

	n := len(b.cells)
	for i := 0; i < n; i++ {
		lo := b.cells[i] >> k
		var hi uint64
		if i+1 < n {
			hi = b.cells[i+1] << (bitpack.CellBits - k)
		}
		b.cells[i] = lo | hi
	}
	b.maskTrailingBits()
}

// maskTrailingBits zeroes bits beyond nBits in the last cell, since all
// operations must ignore them (spec §3).
func (b *Bitvector) maskTrailingBits() {
	if len(b.cells) == 0 {
		return
	}
	rem := b.nBits % bitpack.CellBits
	if rem == 0 {
		return
	}
	last := len(b.cells) - 1
	m := (uint64(1) << rem) - 1
	b.cells[last] &= m
}

// Equal compares length and all value bits; bits beyond Len() in the
// last cell are ignored.
func (b *Bitvector) Equal(other *Bitvector) bool {
	if b.nBits != other.nBits {
		return false
	}
	for i := range b.cells {
		bi, oi := b.cells[i], other.cells[i]
		if i == len(b.cells)-1 {
			rem := b.nBits % bitpack.CellBits
			if rem != 0 {
				m := (uint64(1) << rem) - 1
				bi &= m
				oi &= m
			}
		}
		if bi != oi {
			return false
		}
	}
	return true
}

// Hash mixes length with the content cells (trailing bits beyond Len()
// masked first), xxh3 as in the teacher's CharBitString.HashWithSeed.
func (b *Bitvector) Hash() uint64 {
	h := xxh3.New()

	var sizeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], b.nBits)
	_, _ = h.Write(sizeBuf[:])

	var buf [8]byte
	for i, c := range b.cells {
		if i == len(b.cells)-1 {
			rem := b.nBits % bitpack.CellBits
			if rem != 0 {
				c &= (uint64(1) << rem) - 1
			}
		}
		binary.LittleEndian.PutUint64(buf[:], c)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// String prints b[n-1] ... b[1] b[0] with no separators (spec §4.2
// display contract).
func (b *Bitvector) String() string {
	var sb strings.Builder
	sb.Grow(int(b.nBits))
	for i := int64(b.nBits) - 1; i >= 0; i-- {
		if b.MustGet(uint64(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Cursor iterates bits in ascending order. *Cursor's Set writes through
// to the underlying cell (spec §9's cursor-over-proxy guidance: no
// assignable proxy type, just get/set plus a cursor for iteration).
type Cursor struct {
	bv  *Bitvector
	pos uint64
}

// Cursor returns a fresh iterator positioned before bit 0.
func (b *Bitvector) Cursor() *Cursor { return &Cursor{bv: b, pos: ^uint64(0)} }

// Next advances to the next bit, reporting whether one exists.
func (c *Cursor) Next() bool {
	if c.pos == ^uint64(0) {
		c.pos = 0
	} else {
		c.pos++
	}
	return c.pos < c.bv.nBits
}

// Get returns the bit at the cursor's current position.
func (c *Cursor) Get() bool { return c.bv.MustGet(c.pos) }

// Set writes through to the underlying bitvector at the cursor's
// current position.
func (c *Cursor) Set(v bool) { _ = c.bv.SetTo(c.pos, v) }

// Pos returns the cursor's current position.
func (c *Cursor) Pos() uint64 { return c.pos }
