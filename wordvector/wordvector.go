// Package wordvector implements C3: a sequence of n fixed-width
// integers (width w in [1,64]) packed into a Bitvector, with random
// access, iteration, ordering, and swap. Style follows the teacher's
// bit-packed containers (Thesis/bits), adapted from a BitString of
// characters to arbitrary-width unsigned words over a bitvector.Bitvector.
package wordvector

import (
	"github.com/zeebo/xxh3"

	"succinct/bitvector"
	"succinct/errutil"
)

// WordVector is a dense sequence of n integers, each of width w bits.
// Logical element i occupies bits [i*w, i*w+w) of the underlying
// bitvector.
type WordVector struct {
	bits  *bitvector.Bitvector
	n     uint64
	width uint64
}

// New creates a WordVector of n elements of width w, all zero. Fails
// when w == 0 or w > 64.
func New(n, width uint64) (*WordVector, error) {
	if width == 0 || width > 64 {
		return nil, errutil.Wrap(errutil.InvalidWidth, "wordvector: width %d", width)
	}
	return &WordVector{bits: bitvector.New(n * width), n: n, width: width}, nil
}

// Len returns the number of elements.
func (w *WordVector) Len() uint64 { return w.n }

// ByteSize returns the size of the backing storage in bytes.
func (w *WordVector) ByteSize() uint64 { return w.bits.ByteSize() }

// HumanSize renders ByteSize in human-readable form, for diagnostic use.
func (w *WordVector) HumanSize() string { return w.bits.HumanSize() }

// Width returns the element bit width.
func (w *WordVector) Width() uint64 { return w.width }

// Bits exposes the backing bitvector read-only, for components (rank,
// wavelet) that need to build a RankHelper or slice it directly.
func (w *WordVector) Bits() *bitvector.Bitvector { return w.bits }

func (w *WordVector) checkIndex(i uint64) error {
	if i >= w.n {
		return errutil.Wrap(errutil.OutOfRange, "wordvector: index %d >= length %d", i, w.n)
	}
	return nil
}

// Get returns the unsigned value at position i.
func (w *WordVector) Get(i uint64) (uint64, error) {
	if err := w.checkIndex(i); err != nil {
		return 0, err
	}
	return w.getUnchecked(i), nil
}

func (w *WordVector) getUnchecked(i uint64) uint64 {
	v, err := w.bits.ReadRange(i*w.width, w.width)
	errutil.BugOn(err != nil, "wordvector: internal slice failure at %d: %v", i, err)
	return v
}

// MustGet panics instead of returning an error.
func (w *WordVector) MustGet(i uint64) uint64 {
	v, err := w.Get(i)
	errutil.BugOn(err != nil, "wordvector: MustGet(%d): %v", i, err)
	return v
}

// Set stores v mod 2^w at position i; high bits of v are silently
// dropped.
func (w *WordVector) Set(i, v uint64) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	w.setUnchecked(i, v)
	return nil
}

func (w *WordVector) setUnchecked(i, v uint64) {
	err := w.bits.WriteRange(i*w.width, v, w.width)
	errutil.BugOn(err != nil, "wordvector: internal write failure at %d: %v", i, err)
}

// MustSet panics instead of returning an error.
func (w *WordVector) MustSet(i, v uint64) {
	errutil.BugOn(w.Set(i, v) != nil, "wordvector: MustSet(%d): out of range (len=%d)", i, w.n)
}

// Swap exchanges the values stored at positions i and j. Used by
// generic sorting routines (spec §4.3 — "composes correctly with
// swap(ref_a, ref_b) and with generic sorting routines").
func (w *WordVector) Swap(i, j uint64) {
	vi, vj := w.getUnchecked(i), w.getUnchecked(j)
	w.setUnchecked(i, vj)
	w.setUnchecked(j, vi)
}

// Less reports whether the value at i is numerically less than the
// value at j; convenient for sort.Interface-shaped adapters.
func (w *WordVector) Less(i, j uint64) bool {
	return w.getUnchecked(i) < w.getUnchecked(j)
}

// Ref is a mutable reference to one element. Assignment between two
// Refs (or a Ref and a plain value) copies the stored value, not the
// position; per spec §9, Go has no assignable-proxy type, so Ref is a
// small position handle with explicit Get/Set rather than an operator
// overload.
type Ref struct {
	wv  *WordVector
	pos uint64
}

// RefAt returns a mutable reference to position i. No bounds check is
// performed eagerly; Get/Set validate on use via MustGet/MustSet and
// panic when the position is out of range.
func (w *WordVector) RefAt(i uint64) Ref { return Ref{wv: w, pos: i} }

// Get returns the referenced value.
func (r Ref) Get() uint64 { return r.wv.MustGet(r.pos) }

// Set stores v at the referenced position.
func (r Ref) Set(v uint64) { r.wv.MustSet(r.pos, v) }

// Assign copies other's stored value into r's position (copies the
// value, not the handle).
func (r Ref) Assign(other Ref) { r.Set(other.Get()) }

// Less compares stored values.
func (r Ref) Less(other Ref) bool { return r.Get() < other.Get() }

// Equal compares stored values.
func (r Ref) Equal(other Ref) bool { return r.Get() == other.Get() }

// Hash returns the hash of the stored value (spec §4.3 — "hash of a
// reference equals the hash of its stored value").
func (r Ref) Hash() uint64 {
	var buf [8]byte
	v := r.Get()
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	return xxh3.Hash(buf[:])
}

// SwapRefs exchanges the values referenced by a and b. The adapter
// spec §9 calls for in place of proxy std::swap: reads both values,
// writes each back to the other's position.
func SwapRefs(a, b Ref) {
	va, vb := a.Get(), b.Get()
	a.Set(vb)
	b.Set(va)
}

// Cursor is a random-access iterator over a WordVector. The integer
// returned by Value is a copy, so it stays valid across Next (spec
// §4.3).
type Cursor struct {
	wv  *WordVector
	pos uint64
}

// Cursor returns a fresh iterator positioned before element 0.
func (w *WordVector) Cursor() *Cursor { return &Cursor{wv: w, pos: ^uint64(0)} }

// Next advances to the next element, reporting whether one exists.
func (c *Cursor) Next() bool {
	if c.pos == ^uint64(0) {
		c.pos = 0
	} else {
		c.pos++
	}
	return c.pos < c.wv.n
}

// Value returns the integer at the cursor's current position.
func (c *Cursor) Value() uint64 { return c.wv.MustGet(c.pos) }

// Pos returns the cursor's current position.
func (c *Cursor) Pos() uint64 { return c.pos }

// ToSlice materializes the WordVector as a plain []uint64, convenience
// for tests and small vectors.
func (w *WordVector) ToSlice() []uint64 {
	out := make([]uint64, w.n)
	for i := range out {
		out[i] = w.getUnchecked(uint64(i))
	}
	return out
}
