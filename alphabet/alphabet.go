// Package alphabet implements the external byte-alphabet interface
// (spec §6): mapping a byte string to a rank-assignment map plus a
// WordVector of those ranks, the glue between raw text and every
// downstream succinct structure. Style follows the teacher's small,
// single-purpose encoder helpers (Thesis/utils).
package alphabet

import (
	"sort"

	"succinct/errutil"
	"succinct/wordvector"
)

// Map assigns each distinct byte seen in a source string a dense rank
// in ascending byte order, starting at 0.
type Map struct {
	rank  [256]int16 // -1 if the byte never appears
	bytes []byte     // bytes[rank] = original byte value
}

// RankOf returns the rank assigned to b and whether b was present in
// the source the Map was built from.
func (m *Map) RankOf(b byte) (uint64, bool) {
	r := m.rank[b]
	if r < 0 {
		return 0, false
	}
	return uint64(r), true
}

// ByteOf is the inverse of RankOf: the original byte for a given rank.
func (m *Map) ByteOf(rank uint64) byte {
	errutil.BugOn(rank >= uint64(len(m.bytes)), "alphabet: rank %d out of range for alphabet of size %d", rank, len(m.bytes))
	return m.bytes[rank]
}

// Size returns the number of distinct bytes in the alphabet.
func (m *Map) Size() int { return len(m.bytes) }

// Width returns ceil(log2(Size())), clamped to at least 1 so it is
// always a valid WordVector element width, per spec §6.
func (m *Map) Width() uint64 {
	if len(m.bytes) <= 1 {
		return 1
	}
	w := uint64(0)
	for (uint64(1) << w) < uint64(len(m.bytes)) {
		w++
	}
	return w
}

// Encode builds the alphabet map and rank-encoded WordVector for s.
// Empty strings yield a Map of size 0 and a zero-length, width-0-as-1
// WordVector (spec §6: "Empty strings yield width 0 and a zero-length
// vector" — width is clamped to 1 here since wordvector.New forbids
// width 0; the vector itself is still length 0, so no value is ever
// stored at an invalid width).
func Encode(s []byte) (*Map, *wordvector.WordVector, error) {
	m := &Map{}
	for i := range m.rank {
		m.rank[i] = -1
	}

	var seen [256]bool
	for _, b := range s {
		seen[b] = true
	}
	for b := 0; b < 256; b++ {
		if seen[b] {
			m.bytes = append(m.bytes, byte(b))
		}
	}
	sort.Slice(m.bytes, func(i, j int) bool { return m.bytes[i] < m.bytes[j] })
	for r, b := range m.bytes {
		m.rank[b] = int16(r)
	}

	width := m.Width()
	wv, err := wordvector.New(uint64(len(s)), width)
	if err != nil {
		return nil, nil, err
	}
	for i, b := range s {
		r, ok := m.RankOf(b)
		errutil.BugOn(!ok, "alphabet: byte %d missing from its own map", b)
		wv.MustSet(uint64(i), r)
	}
	return m, wv, nil
}

// EncodePattern rank-encodes s against an already-built Map, failing
// with MalformedInput if s contains a byte the Map never saw (a
// pattern byte absent from the indexed text can never match).
func EncodePattern(m *Map, s []byte) (*wordvector.WordVector, error) {
	wv, err := wordvector.New(uint64(len(s)), m.Width())
	if err != nil {
		return nil, err
	}
	for i, b := range s {
		r, ok := m.RankOf(b)
		if !ok {
			return nil, errutil.Wrap(errutil.MalformedInput,
				"alphabet: pattern byte %q at position %d never appears in the indexed text", b, i)
		}
		wv.MustSet(uint64(i), r)
	}
	return wv, nil
}

// Decode reverses Encode, reconstructing the original byte string from
// a rank-encoded WordVector and the Map that produced it.
func Decode(m *Map, wv *wordvector.WordVector) []byte {
	out := make([]byte, wv.Len())
	for i := uint64(0); i < wv.Len(); i++ {
		out[i] = m.ByteOf(wv.MustGet(i))
	}
	return out
}
