package bitvector

import (
	"encoding/base64"
	"math/rand"
	"testing"

	refbits "github.com/siongui/go-succinct-data-structure-trie/reference"
	"github.com/stretchr/testify/require"
)

// Cross-checks the total population count of a random byte buffer
// against an independently-implemented reference bitstring, in the same
// spirit as the teacher's succinct_bit_vector/benchmark_test.go (which
// exercises the same reference library rather than trusting only our
// own implementation). The reference library's bit-addressing
// convention (MSB- vs LSB-first within a byte) isn't part of its public
// contract, so the check is restricted to the order-independent
// population count rather than per-position equality.
func TestPopcountAgainstReferenceBitstring(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const n = 256

	raw := make([]byte, n/8)
	r.Read(raw)

	ours := New(uint64(n))
	wantOnes := 0
	for i := 0; i < n; i++ {
		byteIdx, bitIdx := i/8, i%8
		if raw[byteIdx]&(1<<bitIdx) != 0 {
			require.NoError(t, ours.Set(uint64(i)))
			wantOnes++
		}
	}

	ref := &refbits.BitString{}
	ref.Init(base64.StdEncoding.EncodeToString(raw))

	refOnes := int(ref.Count(0, uint(n)))
	require.Equal(t, wantOnes, refOnes)

	ourOnes := 0
	c := ours.Cursor()
	for c.Next() {
		if c.Get() {
			ourOnes++
		}
	}
	require.Equal(t, wantOnes, ourOnes)
}
