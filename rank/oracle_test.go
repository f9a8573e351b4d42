package rank

import (
	"math/rand"
	"testing"

	"github.com/hillbig/rsdic"
	"github.com/stretchr/testify/require"

	"succinct/bitvector"
)

// Cross-checks Rank1 against hillbig/rsdic, an independently
// implemented succinct rank/select dictionary, in the spirit of the
// teacher's succinct_bit_vector/benchmark_test.go which already
// exercises a second rank/select library (the siongui reference) for
// the same purpose. rsdic.Rank(pos, bit) counts occurrences of bit in
// [0, pos) (exclusive), so Rank1(i) (inclusive of i) corresponds to
// rsdic's Rank(i+1, true).
func TestRank1AgainstRsdic(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for trial := 0; trial < 10; trial++ {
		n := 1 + r.Intn(400)
		bv := bitvector.New(uint64(n))
		oracle := rsdic.New()

		for i := 0; i < n; i++ {
			bit := r.Intn(3) == 0
			if bit {
				require.NoError(t, bv.Set(uint64(i)))
			}
			oracle.PushBack(bit)
		}

		h := New(bv)
		for i := 0; i < n; i++ {
			want := oracle.Rank(uint64(i+1), true)
			got := h.Rank1(uint64(i))
			require.Equal(t, want, got, "n=%d i=%d", n, i)
		}
	}
}
