package fmindex

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"succinct/suffixarray"
	"succinct/wordvector"
)

// byteRankWordVector assigns every byte in alphabet (already sorted
// ascending) a rank equal to its index, then encodes s accordingly.
// Mirrors spec §6's alphabet contract; alphabet is supplied explicitly
// here so pattern and text share the same rank mapping.
func byteRankWordVector(t *testing.T, alphabet, s string) *wordvector.WordVector {
	t.Helper()
	rank := make(map[byte]uint64, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		rank[alphabet[i]] = uint64(i)
	}
	width := uint64(1)
	for (uint64(1) << width) < uint64(len(alphabet)) {
		width++
	}
	wv, err := wordvector.New(uint64(len(s)), width)
	require.NoError(t, err)
	for i := 0; i < len(s); i++ {
		require.NoError(t, wv.Set(uint64(i), rank[s[i]]))
	}
	return wv
}

func buildIndex(t *testing.T, alphabet, text string) (*Index, *suffixarray.SuffixArray, *wordvector.WordVector) {
	t.Helper()
	wv := byteRankWordVector(t, alphabet, text)
	sa, err := suffixarray.Build(wv)
	require.NoError(t, err)
	ix, err := Build(wv, sa)
	require.NoError(t, err)
	return ix, sa, wv
}

func sortedUint64(xs []uint64) []uint64 {
	out := append([]uint64(nil), xs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Spec §8 scenario 6.
func TestLocateGgtcagtc(t *testing.T) {
	alphabet := "$actg" // $ < a < c < g < t, ascending byte order
	ix, sa, _ := buildIndex(t, alphabet, "ggtcagtc$")

	pattern := byteRankWordVector(t, alphabet, "gtc")
	saPositions, err := ix.Locate(pattern)
	require.NoError(t, err)
	require.Equal(t, []uint64{5, 6}, sortedUint64(saPositions))

	textPositions, err := ix.LocateWithSA(pattern, sa)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 5}, sortedUint64(textPositions))

	miss := byteRankWordVector(t, alphabet, "gtg")
	saPositions, err = ix.Locate(miss)
	require.NoError(t, err)
	require.Empty(t, saPositions)
}

// Round-trip property from spec §8: locating every substring of T
// recovers (at least) its starting position.
func TestLocateRoundTripRecoversAllOccurrences(t *testing.T) {
	alphabet := "$abc"
	text := "abcabcabc$"
	ix, sa, wv := buildIndex(t, alphabet, text)

	n := wv.Len()
	for i := uint64(0); i < n; i++ {
		for end := i + 1; end <= n; end++ {
			m := end - i
			pattern, err := wordvector.New(m, wv.Width())
			require.NoError(t, err)
			for k := uint64(0); k < m; k++ {
				pattern.MustSet(k, wv.MustGet(i+k))
			}

			positions, err := ix.LocateWithSA(pattern, sa)
			require.NoError(t, err)

			found := false
			for _, p := range positions {
				if p == i {
					found = true
					break
				}
			}
			require.True(t, found, "pattern at %d (len %d) not recovered", i, m)
		}
	}
}

func TestWidthMismatch(t *testing.T) {
	ix, _, _ := buildIndex(t, "$ab", "abab$")
	pattern, err := wordvector.New(1, 5)
	require.NoError(t, err)
	_, err = ix.Locate(pattern)
	require.Error(t, err)
}

func TestSentinelRequiredForBuild(t *testing.T) {
	wv, err := wordvector.New(3, 2)
	require.NoError(t, err)
	require.NoError(t, wv.Set(0, 1))
	require.NoError(t, wv.Set(1, 0))
	require.NoError(t, wv.Set(2, 0)) // sentinel value repeats: not unique
	_, err = suffixarray.Build(wv)
	require.NoError(t, err) // suffixarray's weaker check allows this

	sa, err := suffixarray.Build(wv)
	require.NoError(t, err)
	_, err = Build(wv, sa)
	require.Error(t, err) // fmindex's stricter uniqueness check rejects it
}

func TestAccessMatchesBWTColumn(t *testing.T) {
	alphabet := "$actg"
	ix, sa, wv := buildIndex(t, alphabet, "ggtcagtc$")
	n := wv.Len()
	for r := uint64(0); r < ix.Len(); r++ {
		v := ix.Access(r)
		require.Less(t, v, uint64(len(alphabet)))
		// L[r] = text[(SA[r]-1) mod n]
		require.Equal(t, wv.MustGet((sa.At(r)+n-1)%n), v, "r=%d", r)
	}
}
