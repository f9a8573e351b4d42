package suffixarray

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"succinct/wordvector"
)

// byteRankAlphabet assigns each distinct byte of s a rank in ascending
// byte order starting at 0, mirroring spec §6's alphabet contract.
func byteRankAlphabet(t *testing.T, s string) *wordvector.WordVector {
	t.Helper()
	seen := make(map[byte]bool)
	for i := 0; i < len(s); i++ {
		seen[s[i]] = true
	}
	var distinct []byte
	for b := range seen {
		distinct = append(distinct, b)
	}
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			if distinct[j] < distinct[i] {
				distinct[i], distinct[j] = distinct[j], distinct[i]
			}
		}
	}
	rank := make(map[byte]uint64, len(distinct))
	for i, b := range distinct {
		rank[b] = uint64(i)
	}

	width := widthFor(uint64(len(distinct)))
	wv, err := wordvector.New(uint64(len(s)), width)
	require.NoError(t, err)
	for i := 0; i < len(s); i++ {
		require.NoError(t, wv.Set(uint64(i), rank[s[i]]))
	}
	return wv
}

func toSA(sa *SuffixArray) []uint64 {
	out := make([]uint64, sa.Len())
	for i := range out {
		out[i] = sa.At(uint64(i))
	}
	return out
}

// Spec §8 scenario 5.
func TestBuildMississippi(t *testing.T) {
	wv := byteRankAlphabet(t, "mississippi")

	sa, err := Build(wv)
	require.NoError(t, err)
	require.Equal(t, []uint64{10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2}, toSA(sa))

	naive, err := NaiveBuild(wv)
	require.NoError(t, err)
	require.Equal(t, toSA(sa), toSA(naive))
}

func TestBuildEmpty(t *testing.T) {
	wv, err := wordvector.New(0, 1)
	require.NoError(t, err)
	sa, err := Build(wv)
	require.NoError(t, err)
	require.Equal(t, uint64(0), sa.Len())
}

func TestBuildSingleSymbol(t *testing.T) {
	wv, err := wordvector.New(1, 1)
	require.NoError(t, err)
	sa, err := Build(wv)
	require.NoError(t, err)
	require.Equal(t, []uint64{0}, toSA(sa))
}

func TestSentinelViolationIsMalformed(t *testing.T) {
	// last symbol (1) is not the minimum: position 1 holds a smaller value (0).
	wv, err := wordvector.New(3, 2)
	require.NoError(t, err)
	require.NoError(t, wv.Set(0, 2))
	require.NoError(t, wv.Set(1, 0))
	require.NoError(t, wv.Set(2, 1))

	_, err = Build(wv)
	require.Error(t, err)
	_, err = NaiveBuild(wv)
	require.Error(t, err)
}

func isPermutation(sa []uint64, n int) bool {
	if len(sa) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range sa {
		if v >= uint64(n) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Random differential test: DC3 must agree with the naive O(n^2 log n)
// constructor on every input (spec §4.6 — "both constructors produce
// identical output").
func TestBuildAgreesWithNaive(t *testing.T) {
	r := rand.New(rand.NewSource(123))
	alphabets := []string{"ab", "abc", "abcd"}

	for trial := 0; trial < 30; trial++ {
		alpha := alphabets[r.Intn(len(alphabets))]
		n := 1 + r.Intn(40)

		buf := make([]byte, n)
		for i := 0; i < n-1; i++ {
			buf[i] = alpha[1+r.Intn(len(alpha)-1)]
		}
		buf[n-1] = alpha[0] // global minimum terminal symbol
		s := string(buf)

		wv := byteRankAlphabet(t, s)

		got, err := Build(wv)
		require.NoError(t, err)
		want, err := NaiveBuild(wv)
		require.NoError(t, err)

		require.Equal(t, toSA(want), toSA(got), "s=%q", s)
		require.True(t, isPermutation(toSA(got), n), "s=%q", s)

		// text[SA[r]..] must strictly precede text[SA[r+1]..].
		saSlice := toSA(got)
		for i := 0; i+1 < len(saSlice); i++ {
			require.Less(t, compareSuffixes(wv, saSlice[i], saSlice[i+1]), 0, "s=%q i=%d", s, i)
		}
	}
}
