package alphabet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTokenAlphabetAscendingRank(t *testing.T) {
	ta, err := BuildTokenAlphabet([]string{"dog", "cat", "bird", "cat"})
	require.NoError(t, err)
	require.Equal(t, 3, ta.Size()) // bird, cat, dog

	rBird, ok := ta.RankOf("bird")
	require.True(t, ok)
	rCat, ok := ta.RankOf("cat")
	require.True(t, ok)
	rDog, ok := ta.RankOf("dog")
	require.True(t, ok)

	require.Less(t, rBird, rCat)
	require.Less(t, rCat, rDog)

	require.Equal(t, "bird", ta.TokenOf(rBird))
	require.Equal(t, "cat", ta.TokenOf(rCat))
	require.Equal(t, "dog", ta.TokenOf(rDog))
}

func TestRankOfRejectsOutOfVocabulary(t *testing.T) {
	ta, err := BuildTokenAlphabet([]string{"a", "b", "c"})
	require.NoError(t, err)
	_, ok := ta.RankOf("z")
	require.False(t, ok)
}

func TestEncodeTokensRoundTrip(t *testing.T) {
	ta, err := BuildTokenAlphabet([]string{"the", "quick", "brown", "fox"})
	require.NoError(t, err)

	seq := []string{"the", "fox", "the", "quick"}
	wv, err := ta.EncodeTokens(seq)
	require.NoError(t, err)
	require.Equal(t, uint64(len(seq)), wv.Len())

	for i, tok := range seq {
		want, ok := ta.RankOf(tok)
		require.True(t, ok)
		require.Equal(t, want, wv.MustGet(uint64(i)))
	}
}

func TestEncodeTokensRejectsUnknownToken(t *testing.T) {
	ta, err := BuildTokenAlphabet([]string{"a", "b"})
	require.NoError(t, err)
	_, err = ta.EncodeTokens([]string{"a", "unknown"})
	require.Error(t, err)
}

func TestEmptyVocabulary(t *testing.T) {
	ta, err := BuildTokenAlphabet(nil)
	require.NoError(t, err)
	require.Equal(t, 0, ta.Size())
	_, ok := ta.RankOf("anything")
	require.False(t, ok)
}
