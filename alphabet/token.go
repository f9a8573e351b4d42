// TokenAlphabet generalizes Map from single bytes to arbitrary tokens
// (e.g. words, n-grams), for vocabularies too large to enumerate as a
// 256-entry byte table. Built on a minimal perfect hash function so
// rank lookup stays O(1) without storing every token's hash in a
// probe-chained table. Supplements spec §6's byte-alphabet contract
// for the generalized-vocabulary case noted in the expanded domain
// stack (SPEC_FULL.md §6).
package alphabet

import (
	"sort"

	"github.com/dgryski/go-boomphf"
	"github.com/zeebo/xxh3"

	"succinct/errutil"
	"succinct/wordvector"
)

// TokenAlphabet assigns a dense rank in ascending lexicographic token
// order to each distinct token in a vocabulary, using a BBHash minimal
// perfect hash keyed on the token's xxh3 hash for O(1) lookup.
type TokenAlphabet struct {
	tokens []string // tokens[finalRank] = original token
	mph    *boomphf.H
	// finalRank[mph.Query(hash)-1] maps the MPH's own 1-based bucket
	// assignment (arbitrary order) to the ascending-lexicographic rank
	// this alphabet actually reports, so RankOf's contract matches Map's.
	finalRank []uint64
}

func tokenKey(s string) uint64 {
	return xxh3.HashString(s)
}

// BuildTokenAlphabet assigns ranks over the distinct tokens in vocab,
// ascending lexicographically, and constructs a minimal perfect hash
// over their xxh3 keys for O(1) RankOf lookup.
func BuildTokenAlphabet(vocab []string) (*TokenAlphabet, error) {
	seen := make(map[string]bool, len(vocab))
	var distinct []string
	for _, tok := range vocab {
		if !seen[tok] {
			seen[tok] = true
			distinct = append(distinct, tok)
		}
	}
	sort.Strings(distinct)

	keys := make([]uint64, len(distinct))
	for i, tok := range distinct {
		keys[i] = tokenKey(tok)
	}

	ta := &TokenAlphabet{tokens: make([]string, len(distinct))}
	if len(distinct) == 0 {
		return ta, nil
	}

	ta.mph = boomphf.New(2.0, keys)

	ta.finalRank = make([]uint64, len(distinct))
	for rank, tok := range distinct {
		bucket := ta.mph.Query(tokenKey(tok)) - 1
		ta.finalRank[bucket] = uint64(rank)
		ta.tokens[rank] = tok
	}

	return ta, nil
}

// Size returns the vocabulary size.
func (ta *TokenAlphabet) Size() int { return len(ta.tokens) }

// Width returns ceil(log2(Size())), clamped to at least 1.
func (ta *TokenAlphabet) Width() uint64 {
	if len(ta.tokens) <= 1 {
		return 1
	}
	w := uint64(0)
	for (uint64(1) << w) < uint64(len(ta.tokens)) {
		w++
	}
	return w
}

// RankOf returns the dense rank for tok, or false if tok is outside the
// vocabulary the alphabet was built from. A hash collision against an
// out-of-vocabulary token is possible in principle (the MPH only
// guarantees perfection over its training keys); the stored token for
// the candidate rank is compared against tok to confirm the match, at
// the cost of one string compare per lookup.
func (ta *TokenAlphabet) RankOf(tok string) (uint64, bool) {
	if ta.mph == nil {
		return 0, false
	}
	bucket := ta.mph.Query(tokenKey(tok)) - 1
	if bucket >= uint64(len(ta.finalRank)) {
		return 0, false
	}
	rank := ta.finalRank[bucket]
	if ta.tokens[rank] != tok {
		return 0, false
	}
	return rank, true
}

// TokenOf is the inverse of RankOf.
func (ta *TokenAlphabet) TokenOf(rank uint64) string {
	errutil.BugOn(rank >= uint64(len(ta.tokens)), "alphabet: rank %d out of range for vocabulary of size %d", rank, len(ta.tokens))
	return ta.tokens[rank]
}

// EncodeTokens rank-encodes a token sequence against this vocabulary.
// Fails with MalformedInput on any out-of-vocabulary token.
func (ta *TokenAlphabet) EncodeTokens(seq []string) (*wordvector.WordVector, error) {
	wv, err := wordvector.New(uint64(len(seq)), ta.Width())
	if err != nil {
		return nil, err
	}
	for i, tok := range seq {
		r, ok := ta.RankOf(tok)
		if !ok {
			return nil, errutil.Wrap(errutil.MalformedInput, "alphabet: token %q at position %d is not in the vocabulary", tok, i)
		}
		wv.MustSet(uint64(i), r)
	}
	return wv, nil
}
