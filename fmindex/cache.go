package fmindex

import (
	iradix "github.com/hashicorp/go-immutable-radix"

	"succinct/suffixarray"
	"succinct/wordvector"
)

// LocateCache wraps an Index with a read-through cache of prior
// LocateWithSA results, keyed by the pattern's packed byte
// representation. Backed by an immutable radix tree (as zfasttrie/
// bench_cmp_test.go exercises for the same library) so repeated
// lookups of patterns sharing a prefix, the common case for
// interactive search-as-you-type callers, share internal nodes instead
// of hashing the whole key on every insert.
type LocateCache struct {
	ix   *Index
	sa   *suffixarray.SuffixArray
	tree *iradix.Tree
}

// NewLocateCache wraps ix/sa in an empty cache.
func NewLocateCache(ix *Index, sa *suffixarray.SuffixArray) *LocateCache {
	return &LocateCache{ix: ix, sa: sa, tree: iradix.New()}
}

// patternKey packs a pattern's element values into a byte key, one
// byte per element when the width fits (width <= 8), else eight bytes
// per element (big-endian). Locate rejects a pattern whose width
// differs from the index's before consulting the tree, so every key
// comes from patterns of one width and the encoding is unambiguous.
func patternKey(pattern *wordvector.WordVector) []byte {
	n := pattern.Len()
	if pattern.Width() <= 8 {
		key := make([]byte, n)
		for i := uint64(0); i < n; i++ {
			key[i] = byte(pattern.MustGet(i))
		}
		return key
	}
	key := make([]byte, n*8)
	for i := uint64(0); i < n; i++ {
		v := pattern.MustGet(i)
		for k := uint64(0); k < 8; k++ {
			key[8*i+k] = byte(v >> (56 - 8*k))
		}
	}
	return key
}

// Locate returns the text positions matching pattern, serving from the
// cache when this exact pattern has been located before.
func (lc *LocateCache) Locate(pattern *wordvector.WordVector) ([]uint64, error) {
	if err := lc.ix.checkWidth(pattern); err != nil {
		return nil, err
	}
	key := patternKey(pattern)
	if cached, ok := lc.tree.Get(key); ok {
		return cached.([]uint64), nil
	}

	positions, err := lc.ix.LocateWithSA(pattern, lc.sa)
	if err != nil {
		return nil, err
	}

	tree, _, _ := lc.tree.Insert(key, positions)
	lc.tree = tree
	return positions, nil
}

// Len returns the number of distinct patterns currently cached.
func (lc *LocateCache) Len() int { return lc.tree.Len() }
