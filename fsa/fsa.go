// Package fsa implements C8: a deterministic finite automaton for exact
// single-pattern matching, built as a row-transition table over the
// pattern's own alphabet. Used internally as a non-succinct baseline
// matcher (spec §4.8 — "FM-index is preferred for locate"); grounded in
// the teacher's table-driven automaton style seen across Thesis/trie
// (transition tables keyed by column index) and spec §9's explicit note
// on the construction order: the transition target must be read before
// the in-place transition write overwrites it; the row it names is
// copied afterwards.
package fsa

import "succinct/errutil"

// Fsa is a deterministic automaton matching one fixed pattern exactly.
type Fsa struct {
	patternLen int
	cols       map[uint64]int   // pattern symbol -> column index, first-seen order
	table      [][]int          // table[i][col] = next state from state i on symbol at col
}

// Build constructs the automaton for pattern (a sequence of symbols).
// Time O(|pattern| * |alphabet(pattern)|) (spec §4.8).
func Build(pattern []uint64) *Fsa {
	m := len(pattern)
	cols := make(map[uint64]int)
	for _, s := range pattern {
		if _, ok := cols[s]; !ok {
			cols[s] = len(cols)
		}
	}

	f := &Fsa{patternLen: m, cols: cols}
	f.table = make([][]int, m+1)
	for i := range f.table {
		f.table[i] = make([]int, len(cols))
	}

	for i := 1; i <= m; i++ {
		col, ok := cols[pattern[i-1]]
		errutil.BugOn(!ok, "fsa: symbol %d at pattern position %d missing its column", pattern[i-1], i-1)

		// Row i starts life as a copy of row oldTarget, the state that
		// table[i-1][col] pointed to BEFORE this step's own in-place
		// update overwrites it with i — the fallback-row lookup spec §4.8
		// and §9 describe, not a copy of row i-1 itself.
		oldTarget := f.table[i-1][col]
		f.table[i-1][col] = i
		copy(f.table[i], f.table[oldTarget])
	}

	return f
}

// Cursor tracks the automaton's current state while scanning text.
type Cursor struct {
	f     *Fsa
	state int
}

// NewCursor returns a cursor positioned at the start state.
func (f *Fsa) NewCursor() *Cursor { return &Cursor{f: f} }

// Reset returns the cursor to the start state.
func (c *Cursor) Reset() { c.state = 0 }

// Step consumes one text symbol, returning true when the automaton
// reaches its accept state (a full pattern match ending at this
// symbol). An unrecognised symbol resets the state to 0 (spec §4.8).
func (c *Cursor) Step(symbol uint64) bool {
	col, ok := c.f.cols[symbol]
	if !ok {
		c.state = 0
		return false
	}
	c.state = c.f.table[c.state][col]
	return c.state == c.f.patternLen
}

// Scan runs the automaton over an entire text, returning every match
// start position (spec §4.8 — "on each accept the occurrence start is
// i - |P| + 1").
func Scan(pattern, text []uint64) []uint64 {
	f := Build(pattern)
	c := f.NewCursor()
	var matches []uint64
	for i, sym := range text {
		if c.Step(sym) {
			matches = append(matches, uint64(i-f.patternLen+1))
		}
	}
	return matches
}
