// Package errutil collects the sentinel error kinds shared by every layer
// of the succinct text-indexing stack, plus the Bug/BugOn helpers used to
// assert caller-guaranteed preconditions that the low-level layers never
// return errors for (Thesis/zfasttrie/errutil.go's Bug/BugOn, generalized
// to the whole module).
package errutil

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, matched with errors.Is. Every constructor and
// query in this module that can fail returns one of these (wrapped with
// context via fmt.Errorf("...: %w", ...)), never a bare panic, except
// where the failing call is itself an assertion of a caller-guaranteed
// precondition (see BugOn).
var (
	// OutOfRange: an index or range is outside a container's domain.
	OutOfRange = errors.New("out of range")

	// LengthMismatch: two operands of a binary operation (AND, equality
	// helpers) must share length.
	LengthMismatch = errors.New("length mismatch")

	// InvalidWidth: an element or word width is zero or exceeds 64.
	InvalidWidth = errors.New("invalid width")

	// WidthMismatch: a text and pattern WordVector use different element
	// widths.
	WidthMismatch = errors.New("width mismatch")

	// MalformedInput: the SA/BWT sentinel-$ contract is violated.
	MalformedInput = errors.New("malformed input")
)

// Wrap attaches context to one of the sentinel kinds above so callers can
// still match it with errors.Is(err, errutil.OutOfRange).
func Wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

const debug = false

// Bug panics unconditionally; call it where a violated invariant means
// the module itself has a bug, not that the caller passed bad input.
func Bug(format string, args ...any) {
	panic(fmt.Sprintf("BUG: "+format, args...))
}

// BugOn panics with the given message when cond is true. Used by the bit
// primitives (§4.1) and other hot paths whose preconditions are
// guaranteed by their callers and therefore never surfaced as errors.
func BugOn(cond bool, format string, args ...any) {
	if cond {
		Bug(format, args...)
	}
}

// Debug reports whether verbose invariant checks are compiled in. Mirrors
// the teacher's `const debug = false` switch in zfasttrie/errutil.go;
// flipped locally (not exported as a flag) when chasing a failing
// property test.
func Debug() bool {
	return debug
}
