// Package label implements the labeled-value algebra's core currency: an
// immutable conjunction of literals over a proposition.Alphabet, packed into
// two 32-bit words as mandated by the network's wire format. See doc.go for
// the encoding and the invariants every operation here preserves.
package label

import "errors"

// Sentinel errors for label construction, parsing, and algebra.
var (
	// ErrInconsistentLabels indicates a strict conjunction was attempted
	// between two labels that disagree on some proposition's straight/negated
	// assignment.
	ErrInconsistentLabels = errors.New("label: inconsistent conjunction")

	// ErrParse indicates the input does not match the label grammar
	// ( ((¬|¿|ε)[a-zA-F])+ | ⊡ ).
	ErrParse = errors.New("label: parse error")

	// ErrConflictingLiteral indicates the same proposition appears twice in a
	// parsed token with incompatible states.
	ErrConflictingLiteral = errors.New("label: conflicting literal for same proposition")
)
