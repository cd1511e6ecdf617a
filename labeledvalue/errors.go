// Package labeledvalue implements the order-minimized containers at the
// heart of the checker: LabeledIntMap, a map
// Label -> int kept irredundant under subsumption, and ALabelIntMap
// (component C5), a map ALabel -> LabeledIntMap with cross-ALabel
// minimization. Both are exercised entirely through Put/Get and never
// mutated by any other means, preserving the invariants documented on each
// type.
package labeledvalue

import "errors"

// Sentinel errors for labeledvalue construction and use.
var (
	// ErrReadOnly indicates a mutator was called on a view-flavored map.
	ErrReadOnly = errors.New("labeledvalue: map is read-only")

	// ErrOverflow indicates weight arithmetic crossed a sentinel boundary
	// (see engine's Weight type); surfaced here because PutForcibly and
	// base-compaction compare raw ints that callers must have already
	// bounded.
	ErrOverflow = errors.New("labeledvalue: value arithmetic overflow")
)
