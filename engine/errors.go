// Package engine implements the propagation engine:
// graph initialization, the CSTN rule set (LP, R0, R3), an STN Bellman-Ford
// consistency pass, a simplified STNU lower-/upper-/cross-case rule pass,
// and the deterministic worklist scheduler that drives them to a fixed
// point or a reported inconsistency.
package engine

import "errors"

// Sentinel errors for engine configuration and execution.
var (
	// ErrNoZero reports that the zero-node Z does not exist. No function in
	// this package returns it: initialization creates Z when it is missing.
	ErrNoZero = errors.New("engine: zero-node Z does not exist")

	// ErrOverflow indicates weight arithmetic produced a value outside the
	// representable range.
	ErrOverflow = errors.New("engine: weight arithmetic overflow")
)

// IllDefinedError is a fatal initialization failure: the input graph
// violates a well-definedness invariant. Reason is human-readable; EdgeID/NodeName identify the
// offending entity when known.
type IllDefinedError struct {
	Reason   string
	EdgeID   string
	NodeName string
}

func (e *IllDefinedError) Error() string {
	switch {
	case e.EdgeID != "":
		return "engine: ill-defined graph (edge " + e.EdgeID + "): " + e.Reason
	case e.NodeName != "":
		return "engine: ill-defined graph (node " + e.NodeName + "): " + e.Reason
	default:
		return "engine: ill-defined graph: " + e.Reason
	}
}
