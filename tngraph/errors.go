package tngraph

import "errors"

// Sentinel errors for tngraph construction and mutation.
var (
	// ErrEmptyNodeName indicates a Node with an empty Name was supplied.
	ErrEmptyNodeName = errors.New("tngraph: node name is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("tngraph: node not found")

	// ErrNodeExists indicates AddNode was called for an already-present name.
	ErrNodeExists = errors.New("tngraph: node already exists")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("tngraph: edge not found")

	// ErrDuplicateEdgeKind indicates an edge of the given payload kind
	// already exists for this ordered (source, target) pair.
	ErrDuplicateEdgeKind = errors.New("tngraph: edge of this payload kind already exists for this pair")

	// ErrInconsistentEndpointLabels indicates an edge was rejected because
	// the conjunction of its source and target node labels is inconsistent.
	ErrInconsistentEndpointLabels = errors.New("tngraph: source and target node labels are inconsistent")

	// ErrLabelNotSubsumedByEndpoints indicates a labeled value's label does
	// not entail label(source) ∧ label(target).
	ErrLabelNotSubsumedByEndpoints = errors.New("tngraph: labeled value's label is not subsumed by its endpoints")

	// ErrUnknownObserver indicates a labeled value mentions a proposition
	// with no observer node in the graph.
	ErrUnknownObserver = errors.New("tngraph: labeled value mentions a proposition with no observer node")

	// ErrIllFormedLabel indicates a labeled value's label does not subsume
	// its mentioned observers' own labels (with the observed proposition
	// removed), violating well-definedness.
	ErrIllFormedLabel = errors.New("tngraph: labeled value is not well-defined with respect to its observers")
)
