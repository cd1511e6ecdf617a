package tngraph

import (
	"sync"

	"github.com/katalvlaran/tnucheck/alabel"
	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/labeledvalue"
	"github.com/katalvlaran/tnucheck/proposition"
)

// EdgeType classifies an edge's role.
type EdgeType uint8

const (
	// Requirement is an ordinary constraint edge supplied by the reader.
	Requirement EdgeType = iota
	// Contingent marks one half of an activation/contingent timepoint pair.
	Contingent
	// Derived marks an edge synthesized by the engine during propagation.
	Derived
	// Internal marks a bookkeeping edge (e.g. the Z-to-every-node edges
	// added during initialization). A "cleaned" run removes edges by empty
	// payload, not by type, so Internal edges with values are kept.
	Internal
)

// String renders the EdgeType for diagnostics and GraphML round-tripping.
func (t EdgeType) String() string {
	switch t {
	case Requirement:
		return "requirement"
	case Contingent:
		return "contingent"
	case Derived:
		return "derived"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// PayloadKind distinguishes the four value representations an edge can
// carry simultaneously; at most one edge per ordered (source, target) pair
// may carry a given kind.
type PayloadKind uint8

const (
	KindSTN PayloadKind = iota
	KindSTNU
	KindCSTN
	KindCSTNU
)

// CaseValue is a single labeled lower-case or upper-case STNU value,
// "LC(node):int" or "UC(node):int" in the GraphML grammar.
type CaseValue struct {
	NodeName string
	Value    int64
}

// LowerCaseValue is the CSTNU fragment's singular labeled lower-case value:
// unlike the upper-case side (an ALabelIntMap, since several contingent
// links can contribute upper-case values to the same edge), a node has at
// most one contingent lower bound to report.
type LowerCaseValue struct {
	NodeName string
	Label    label.Label
	Value    int
}

// Node is a timepoint in the network: a name, an optional observed
// proposition (non-nil only for observation nodes), a node-label capturing
// the scenario under which the node exists, and x/y coordinates the engine
// ignores but round-trips for visualization.
type Node struct {
	Name                string
	ObservedProposition *proposition.Proposition
	Label               label.Label
	X, Y                float64
}

// IsObserver reports whether this node observes a proposition.
func (n *Node) IsObserver() bool { return n.ObservedProposition != nil }

// Edge connects Source to Target and carries zero or more payloads
// simultaneously. A nil payload field means that payload kind is absent
// from this edge.
type Edge struct {
	ID     string
	Source string
	Target string
	Type   EdgeType

	// STNWeight is the plain integer weight of the STN fragment. HasSTN
	// distinguishes "weight is 0" from "no STN payload".
	STNWeight int64
	HasSTN    bool

	// STNU case values: both may be present on the same edge.
	LowerCase *CaseValue
	UpperCase *CaseValue

	// CSTNValues is the CSTN fragment's labeled ordinary values.
	CSTNValues *labeledvalue.LabeledIntMap

	// CSTNU fragment: ordinary conditional values, upper-case values keyed
	// by the set of contingent links involved, and the singular lower-case
	// value.
	CSTNUValues    *labeledvalue.LabeledIntMap
	CSTNUUpperCase *labeledvalue.ALabelIntMap
	CSTNULowerCase *LowerCaseValue
}

// HasPayload reports whether e carries a payload of the given kind.
func (e *Edge) HasPayload(kind PayloadKind) bool {
	switch kind {
	case KindSTN:
		return e.HasSTN
	case KindSTNU:
		return e.HasSTN && (e.LowerCase != nil || e.UpperCase != nil)
	case KindCSTN:
		return e.CSTNValues != nil && !e.CSTNValues.IsEmpty()
	case KindCSTNU:
		return (e.CSTNUValues != nil && !e.CSTNUValues.IsEmpty()) ||
			(e.CSTNUUpperCase != nil && !e.CSTNUUpperCase.IsEmpty()) ||
			e.CSTNULowerCase != nil
	default:
		return false
	}
}

// IsEmptyPayload reports whether e carries no payload of any kind — the
// condition under which a "cleaned" run, or the engine's own bookkeeping,
// removes the edge entirely.
func (e *Edge) IsEmptyPayload() bool {
	return !e.HasSTN &&
		e.LowerCase == nil && e.UpperCase == nil &&
		(e.CSTNValues == nil || e.CSTNValues.IsEmpty()) &&
		(e.CSTNUValues == nil || e.CSTNUValues.IsEmpty()) &&
		(e.CSTNUUpperCase == nil || e.CSTNUUpperCase.IsEmpty()) &&
		e.CSTNULowerCase == nil
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithAlphabet scopes the graph to an existing proposition alphabet instead
// of allocating a fresh one (used when a reader pre-registers observed
// propositions before node creation).
func WithAlphabet(a *proposition.Alphabet) GraphOption {
	return func(g *Graph) { g.alphabet = a }
}

// WithALabelAlphabet scopes the graph to an existing ALabel alphabet.
func WithALabelAlphabet(a *alabel.Alphabet) GraphOption {
	return func(g *Graph) { g.aAlphabet = a }
}

// Graph is a directed multigraph of Node/Edge.
// muNode guards nodes and the observer caches; muEdge guards edges and
// adjacency, a two-lock split so that observer-cache invalidation (a
// node-adjacent concern) never blocks a pure edge scan.
type Graph struct {
	muNode sync.RWMutex
	muEdge sync.RWMutex

	alphabet  *proposition.Alphabet
	aAlphabet *alabel.Alphabet

	nodes map[string]*Node
	edges map[string]*Edge

	// adjacency[source][target][payloadKind] = edge ID. A given ordered
	// pair can hold at most one edge ID per PayloadKind.
	adjacency map[string]map[string]map[PayloadKind]string

	nextEdgeID uint64

	// Caches invalidated on structural change (node/edge add or remove);
	// see observers.go.
	observersDirty   bool
	observerSet      map[string]*Node // proposition letter -> observer node
	observerToZEdges map[string]*Edge // observer name -> its edge to Z, if any
}

// NewGraph returns an empty Graph with a fresh proposition alphabet and
// ALabel alphabet, unless overridden via options. The zero-node Z is not
// created here; callers that need it unconditionally should call
// EnsureZero (the engine does this during initialization).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		alphabet:  proposition.NewAlphabet(),
		aAlphabet: alabel.NewAlphabet(),
		nodes:     make(map[string]*Node),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]map[PayloadKind]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.observersDirty = true
	return g
}

// Alphabet returns the proposition alphabet this graph's labels are scoped
// to.
func (g *Graph) Alphabet() *proposition.Alphabet { return g.alphabet }

// ALabelAlphabet returns the node-name alphabet this graph's ALabels are
// scoped to.
func (g *Graph) ALabelAlphabet() *alabel.Alphabet { return g.aAlphabet }
