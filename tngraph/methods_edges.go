package tngraph

import (
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/katalvlaran/tnucheck/labeledvalue"
)

// edgeFor returns the existing edge for (source, target) or creates one of
// the given type, enforcing the one-edge-per-ordered-pair-per-kind
// invariant lazily at each payload setter. Callers must hold
// g.muEdge for writing.
func (g *Graph) edgeFor(source, target string, edgeType EdgeType) *Edge {
	if byTarget, ok := g.adjacency[source]; ok {
		if kinds, ok := byTarget[target]; ok {
			for _, id := range kinds {
				if e, ok := g.edges[id]; ok {
					return e
				}
			}
		}
	}
	id := g.nextID()
	e := &Edge{ID: id, Source: source, Target: target, Type: edgeType}
	g.edges[id] = e
	g.ensureAdjacency(source, target)
	return e
}

func (g *Graph) nextID() string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 1+20)
	buf = append(buf, 'e')
	buf = strconv.AppendUint(buf, n, 10)
	return string(buf)
}

func (g *Graph) ensureAdjacency(source, target string) {
	if g.adjacency[source] == nil {
		g.adjacency[source] = make(map[string]map[PayloadKind]string)
	}
	if g.adjacency[source][target] == nil {
		g.adjacency[source][target] = make(map[PayloadKind]string)
	}
}

// AddSTNEdge sets the STN payload of the edge (source, target), creating
// the edge if absent. Fails with ErrDuplicateEdgeKind if an STN payload is
// already present for this ordered pair.
func (g *Graph) AddSTNEdge(source, target string, weight int64, edgeType EdgeType) (*Edge, error) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	e := g.edgeFor(source, target, edgeType)
	if e.HasSTN {
		return nil, ErrDuplicateEdgeKind
	}
	e.HasSTN = true
	e.STNWeight = weight
	g.adjacency[source][target][KindSTN] = e.ID
	g.observersDirty = true
	return e, nil
}

// SetLowerCase attaches an STNU lower-case value "LC(nodeName):value" to e.
func (g *Graph) SetLowerCase(e *Edge, nodeName string, value int64) error {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	if e.LowerCase != nil {
		return ErrDuplicateEdgeKind
	}
	e.LowerCase = &CaseValue{NodeName: nodeName, Value: value}
	g.adjacency[e.Source][e.Target][KindSTNU] = e.ID
	return nil
}

// SetUpperCase attaches an STNU upper-case value "UC(nodeName):value" to e.
func (g *Graph) SetUpperCase(e *Edge, nodeName string, value int64) error {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	if e.UpperCase != nil {
		return ErrDuplicateEdgeKind
	}
	e.UpperCase = &CaseValue{NodeName: nodeName, Value: value}
	g.adjacency[e.Source][e.Target][KindSTNU] = e.ID
	return nil
}

// AddCSTNEdge ensures the edge (source, target) carries a CSTN payload,
// creating an empty LabeledIntMap if one is not already present; repeated
// calls return the same map so callers can Put successive labeled values.
func (g *Graph) AddCSTNEdge(source, target string, edgeType EdgeType) (*Edge, error) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	e := g.edgeFor(source, target, edgeType)
	if e.CSTNValues == nil {
		e.CSTNValues = labeledvalue.New(g.alphabet)
		g.adjacency[source][target][KindCSTN] = e.ID
	}
	return e, nil
}

// AddCSTNUEdge ensures the edge (source, target) carries a CSTNU payload
// (ordinary LabeledIntMap plus ALabelIntMap for upper-case values),
// creating both if absent.
func (g *Graph) AddCSTNUEdge(source, target string, edgeType EdgeType) (*Edge, error) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	e := g.edgeFor(source, target, edgeType)
	if e.CSTNUValues == nil {
		e.CSTNUValues = labeledvalue.New(g.alphabet)
		e.CSTNUUpperCase = labeledvalue.NewALabelIntMap(g.alphabet, g.aAlphabet, labeledvalue.Management1)
		g.adjacency[source][target][KindCSTNU] = e.ID
	}
	return e, nil
}

// SetCSTNULowerCase attaches the singular lower-case value to e.
func (g *Graph) SetCSTNULowerCase(e *Edge, v LowerCaseValue) error {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	if e.CSTNULowerCase != nil {
		return ErrDuplicateEdgeKind
	}
	e.CSTNULowerCase = &v
	return nil
}

// GetEdge looks up an edge by ID.
func (g *Graph) GetEdge(id string) (*Edge, error) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return nil, ErrEdgeNotFound
	}
	return e, nil
}

// FindEdge looks up the edge for an ordered (source, target) pair,
// regardless of which payload kinds it carries.
func (g *Graph) FindEdge(source, target string) (*Edge, bool) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	byTarget, ok := g.adjacency[source]
	if !ok {
		return nil, false
	}
	kinds, ok := byTarget[target]
	if !ok {
		return nil, false
	}
	for _, id := range kinds {
		if e, ok := g.edges[id]; ok {
			return e, true
		}
	}
	return nil, false
}

// Edges returns every edge, unordered. Callers needing the deterministic
// ordering the engine's scheduler requires should use OrderedEdges.
func (g *Graph) Edges() []*Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	return out
}

// OrderedEdges returns every edge sorted by (Source, Target) lexicographic,
// then by ID — the stable order the worklist scheduler requires.
func (g *Graph) OrderedEdges() []*Edge {
	out := g.Edges()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	return len(g.edges)
}

// RemoveEdge deletes an edge entirely, regardless of which payloads it
// carries. The engine does not call it; a "cleaned" run removes edges
// through PruneEmptyEdges.
func (g *Graph) RemoveEdge(id string) error {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	e, ok := g.edges[id]
	if !ok {
		return ErrEdgeNotFound
	}
	g.removeEdgeLocked(id, e)
	return nil
}

// removeEdgeLocked assumes g.muEdge is already held for writing.
func (g *Graph) removeEdgeLocked(id string, e *Edge) {
	delete(g.edges, id)
	if byTarget, ok := g.adjacency[e.Source]; ok {
		if kinds, ok := byTarget[e.Target]; ok {
			for kind, kid := range kinds {
				if kid == id {
					delete(kinds, kind)
				}
			}
			if len(kinds) == 0 {
				delete(byTarget, e.Target)
			}
		}
		if len(byTarget) == 0 {
			delete(g.adjacency, e.Source)
		}
	}
	g.observersDirty = true
}

// PruneEmptyEdges removes every edge whose payload is now entirely empty.
func (g *Graph) PruneEmptyEdges() {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	for id, e := range g.edges {
		if e.IsEmptyPayload() {
			g.removeEdgeLocked(id, e)
		}
	}
}
