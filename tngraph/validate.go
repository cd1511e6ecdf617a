package tngraph

import "github.com/katalvlaran/tnucheck/label"

// ValidateEdge checks e against the well-definedness invariants a checked
// graph must satisfy: the conjunction of its endpoints' labels must be
// consistent, every labeled value's label must entail that conjunction, and
// every proposition a labeled value's label mentions must refer to an
// existing observer whose own label is subsumed by the value's label with
// that proposition removed. The engine runs this over every edge during
// initialization.
func (g *Graph) ValidateEdge(e *Edge) error {
	source, err := g.GetNode(e.Source)
	if err != nil {
		return err
	}
	target, err := g.GetNode(e.Target)
	if err != nil {
		return err
	}
	if !source.Label.IsConsistentWith(target.Label) {
		return ErrInconsistentEndpointLabels
	}
	endpoints, err := source.Label.Conjunction(target.Label)
	if err != nil {
		// Unreachable given the IsConsistentWith check above, but a strict
		// conjunction failure is still reported rather than swallowed.
		return ErrInconsistentEndpointLabels
	}

	for _, l := range e.labeledValueLabels() {
		if err := g.validateLabel(l, endpoints); err != nil {
			return err
		}
	}
	return nil
}

// labeledValueLabels gathers every Label appearing on any payload of e.
func (e *Edge) labeledValueLabels() []label.Label {
	var out []label.Label
	if e.CSTNValues != nil {
		for _, entry := range e.CSTNValues.EntrySet() {
			out = append(out, entry.Label)
		}
	}
	if e.CSTNUValues != nil {
		for _, entry := range e.CSTNUValues.EntrySet() {
			out = append(out, entry.Label)
		}
	}
	if e.CSTNUUpperCase != nil {
		for _, a := range e.CSTNUUpperCase.ALabels() {
			inner := e.CSTNUUpperCase.InnerMap(a)
			if inner == nil {
				continue
			}
			for _, entry := range inner.EntrySet() {
				out = append(out, entry.Label)
			}
		}
	}
	if e.CSTNULowerCase != nil {
		out = append(out, e.CSTNULowerCase.Label)
	}
	return out
}

func (g *Graph) validateLabel(l label.Label, endpoints label.Label) error {
	if !l.Subsumes(endpoints) {
		return ErrLabelNotSubsumedByEndpoints
	}
	for _, idx := range l.GetPropositions() {
		p, err := g.alphabet.ByIndex(idx)
		if err != nil {
			return ErrUnknownObserver
		}
		observer, ok := g.GetObserver(p.Letter())
		if !ok {
			return ErrUnknownObserver
		}
		if !l.Remove(p).Subsumes(observer.Label) {
			return ErrIllFormedLabel
		}
	}
	return nil
}
