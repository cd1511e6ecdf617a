package engine

import (
	"github.com/katalvlaran/tnucheck/alabel"
	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/proposition"
	"github.com/katalvlaran/tnucheck/tngraph"
)

// combineLabels applies either strict or extended conjunction to (alpha,
// beta) depending on c.cfg.withUnknown, "LP (labeled
// propagation)": when unknowns are disallowed only a strictly consistent
// conjunction is usable, otherwise the total extended conjunction applies.
func (c *Check) combineLabels(alpha, beta label.Label) (label.Label, bool) {
	if !c.cfg.withUnknown {
		conj, err := alpha.Conjunction(beta)
		if err != nil {
			return label.Empty, false
		}
		return conj, true
	}
	return alpha.ConjunctionExtended(beta), true
}

// applyLP runs the labeled-propagation rule across the two-edge path
// A->B->C, deriving a candidate value on A->C for every pair of CSTN
// entries on the two input edges. It returns the
// number of successful Put calls, each one an independently useful
// derivation regardless of whether others in the same call succeeded.
func (c *Check) applyLP(ab, bc *tngraph.Edge) int {
	// A == C is not special-cased: a self-loop candidate is exactly how
	// negative self-loops surface during propagation.
	if ab.CSTNValues == nil || bc.CSTNValues == nil {
		return 0
	}
	if c.cfg.propagationOnlyToZ && bc.Target != tngraph.ZeroNodeName {
		// Sound restriction (spec.md §4.5 "propagationOnlyToZ"): only
		// distances to Z are needed to decide consistency, so derivations
		// not ending at Z are skipped entirely.
		return 0
	}
	count := 0
	for _, e1 := range ab.CSTNValues.EntrySet() {
		for _, e2 := range bc.CSTNValues.EntrySet() {
			sum, overflow := Add(Weight(e1.Value), Weight(e2.Value))
			if overflow {
				continue
			}
			lbl, ok := c.combineLabels(e1.Label, e2.Label)
			if !ok {
				continue
			}
			if !c.cfg.withUnknown && lbl.ContainsUnknown() {
				continue
			}
			ac, err := c.g.AddCSTNEdge(ab.Source, bc.Target, tngraph.Derived)
			if err != nil {
				continue
			}
			if ac.CSTNValues.Put(lbl, int(sum)) {
				count++
			}
		}
	}
	if count > 0 {
		c.stat.LabeledValuePropagationCalls++
	}
	return count
}

// makeAlphaPrime implements the R0 label-rewrite: remove the observed
// proposition p from alpha, then drop any further proposition whose
// observer's own label is not subsumed by the candidate (with that
// proposition removed) — the same well-definedness condition
// tngraph.ValidateEdge enforces at initialization, applied iteratively
// until the label stops shrinking.
func (c *Check) makeAlphaPrime(p rune, alpha label.Label) label.Label {
	pp, err := c.g.Alphabet().ByLetter(p)
	if err != nil {
		return alpha
	}
	result := alpha.Remove(pp)
	for {
		shrunk := false
		for _, idx := range result.GetPropositions() {
			obsProp, err := c.g.Alphabet().ByIndex(idx)
			if err != nil {
				continue
			}
			observer, ok := c.g.GetObserver(obsProp.Letter())
			if !ok {
				result = result.Remove(obsProp)
				shrunk = true
				break
			}
			if !result.Remove(obsProp).Subsumes(observer.Label) {
				result = result.Remove(obsProp)
				shrunk = true
				break
			}
		}
		if !shrunk {
			break
		}
	}
	return result
}

// applyR0 applies the observer-label rewrite rule to every non-positive
// entry on an edge leaving an observer node: an entry whose label mentions
// the observed proposition is replaced by one whose label has had that
// proposition (and any proposition it renders ill-defined) stripped out.
func (c *Check) applyR0(e *tngraph.Edge) int {
	src, err := c.g.GetNode(e.Source)
	if err != nil || !src.IsObserver() || e.CSTNValues == nil {
		return 0
	}
	p := src.ObservedProposition.Letter()
	pp := *src.ObservedProposition
	count := 0
	// reactionTime shifts the triggering threshold from 0 to -reactionTime:
	// with an instantaneous reaction (reactionTime=0) any non-positive entry
	// qualifies, exactly as before; a positive reaction time means only
	// entries already more negative than the reaction buffer are rewritten.
	threshold := -c.cfg.reactionTime
	for _, entry := range e.CSTNValues.EntrySet() {
		if int64(entry.Value) > threshold {
			continue
		}
		state := entry.Label.GetState(pp)
		if state != proposition.Straight && state != proposition.Negated {
			continue
		}
		alphaPrime := c.makeAlphaPrime(p, entry.Label)
		if alphaPrime == entry.Label {
			continue
		}
		if e.CSTNValues.Put(alphaPrime, entry.Value) {
			count++
		}
	}
	if count > 0 {
		c.stat.R0Calls++
	}
	return count
}

// applyR3 applies the third-observer label-modification rule: for every
// non-positive entry (alpha, w) on edge X->Y, and every
// observer P? of some proposition q with an edge P?->Y carrying (beta, u)
// where u <= w, derive a new entry on X->Y whose label has every mention of
// q stripped from alpha (q is now decided by the time Y is reached via P?)
// and combined with beta's remainder under conjunctionExtended, valued at
// max(u, w).
func (c *Check) applyR3(xy *tngraph.Edge) int {
	if xy.CSTNValues == nil {
		return 0
	}
	count := 0
	// See applyR0: reactionTime shifts the w<=0 triggering threshold to
	// w<=-reactionTime.
	threshold := -c.cfg.reactionTime
	for _, observer := range c.g.Nodes() {
		if !observer.IsObserver() {
			continue
		}
		py, ok := c.g.FindEdge(observer.Name, xy.Target)
		if !ok || py.CSTNValues == nil {
			continue
		}
		q := *observer.ObservedProposition
		for _, xyEntry := range xy.CSTNValues.EntrySet() {
			if int64(xyEntry.Value) > threshold {
				continue
			}
			for _, pyEntry := range py.CSTNValues.EntrySet() {
				if pyEntry.Value > xyEntry.Value {
					continue
				}
				alphaNoQ := xyEntry.Label.Remove(q)
				betaNoQ := pyEntry.Label.Remove(q)
				newLabel, ok := c.combineLabels(alphaNoQ, betaNoQ)
				if !ok {
					continue
				}
				if !c.cfg.withUnknown && newLabel.ContainsUnknown() {
					continue
				}
				newValue := xyEntry.Value
				if pyEntry.Value > newValue {
					newValue = pyEntry.Value
				}
				if xy.CSTNValues.Put(newLabel, newValue) {
					count++
				}
			}
		}
	}
	if count > 0 {
		c.stat.R3Calls++
	}
	return count
}

// applySTNRelax runs one round of Bellman-Ford-style arc relaxation for the
// plain STN fragment around the dequeued edge bc: for every edge ab ending
// at bc's source, try tightening ab.Source->bc.Target; for every edge cd
// starting at bc's target, try
// tightening bc.Source->cd.Target. Returns the derived/tightened edges so
// the scheduler can enqueue them.
func (c *Check) applySTNRelax(bc *tngraph.Edge) []*tngraph.Edge {
	if !bc.HasSTN {
		return nil
	}
	var touched []*tngraph.Edge
	for _, ab := range c.g.OrderedEdges() {
		if !ab.HasSTN || ab.Target != bc.Source {
			continue
		}
		sum, overflow := Add(Weight(ab.STNWeight), Weight(bc.STNWeight))
		if overflow {
			continue
		}
		if ac, ok := c.g.FindEdge(ab.Source, bc.Target); ok && ac.HasSTN {
			if int64(sum) < ac.STNWeight {
				ac.STNWeight = int64(sum)
				touched = append(touched, ac)
			}
		} else if ne, err := c.g.AddSTNEdge(ab.Source, bc.Target, int64(sum), tngraph.Derived); err == nil {
			touched = append(touched, ne)
		}
	}
	for _, cd := range c.g.OrderedEdges() {
		if !cd.HasSTN || cd.Source != bc.Target {
			continue
		}
		sum, overflow := Add(Weight(bc.STNWeight), Weight(cd.STNWeight))
		if overflow {
			continue
		}
		if ad, ok := c.g.FindEdge(bc.Source, cd.Target); ok && ad.HasSTN {
			if int64(sum) < ad.STNWeight {
				ad.STNWeight = int64(sum)
				touched = append(touched, ad)
			}
		} else if ne, err := c.g.AddSTNEdge(bc.Source, cd.Target, int64(sum), tngraph.Derived); err == nil {
			touched = append(touched, ne)
		}
	}
	if len(touched) > 0 {
		c.stat.PropagationCalls++
	}
	return touched
}

// applyLowerCase propagates a contingent activation's lower-case value
// along an outgoing STN edge (Morris's lower-case rule from the simplified
// STNU fragment): an edge A->C carrying LC(C):l (the contingent lower bound) and
// an edge C->D with plain weight w together license A->D at l+w. The result
// is stored as a plain STN weight on A->D, with no record of the contingent
// node it came from.
func (c *Check) applyLowerCase(ac *tngraph.Edge) []*tngraph.Edge {
	if ac.LowerCase == nil {
		return nil
	}
	var touched []*tngraph.Edge
	for _, cd := range c.g.OrderedEdges() {
		if cd.Source != ac.Target || !cd.HasSTN {
			continue
		}
		sum, overflow := Add(Weight(ac.LowerCase.Value), Weight(cd.STNWeight))
		if overflow {
			continue
		}
		if ad, ok := c.g.FindEdge(ac.Source, cd.Target); ok && ad.HasSTN {
			if int64(sum) < ad.STNWeight {
				ad.STNWeight = int64(sum)
				touched = append(touched, ad)
			}
		} else if ne, err := c.g.AddSTNEdge(ac.Source, cd.Target, int64(sum), tngraph.Derived); err == nil {
			touched = append(touched, ne)
		}
	}
	return touched
}

// applyUpperCase propagates a contingent activation's upper-case value
// backwards (Morris's upper-case rule): an edge D->A with plain weight w and
// an edge A->C carrying UC(C):u together license D->C at w+u, recorded as an
// ALabelIntMap entry keyed by the contingent node C so crossCase can later
// recognize which contingent link produced it.
func (c *Check) applyUpperCase(da *tngraph.Edge) []*tngraph.Edge {
	if !da.HasSTN {
		return nil
	}
	var touched []*tngraph.Edge
	for _, ac := range c.g.OrderedEdges() {
		if ac.Source != da.Target || ac.UpperCase == nil {
			continue
		}
		sum, overflow := Add(Weight(da.STNWeight), Weight(ac.UpperCase.Value))
		if overflow {
			continue
		}
		dc, err := c.g.AddCSTNUEdge(da.Source, ac.UpperCase.NodeName, tngraph.Derived)
		if err != nil {
			continue
		}
		alab, err := aLabelFor(c.g, ac.UpperCase.NodeName)
		if err != nil {
			continue
		}
		if dc.CSTNUUpperCase.Put(alab, label.Empty, int(sum)) {
			touched = append(touched, dc)
		}
	}
	return touched
}

// applyCrossCase combines an upper-case entry with a plain STN edge leaving
// the same contingent node (the simplified cross-case rule): D->C carrying
// UC(C):u composed with C->E carrying a plain weight licenses D->E at u+w,
// unconditionally on the case label since the contingent duration has
// already been bounded on both sides.
func (c *Check) applyCrossCase(dc *tngraph.Edge) []*tngraph.Edge {
	if dc.CSTNUUpperCase == nil || dc.CSTNUUpperCase.IsEmpty() {
		return nil
	}
	var touched []*tngraph.Edge
	for _, ce := range c.g.OrderedEdges() {
		if ce.Source != dc.Target || !ce.HasSTN {
			continue
		}
		for _, a := range dc.CSTNUUpperCase.ALabels() {
			inner := dc.CSTNUUpperCase.InnerMap(a)
			if inner == nil {
				continue
			}
			for _, entry := range inner.EntrySet() {
				sum, overflow := Add(Weight(entry.Value), Weight(ce.STNWeight))
				if overflow {
					continue
				}
				if de, ok := c.g.FindEdge(dc.Source, ce.Target); ok && de.HasSTN {
					if int64(sum) < de.STNWeight {
						de.STNWeight = int64(sum)
						touched = append(touched, de)
					}
				} else if ne, err := c.g.AddSTNEdge(dc.Source, ce.Target, int64(sum), tngraph.Derived); err == nil {
					touched = append(touched, ne)
				}
			}
		}
	}
	return touched
}

// aLabelFor resolves a single contingent node name to a one-element ALabel
// scoped to g's ALabel alphabet, registering the name if this is its first
// appearance.
func aLabelFor(g *tngraph.Graph, name string) (alabel.ALabel, error) {
	if _, err := g.ALabelAlphabet().Index(name); err != nil {
		if _, putErr := g.ALabelAlphabet().Put(name); putErr != nil {
			return alabel.ALabel{}, putErr
		}
	}
	return alabel.FromNames(g.ALabelAlphabet(), name)
}
