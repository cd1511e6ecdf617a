package engine

import (
	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/tngraph"
)

// Check holds the state of one propagation run. A new Check is created per
// run by New; it is never reused across runs.
type Check struct {
	cfg     config
	g       *tngraph.Graph
	stat    Status
	horizon int64
}

// New prepares a Check over g, applying opts. It does not run
// initialization; call Run to both initialize and propagate.
func New(g *tngraph.Graph, opts ...Option) *Check {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Check{cfg: cfg, g: g}
}

// initialize performs the deterministic single pass every Check runs
// before propagation: ensure Z, validate every edge, scan for negative
// self-loops, compute the horizon, and synthesize the Z<->X edges every
// node needs.
func (c *Check) initialize() error {
	z := c.g.EnsureZero()

	for _, e := range c.g.OrderedEdges() {
		if err := c.g.ValidateEdge(e); err != nil {
			return &IllDefinedError{Reason: err.Error(), EdgeID: e.ID}
		}
	}

	if witness, _, ok := c.scanNegativeSelfLoops(); ok {
		c.stat.Consistency = false
		c.stat.Finished = true
		c.stat.NegativeLoopNode = witness
		return nil
	}

	c.horizon = c.computeHorizon()

	for _, n := range c.g.Nodes() {
		if n.Name == tngraph.ZeroNodeName {
			continue
		}
		// A Z<->n pair may already carry a CSTN/CSTNU payload without an
		// STN one (payload kinds are independent); only the
		// STN kind specifically is what this step guarantees.
		if e, ok := c.g.FindEdge(z.Name, n.Name); !ok || !e.HasSTN {
			if _, err := c.g.AddSTNEdge(z.Name, n.Name, c.horizon, tngraph.Internal); err != nil {
				return err
			}
		}
		if e, ok := c.g.FindEdge(n.Name, z.Name); !ok || !e.HasSTN {
			if _, err := c.g.AddSTNEdge(n.Name, z.Name, 0, tngraph.Internal); err != nil {
				return err
			}
		}

		if !c.cfg.withNodeLabels || n.Label.IsEmpty() {
			// Legacy mode (withNodeLabels=false) or an unlabeled node: the
			// plain STN edges above already give Z->X:(horizon,⊡) and
			// X->Z:(0,⊡), which is exactly spec.md §4.5 step 5 when
			// label(X) is empty.
			continue
		}
		// spec.md §4.5 step 5: Z->X:(horizon,⊡) and X->Z:(0,label(X)). A
		// non-empty node label needs the X->Z bound gated on label(X)
		// itself (and the Z->X horizon bound recorded unconditionally as a
		// CSTN entry alongside it), not just the unconditional STN edge.
		zx, err := c.g.AddCSTNEdge(z.Name, n.Name, tngraph.Internal)
		if err != nil {
			return err
		}
		zx.CSTNValues.Put(label.Empty, int(c.horizon))

		xz, err := c.g.AddCSTNEdge(n.Name, z.Name, tngraph.Internal)
		if err != nil {
			return err
		}
		xz.CSTNValues.Put(n.Label, 0)
	}
	return nil
}

// scanNegativeSelfLoops checks every edge's labeled values for a negative
// self-loop with no unknown literal: an immediate, certain inconsistency
// that short-circuits propagation entirely.
func (c *Check) scanNegativeSelfLoops() (witness string, lbl label.Label, found bool) {
	for _, e := range c.g.Edges() {
		if e.Source != e.Target {
			continue
		}
		if e.HasSTN && e.STNWeight < 0 {
			return e.Source, label.Empty, true
		}
		if e.CSTNValues != nil {
			for _, entry := range e.CSTNValues.EntrySet() {
				if entry.Value < 0 && !entry.Label.ContainsUnknown() {
					return e.Source, entry.Label, true
				}
			}
		}
		if e.CSTNUValues != nil {
			for _, entry := range e.CSTNUValues.EntrySet() {
				if entry.Value < 0 && !entry.Label.ContainsUnknown() {
					return e.Source, entry.Label, true
				}
			}
		}
	}
	return "", label.Label{}, false
}

// computeHorizon returns the configured horizon, or else the sum of the
// absolute STN edge weights (an edge without an STN payload contributes 0),
// clamped to PosInf and never less than 1.
func (c *Check) computeHorizon() int64 {
	if c.cfg.horizon != nil {
		return *c.cfg.horizon
	}
	var sum int64
	for _, e := range c.g.Edges() {
		w := e.STNWeight
		if w < 0 {
			w = -w
		}
		if sum > int64(PosInf)-w {
			return int64(PosInf)
		}
		sum += w
	}
	if sum == 0 {
		return 1
	}
	return sum
}
