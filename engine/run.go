package engine

import (
	"time"

	"github.com/katalvlaran/tnucheck/labeledvalue"
	"github.com/katalvlaran/tnucheck/tngraph"
)

// worklist is the FIFO queue of edge IDs pending re-examination. It
// deduplicates: an edge already queued is not
// queued a second time, preventing the list from growing unboundedly when
// several rules touch the same edge within one cycle.
type worklist struct {
	queue  []string
	queued map[string]bool
}

func newWorklist(edges []*tngraph.Edge) *worklist {
	w := &worklist{queued: make(map[string]bool, len(edges))}
	for _, e := range edges {
		w.push(e.ID)
	}
	return w
}

func (w *worklist) push(id string) {
	if w.queued[id] {
		return
	}
	w.queued[id] = true
	w.queue = append(w.queue, id)
}

func (w *worklist) pop() (string, bool) {
	if len(w.queue) == 0 {
		return "", false
	}
	id := w.queue[0]
	w.queue = w.queue[1:]
	delete(w.queued, id)
	return id, true
}

// maxCyclesMultiplier scales the edge count in cycleLimit, the guard on
// total worklist dequeues: the limit is the largest of
// edges*maxCyclesMultiplier, the horizon, and 1000. It does not depend on
// the number of propositions.
const maxCyclesMultiplier = 64

// Run initializes g and drives the
// worklist scheduler to a fixed point, a reported inconsistency, or
// timeout. It returns the checked graph (same instance as g, mutated in
// place) and the run's Status. Run must be called at most once per Check.
func (c *Check) Run() (*tngraph.Graph, Status, error) {
	start := time.Now()
	if err := c.initialize(); err != nil {
		return c.g, c.stat, err
	}
	if c.stat.Finished {
		// initialize already found a negative self-loop.
		c.stat.Elapsed = time.Since(start)
		return c.finish()
	}

	deadline, hasDeadline := c.deadline(start)
	queue := newWorklist(c.g.OrderedEdges())
	cycleLimit := c.cycleLimit()

	for {
		edgeID, ok := queue.pop()
		if !ok {
			c.stat.Consistency = true
			c.stat.Finished = true
			break
		}
		if hasDeadline && time.Now().After(deadline) {
			c.stat.Timeout = true
			c.stat.Finished = false
			break
		}
		c.stat.Cycles++
		if c.stat.Cycles > cycleLimit {
			c.stat.Timeout = true
			c.stat.Finished = false
			break
		}

		e, err := c.g.GetEdge(edgeID)
		if err != nil {
			continue
		}

		touched := c.runOneCycle(e)

		if witness, found := c.detectNegativeSelfLoop(); found {
			c.stat.Consistency = false
			c.stat.Finished = true
			c.stat.NegativeLoopNode = witness
			break
		}

		for _, t := range touched {
			queue.push(t.ID)
		}
	}

	c.stat.Elapsed = time.Since(start)
	return c.finish()
}

// runOneCycle applies every applicable rule at the dequeued edge's
// endpoints and returns every edge whose payload changed as a result, so
// the scheduler can re-enqueue them.
func (c *Check) runOneCycle(e *tngraph.Edge) []*tngraph.Edge {
	var touched []*tngraph.Edge

	if n := c.applyR0(e); n > 0 {
		touched = append(touched, e)
	}
	if n := c.applyR3(e); n > 0 {
		touched = append(touched, e)
	}

	for _, bc := range c.g.OrderedEdges() {
		if bc.Source != e.Target {
			continue
		}
		if n := c.applyLP(e, bc); n > 0 {
			if ac, ok := c.g.FindEdge(e.Source, bc.Target); ok {
				touched = append(touched, ac)
			}
		}
	}
	for _, ab := range c.g.OrderedEdges() {
		if ab.Target != e.Source {
			continue
		}
		if n := c.applyLP(ab, e); n > 0 {
			if ac, ok := c.g.FindEdge(ab.Source, e.Target); ok {
				touched = append(touched, ac)
			}
		}
	}

	touched = append(touched, c.applySTNRelax(e)...)
	touched = append(touched, c.applyLowerCase(e)...)
	touched = append(touched, c.applyUpperCase(e)...)
	touched = append(touched, c.applyCrossCase(e)...)

	return touched
}

// detectNegativeSelfLoop re-scans for a negative self-loop after a cycle;
// propagation can only ever derive new self-loops at the edge endpoints
// touched this cycle, but a full scan keeps the termination condition
// simple and matches the unconditional definition of consistency used
// throughout: a checked graph is consistent iff no payload has a negative
// self-loop.
func (c *Check) detectNegativeSelfLoop() (string, bool) {
	witness, _, found := c.scanNegativeSelfLoops()
	return witness, found
}

// finish applies the "cleaned" option if requested, then returns the
// graph and status.
func (c *Check) finish() (*tngraph.Graph, Status, error) {
	if c.cfg.cleaned {
		c.pruneUnknownEntries()
		c.g.PruneEmptyEdges()
	}
	return c.g, c.stat, nil
}

// pruneUnknownEntries removes every CSTN/CSTNU labeled-value entry whose
// label contains an unknown literal, as the "cleaned" option requires.
func (c *Check) pruneUnknownEntries() {
	for _, e := range c.g.Edges() {
		pruneUnknown(e.CSTNValues)
		pruneUnknown(e.CSTNUValues)
	}
}

func pruneUnknown(m *labeledvalue.LabeledIntMap) {
	if m == nil {
		return
	}
	for _, entry := range m.EntrySet() {
		if entry.Label.ContainsUnknown() {
			m.Remove(entry.Label)
		}
	}
}

// deadline computes the absolute wall-clock cutoff from the configured
// timeout in seconds, if any.
func (c *Check) deadline(start time.Time) (time.Time, bool) {
	if c.cfg.timeOutSeconds <= 0 {
		return time.Time{}, false
	}
	return start.Add(time.Duration(c.cfg.timeOutSeconds) * time.Second), true
}

// cycleLimit bounds total worklist dequeues as a generous function of the
// live edge count and horizon, guarding against
// a rule-interaction bug turning into an infinite loop even when no
// timeout is configured.
func (c *Check) cycleLimit() int {
	edges := c.g.EdgeCount()
	if edges == 0 {
		edges = 1
	}
	limit := edges * maxCyclesMultiplier
	if c.horizon > 0 && int64(limit) < c.horizon {
		limit = int(c.horizon)
	}
	if limit < 1000 {
		limit = 1000
	}
	return limit
}
