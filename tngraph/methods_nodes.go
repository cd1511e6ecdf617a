package tngraph

// AddNode inserts a new node. Returns ErrEmptyNodeName for an empty name,
// ErrNodeExists if the name is already present. Adding a node marks the
// observer caches dirty since it may itself be an observer.
func (g *Graph) AddNode(n *Node) error {
	if n.Name == "" {
		return ErrEmptyNodeName
	}
	g.muNode.Lock()
	defer g.muNode.Unlock()
	if _, exists := g.nodes[n.Name]; exists {
		return ErrNodeExists
	}
	g.nodes[n.Name] = n
	g.observersDirty = true
	return nil
}

// EnsureZero guarantees the zero-node Z exists, creating it at (0,0) with
// the empty label if absent. Returns the Z node either way.
func (g *Graph) EnsureZero() *Node {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	if z, ok := g.nodes[ZeroNodeName]; ok {
		return z
	}
	z := &Node{Name: ZeroNodeName}
	g.nodes[ZeroNodeName] = z
	g.observersDirty = true
	return z
}

// GetNode looks up a node by name.
func (g *Graph) GetNode(name string) (*Node, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	n, ok := g.nodes[name]
	if !ok {
		return nil, ErrNodeNotFound
	}
	return n, nil
}

// HasNode reports whether a node with the given name exists.
func (g *Graph) HasNode(name string) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	_, ok := g.nodes[name]
	return ok
}

// Nodes returns every node, unordered. Callers needing determinism should
// sort by Name.
func (g *Graph) Nodes() []*Node {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	return len(g.nodes)
}

// RemoveNode deletes a node and every edge touching it. The engine never
// calls this on its own; it exists for test fixtures and reader-side
// corrections before a check begins.
func (g *Graph) RemoveNode(name string) error {
	g.muNode.Lock()
	if _, ok := g.nodes[name]; !ok {
		g.muNode.Unlock()
		return ErrNodeNotFound
	}
	delete(g.nodes, name)
	g.observersDirty = true
	g.muNode.Unlock()

	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	for id, e := range g.edges {
		if e.Source == name || e.Target == name {
			g.removeEdgeLocked(id, e)
		}
	}
	return nil
}
