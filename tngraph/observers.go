package tngraph

// rebuildObserverCacheLocked recomputes the observer set and the
// observer-to-Z edge list. Callers must hold g.muNode for writing; it also
// briefly takes g.muEdge for reading.
func (g *Graph) rebuildObserverCacheLocked() {
	g.observerSet = make(map[string]*Node)
	for _, n := range g.nodes {
		if n.IsObserver() {
			g.observerSet[string(n.ObservedProposition.Letter())] = n
		}
	}

	g.muEdge.RLock()
	g.observerToZEdges = make(map[string]*Edge, len(g.observerSet))
	for _, observer := range g.observerSet {
		if byTarget, ok := g.adjacency[observer.Name]; ok {
			if kinds, ok := byTarget[ZeroNodeName]; ok {
				for _, id := range kinds {
					if e, ok := g.edges[id]; ok {
						g.observerToZEdges[observer.Name] = e
						break
					}
				}
			}
		}
	}
	g.muEdge.RUnlock()

	g.observersDirty = false
}

// GetObserver returns the node observing the given proposition letter, and
// ok=false if no such observer exists.
func (g *Graph) GetObserver(letter rune) (*Node, bool) {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	if g.observersDirty {
		g.rebuildObserverCacheLocked()
	}
	n, ok := g.observerSet[string(letter)]
	return n, ok
}

// GetObserverToZEdge returns the cached edge from an observer node to Z, if
// one exists. The engine's rules do not call it.
func (g *Graph) GetObserverToZEdge(observerName string) (*Edge, bool) {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	if g.observersDirty {
		g.rebuildObserverCacheLocked()
	}
	e, ok := g.observerToZEdges[observerName]
	return e, ok
}

// GetChildrenOf returns the set of propositions observed by nodes whose
// label is subsumed by n's label — the scenarios n participates in.
func (g *Graph) GetChildrenOf(n *Node) []rune {
	g.muNode.Lock()
	if g.observersDirty {
		g.rebuildObserverCacheLocked()
	}
	snapshot := make(map[string]*Node, len(g.observerSet))
	for k, v := range g.observerSet {
		snapshot[k] = v
	}
	g.muNode.Unlock()

	out := make([]rune, 0)
	for letter, observer := range snapshot {
		if n.Label.Subsumes(observer.Label) {
			out = append(out, []rune(letter)[0])
		}
	}
	return out
}
