// Package tngraph implements the directed multigraph a temporal-network
// check runs over: Node, Edge, and Graph, plus the two
// caches (observer-to-Z edge list, observers set). The propagation engine
// looks observers up through the observers set when R0 rewrites a label;
// R3 scans the node list.
//
// A Graph is built once by a reader (see the graphml package) or by a test
// fixture, handed to the engine package for one check, and discarded or
// reused for the next. It is not safe for concurrent use by multiple
// checks; within one check's lifetime it uses a two-mutex (node/edge)
// RWMutex split. The observer-cache accessors take the node mutex
// exclusively, since a lookup may rebuild the cache.
package tngraph

// ZeroNodeName is the name every Graph's distinguished zero-node must carry.
const ZeroNodeName = "Z"
