// Package dag provides the node registry and traversal engine underneath
// ontologies: a directed acyclic graph of uniquely named nodes with a cached
// descendant count on every node.
//
// # Overview
//
// Edges point from the more general node to the more specific one
// (parent → child). A node is identified by its name alone; the graph holds
// at most one node per name, and nodes are never shared between graphs.
// Copies made with [DAG.Clone] or [DAG.Subgraph] consist of fresh nodes.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]. Edges require both endpoints to exist:
//
//	g := dag.New()
//	g.AddNode("Animal")
//	g.AddNode("Mammal")
//	g.AddEdge("Animal", "Mammal")
//
// Self-edges and duplicate edges are silent no-ops. An edge that would close a
// cycle is rejected with [ErrCycle], so the graph is acyclic at all times.
//
// # Traversal
//
// [DAG.Descendants] and [DAG.Ancestors] return the transitive closures of the
// child and parent relations, excluding the node itself. [DAG.TopologicalOrder]
// lists children before their parents (the reverse of the conventional
// sources-first order). All traversals use explicit work lists, so deep
// hierarchies do not grow the call stack.
//
// # Descendant Counts
//
// Every [Node] caches the size of its descendant set. After each edge
// mutation at a parent, [DAG.Recount] recomputes the counts of the parent and
// all of its ancestors from their distinct reachable sets. Bulk paths insert
// with [DAG.AddEdges], which recounts once at the end. [DAG.Validate] checks
// the cache against a fresh traversal.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph. Independent
// copies obtained with Clone can be used freely from other goroutines.
//
// # Related Packages
//
// The [transform] subpackage provides transitive reduction and cycle breaking
// over edge lists.
//
// [transform]: github.com/matzehuels/ontodag/pkg/dag/transform
package dag
