package transform

import "github.com/matzehuels/ontodag/pkg/dag"

// RedundantEdges returns the edges of g that are implied by another path.
//
// An edge (n, s) is redundant when some other child c of n already reaches s.
// For example, if A→B, B→C and A→C all exist, A→C is redundant because A
// reaches C via B. The result is sorted like [dag.DAG.Edges].
//
// Removing every returned edge at once preserves reachability: in a DAG the
// alternate path for a redundant edge never depends on another redundant edge.
func RedundantEdges(g *dag.DAG) []dag.Edge {
	reach := make(map[string]dag.Set)
	descendants := func(name string) dag.Set {
		if s, ok := reach[name]; ok {
			return s
		}
		s := g.Descendants(name)
		reach[name] = s
		return s
	}

	var redundant []dag.Edge
	for _, e := range g.Edges() {
		for _, via := range g.Children(e.From) {
			if via != e.To && descendants(via).Has(e.To) {
				redundant = append(redundant, e)
				break
			}
		}
	}
	return redundant
}

// TransitiveReduction removes every redundant edge from g (see
// [RedundantEdges]) and returns the number of edges removed. Descendant counts
// are unaffected because reachability does not change.
//
// Time complexity is O(V·(V+E)) for the memoized reachability sets plus the
// per-edge scan of the parent's children.
func TransitiveReduction(g *dag.DAG) int {
	redundant := RedundantEdges(g)
	for _, e := range redundant {
		_ = g.RemoveEdge(e.From, e.To)
	}
	return len(redundant)
}
