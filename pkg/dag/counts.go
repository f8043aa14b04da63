package dag

// Recount refreshes the cached descendant count of every node whose reachable
// set may have changed after an edge mutation at one of the given nodes: the
// nodes themselves and all of their ancestors. Unknown names are ignored.
//
// Each affected count is recomputed as the size of the node's distinct
// reachable set. Summing child counts is not used because shared descendants
// (diamonds) would be counted once per path.
func (d *DAG) Recount(names ...string) {
	affected := Set{}
	for _, name := range names {
		// Already covered when name is a listed node or an ancestor of one.
		if _, ok := d.nodes[name]; !ok || affected.Has(name) {
			continue
		}
		affected.Add(name)
		for a := range d.Ancestors(name) {
			affected.Add(a)
		}
	}
	for name := range affected {
		d.nodes[name].DescendantCount = 0
	}
	for name := range affected {
		d.nodes[name].DescendantCount = len(d.Descendants(name))
	}
}

// RecountAll recomputes the descendant count of every node.
func (d *DAG) RecountAll() {
	for _, n := range d.nodes {
		n.DescendantCount = len(d.Descendants(n.Name))
	}
}
