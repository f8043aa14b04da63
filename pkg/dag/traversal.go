package dag

// Descendants returns every node reachable from name through one or more
// outgoing edges, excluding name itself. Each node is visited at most once.
// Returns an empty set if the node does not exist.
func (d *DAG) Descendants(name string) Set {
	out := Set{}
	n, ok := d.nodes[name]
	if !ok {
		return out
	}
	stack := make([]string, 0, len(n.children))
	for c := range n.children {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == name || out.Has(cur) {
			continue
		}
		out.Add(cur)
		for c := range d.nodes[cur].children {
			if !out.Has(c) {
				stack = append(stack, c)
			}
		}
	}
	return out
}

// Ancestors returns every node that has name among its descendants,
// excluding name itself. Nodes listed in ignore are neither returned nor
// traversed through, so ancestors reachable only via an ignored node are
// omitted as well.
func (d *DAG) Ancestors(name string, ignore ...string) Set {
	out := Set{}
	if _, ok := d.nodes[name]; !ok {
		return out
	}
	skip := NewSet(ignore...)
	stack := []string{name}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for p := range d.incoming[cur] {
			if p == name || out.Has(p) || skip.Has(p) {
				continue
			}
			out.Add(p)
			stack = append(stack, p)
		}
	}
	return out
}

// Reaches reports whether to is a descendant of from.
func (d *DAG) Reaches(from, to string) bool {
	n, ok := d.nodes[from]
	if !ok {
		return false
	}
	seen := Set{}
	stack := make([]string, 0, len(n.children))
	for c := range n.children {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		if seen.Has(cur) {
			continue
		}
		seen.Add(cur)
		for c := range d.nodes[cur].children {
			stack = append(stack, c)
		}
	}
	return false
}

// TopologicalOrder returns every node such that for each edge parent → child
// the child appears before the parent: subcategories precede their
// supercategories. Callers wanting parents first must reverse the result.
//
// The order is a depth-first post-order started from every node in insertion
// order, visiting children in sorted order and skipping visited nodes. The
// traversal uses an explicit stack, so hierarchy depth does not grow the call
// stack.
func (d *DAG) TopologicalOrder() []string {
	type frame struct {
		name     string
		children []string
		next     int
	}

	visited := make(Set, len(d.nodes))
	order := make([]string, 0, len(d.nodes))
	for _, start := range d.order {
		if visited.Has(start) {
			continue
		}
		visited.Add(start)
		stack := []frame{{name: start, children: d.nodes[start].Children()}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.children) {
				order = append(order, top.name)
				stack = stack[:len(stack)-1]
				continue
			}
			child := top.children[top.next]
			top.next++
			if visited.Has(child) {
				continue
			}
			visited.Add(child)
			stack = append(stack, frame{name: child, children: d.nodes[child].Children()})
		}
	}
	return order
}

// Sources returns the names of nodes without parents, in insertion order.
func (d *DAG) Sources() []string {
	var out []string
	for _, name := range d.order {
		if len(d.incoming[name]) == 0 {
			out = append(out, name)
		}
	}
	return out
}

// Sinks returns the names of nodes without children, in insertion order.
func (d *DAG) Sinks() []string {
	var out []string
	for _, name := range d.order {
		if len(d.nodes[name].children) == 0 {
			out = append(out, name)
		}
	}
	return out
}
