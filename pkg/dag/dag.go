package dag

import (
	"cmp"
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the name is empty.
	// All nodes must have non-empty names.
	ErrInvalidNodeID = errors.New("node name must not be empty")

	// ErrUnknownNode is returned by edge and node operations when a referenced
	// node does not exist. Edges are only ever created between existing nodes.
	ErrUnknownNode = errors.New("unknown node")

	// ErrEdgeNotFound is returned by [DAG.RemoveEdge] when the edge does not exist.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrCycle is returned by [DAG.AddEdge] when the parent is already reachable
	// from the child, so the new edge would close a directed cycle.
	ErrCycle = errors.New("edge would create a cycle")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// This indicates graph corruption; AddEdge never admits one.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrStaleCount is returned by [DAG.Validate] when a node's cached
	// descendant count disagrees with its reachable set.
	ErrStaleCount = errors.New("descendant count out of date")
)

// Node is a named vertex. Identity is the name: two nodes are the same node
// exactly when their names are equal, and a DAG holds at most one node per name.
//
// DescendantCount caches the number of distinct nodes reachable through one or
// more outgoing edges. It is maintained by the owning DAG after every edge
// mutation and can always be re-derived with [DAG.Descendants].
type Node struct {
	Name            string
	DescendantCount int

	children Set
}

// Children returns the names of the node's direct children in sorted order.
func (n *Node) Children() []string { return n.children.Sorted() }

// HasChild reports whether there is a direct edge from n to name.
func (n *Node) HasChild(name string) bool { return n.children.Has(name) }

// OutDegree returns the number of direct children.
func (n *Node) OutDegree() int { return len(n.children) }

// Edge is a directed parent → child connection. The parent is the more
// general node.
type Edge struct {
	From string
	To   string
}

// DAG is a registry of named nodes connected by parent → child edges, with a
// cached descendant count on every node.
//
// Nodes are kept in insertion order so traversals and orderings are
// deterministic. The reverse adjacency index is a derived cache keyed by name;
// it is rebuilt from the children sets whenever a copy is made.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string
	incoming map[string]Set // child name -> parent names
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		incoming: make(map[string]Set),
	}
}

// AddNode returns the node called name, creating it with no children and a
// zero count if it does not exist yet. Returns ErrInvalidNodeID for an empty
// name.
func (d *DAG) AddNode(name string) (*Node, error) {
	if name == "" {
		return nil, ErrInvalidNodeID
	}
	if n, ok := d.nodes[name]; ok {
		return n, nil
	}
	n := &Node{Name: name, children: Set{}}
	d.nodes[name] = n
	d.order = append(d.order, name)
	d.incoming[name] = Set{}
	return n, nil
}

// AddEdge adds a directed edge parent → child and refreshes the descendant
// counts of parent and all of its ancestors.
//
// Both endpoints must already exist (ErrUnknownNode otherwise). A self-edge or
// an edge that already exists is a silent no-op. An edge that would make
// parent reachable from itself is rejected with ErrCycle and the graph is left
// unchanged.
func (d *DAG) AddEdge(parent, child string) error {
	added, err := d.insertEdge(parent, child)
	if err != nil || !added {
		return err
	}
	d.Recount(parent)
	return nil
}

// AddEdges inserts every edge, then refreshes the counts of the affected
// parents and their ancestors once at the end. It applies the same rules as
// AddEdge; if any edge fails, the edges inserted by this call are rolled back
// and the error is returned.
func (d *DAG) AddEdges(edges []Edge) error {
	var inserted []Edge
	for _, e := range edges {
		added, err := d.insertEdge(e.From, e.To)
		if err != nil {
			for _, undo := range slices.Backward(inserted) {
				d.deleteEdge(undo.From, undo.To)
			}
			return err
		}
		if added {
			inserted = append(inserted, e)
		}
	}
	parents := make([]string, 0, len(inserted))
	for _, e := range inserted {
		parents = append(parents, e.From)
	}
	d.Recount(parents...)
	return nil
}

// RemoveEdge removes the edge parent → child and refreshes the descendant
// counts of parent and its ancestors. Returns ErrUnknownNode if either
// endpoint is absent and ErrEdgeNotFound if the edge does not exist.
func (d *DAG) RemoveEdge(parent, child string) error {
	p, ok := d.nodes[parent]
	if !ok {
		return ErrUnknownNode
	}
	if _, ok := d.nodes[child]; !ok {
		return ErrUnknownNode
	}
	if !p.children.Has(child) {
		return ErrEdgeNotFound
	}
	d.deleteEdge(parent, child)
	d.Recount(parent)
	return nil
}

// RemoveNode deletes a node together with all of its incident edges and
// refreshes the counts of its former parents and their ancestors.
// Returns ErrUnknownNode if the node does not exist.
func (d *DAG) RemoveNode(name string) error {
	n, ok := d.nodes[name]
	if !ok {
		return ErrUnknownNode
	}
	parents := d.incoming[name].Sorted()
	for c := range n.children {
		delete(d.incoming[c], name)
	}
	for _, p := range parents {
		delete(d.nodes[p].children, name)
	}
	delete(d.nodes, name)
	delete(d.incoming, name)
	if i := slices.Index(d.order, name); i >= 0 {
		d.order = slices.Delete(d.order, i, i+1)
	}
	d.Recount(parents...)
	return nil
}

func (d *DAG) insertEdge(parent, child string) (bool, error) {
	p, ok := d.nodes[parent]
	if !ok {
		return false, ErrUnknownNode
	}
	if _, ok := d.nodes[child]; !ok {
		return false, ErrUnknownNode
	}
	if parent == child || p.children.Has(child) {
		return false, nil
	}
	if d.Reaches(child, parent) {
		return false, ErrCycle
	}
	p.children.Add(child)
	d.incoming[child].Add(parent)
	return true, nil
}

func (d *DAG) deleteEdge(parent, child string) {
	delete(d.nodes[parent].children, child)
	delete(d.incoming[child], parent)
}

// Node returns the node with the given name and true, or nil and false if not
// found. The returned pointer refers to the node in the graph; callers must not
// modify DescendantCount.
func (d *DAG) Node(name string) (*Node, bool) {
	n, ok := d.nodes[name]
	return n, ok
}

// Has reports whether a node called name exists.
func (d *DAG) Has(name string) bool {
	_, ok := d.nodes[name]
	return ok
}

// Nodes returns all nodes in insertion order.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, name := range d.order {
		nodes[i] = d.nodes[name]
	}
	return nodes
}

// Names returns all node names in insertion order.
func (d *DAG) Names() []string { return slices.Clone(d.order) }

// Edges returns every edge sorted by parent name, then child name.
func (d *DAG) Edges() []Edge {
	var edges []Edge
	for _, name := range d.order {
		for _, c := range d.nodes[name].Children() {
			edges = append(edges, Edge{From: name, To: c})
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int {
	n := 0
	for _, node := range d.nodes {
		n += len(node.children)
	}
	return n
}

// Children returns the sorted names of the node's direct children.
// Returns nil if the node doesn't exist.
func (d *DAG) Children(name string) []string {
	n, ok := d.nodes[name]
	if !ok {
		return nil
	}
	return n.Children()
}

// Parents returns the sorted names of nodes with a direct edge to name.
// Returns nil if the node doesn't exist.
func (d *DAG) Parents(name string) []string {
	in, ok := d.incoming[name]
	if !ok {
		return nil
	}
	return in.Sorted()
}

// InDegree returns the number of direct parents. Returns 0 if the node
// doesn't exist.
func (d *DAG) InDegree(name string) int { return len(d.incoming[name]) }

// Clone returns a structurally identical DAG built from fresh nodes. No node
// is shared with the receiver; counts are recomputed on the copy.
func (d *DAG) Clone() *DAG {
	return d.Subgraph(NewSet(d.order...))
}

// Subgraph returns a new DAG containing the nodes named in keep (in the
// receiver's insertion order) and only the edges whose endpoints are both
// kept. Counts are recomputed from scratch on the result.
func (d *DAG) Subgraph(keep Set) *DAG {
	out := New()
	for _, name := range d.order {
		if keep.Has(name) {
			_, _ = out.AddNode(name)
		}
	}
	for _, name := range out.order {
		for c := range d.nodes[name].children {
			if keep.Has(c) {
				out.nodes[name].children.Add(c)
				out.incoming[c].Add(name)
			}
		}
	}
	out.RecountAll()
	return out
}

// Validate checks graph integrity and returns nil if valid.
// It verifies two constraints:
//
//  1. The graph is acyclic (ErrGraphHasCycle)
//  2. Every cached descendant count equals the size of the node's
//     reachable set (ErrStaleCount)
//
// Cycle detection runs in O(N+E) time using an iterative depth-first search.
func (d *DAG) Validate() error {
	if err := d.detectCycles(); err != nil {
		return err
	}
	for _, name := range d.order {
		if d.nodes[name].DescendantCount != len(d.Descendants(name)) {
			return ErrStaleCount
		}
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	type frame struct {
		name     string
		children []string
		next     int
	}

	color := make(map[string]int, len(d.nodes))
	for _, start := range d.order {
		if color[start] != white {
			continue
		}
		color[start] = gray
		stack := []frame{{name: start, children: d.nodes[start].Children()}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.children) {
				color[top.name] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := top.children[top.next]
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{name: child, children: d.nodes[child].Children()})
			case gray:
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
