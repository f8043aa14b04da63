package onto

import (
	"errors"
	"slices"

	"github.com/matzehuels/ontodag/pkg/dag"
	errs "github.com/matzehuels/ontodag/pkg/errors"
)

// Root is the name of the synthetic universal super-category. Every ontology
// has exactly one root; it cannot be removed or used as a subcategory.
const Root = "*"

// ErrUnreachable is returned by [Ontology.Validate] when a category cannot be
// reached from the root.
var ErrUnreachable = errors.New("category not reachable from root")

// Ontology is a rooted DAG of named categories. Edges point from the more
// general category to the more specific one.
//
// The zero value is not usable - use New. An Ontology is not safe for
// concurrent use: run at most one mutation at a time and never alongside a
// read. Callers that need an isolated view should take a [Ontology.Clone].
type Ontology struct {
	g *dag.DAG
}

// New returns an ontology that contains only the root.
func New() *Ontology {
	g := dag.New()
	_, _ = g.AddNode(Root)
	return &Ontology{g: g}
}

func wrap(g *dag.DAG) *Ontology { return &Ontology{g: g} }

// Build assembles an ontology from a complete node and edge list, as produced
// by an interchange decoder. Every node is added first, then every edge, and
// counts are computed once. Nodes other than the root that end up without a
// parent are attached under the root. An edge naming the root as its child is
// rejected along with any edge that would close a cycle.
func Build(names []string, edges []dag.Edge) (*Ontology, error) {
	o := New()
	for _, n := range names {
		if _, err := o.g.AddNode(n); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "category %q", n)
		}
	}
	for _, e := range edges {
		if e.To == Root {
			return nil, errs.New(errs.ErrCodeInvalidSupercategorySet, "root %q cannot be a subcategory of %q", Root, e.From)
		}
		for _, n := range []string{e.From, e.To} {
			if !o.g.Has(n) {
				return nil, unknownCategory(n)
			}
		}
	}
	if err := o.g.AddEdges(edges); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSupercategorySet, err, "build")
	}

	var orphans []dag.Edge
	for _, n := range o.g.Sources() {
		if n != Root {
			orphans = append(orphans, dag.Edge{From: Root, To: n})
		}
	}
	if err := o.g.AddEdges(orphans); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "attach orphans")
	}
	return o, nil
}

// Root returns the root's name.
func (o *Ontology) Root() string { return Root }

// Has reports whether a category called name exists. The root always exists.
func (o *Ontology) Has(name string) bool { return o.g.Has(name) }

// Len returns the number of categories, not counting the root.
func (o *Ontology) Len() int { return o.g.NodeCount() - 1 }

// Names returns every category name including the root, in insertion order.
func (o *Ontology) Names() []string { return o.g.Names() }

// Edges returns every parent → child edge, sorted.
func (o *Ontology) Edges() []dag.Edge { return o.g.Edges() }

// Parents returns the sorted direct super-categories of name.
func (o *Ontology) Parents(name string) []string { return o.g.Parents(name) }

// Children returns the sorted direct subcategories of name.
func (o *Ontology) Children(name string) []string { return o.g.Children(name) }

// ParentCount returns the number of direct super-categories of name.
func (o *Ontology) ParentCount(name string) int { return o.g.InDegree(name) }

// Leaves returns the categories without subcategories, in insertion order.
// The root of an empty ontology is not a leaf.
func (o *Ontology) Leaves() []string {
	return slices.DeleteFunc(o.g.Sinks(), func(n string) bool { return n == Root })
}

// DescendantCount returns the cached number of distinct descendants of name,
// or 0 if name is unknown.
func (o *Ontology) DescendantCount(name string) int {
	if n, ok := o.g.Node(name); ok {
		return n.DescendantCount
	}
	return 0
}

// Descendants returns the sorted transitive subcategories of name.
func (o *Ontology) Descendants(name string) []string { return o.g.Descendants(name).Sorted() }

// Ancestors returns the sorted transitive super-categories of name, skipping
// (and not traversing through) any name in ignore.
func (o *Ontology) Ancestors(name string, ignore ...string) []string {
	return o.g.Ancestors(name, ignore...).Sorted()
}

// TopologicalOrder lists every category with subcategories before their
// super-categories. The root comes last.
func (o *Ontology) TopologicalOrder() []string { return o.g.TopologicalOrder() }

// Validate checks acyclicity, descendant count freshness and that every
// category is reachable from the root.
func (o *Ontology) Validate() error {
	if err := o.g.Validate(); err != nil {
		return err
	}
	if reach := o.g.Descendants(Root); reach.Len() != o.Len() {
		for _, name := range o.g.Names() {
			if name != Root && !reach.Has(name) {
				return errs.Wrap(errs.ErrCodeInternal, ErrUnreachable, "category %q", name)
			}
		}
	}
	return nil
}

// Get returns the categories that are subcategories of every named category,
// sorted by name. An empty query yields an empty result. A name that does not
// exist fails with UNKNOWN_CATEGORY.
func (o *Ontology) Get(categories ...string) ([]string, error) {
	sets, err := o.descendantSets(categories)
	if err != nil {
		return nil, err
	}
	return dag.Intersect(sets...).Sorted(), nil
}

func (o *Ontology) descendantSets(categories []string) ([]dag.Set, error) {
	sets := make([]dag.Set, 0, len(categories))
	for _, name := range uniq(categories) {
		if !o.g.Has(name) {
			return nil, unknownCategory(name)
		}
		sets = append(sets, o.g.Descendants(name))
	}
	return sets, nil
}

// PutOption configures [Ontology.Put].
type PutOption func(*putOptions)

type putOptions struct {
	optimized bool
}

// WithOptimized attaches the subcategory only to the most specific existing
// categories implied by the requested super-categories.
func WithOptimized() PutOption {
	return func(o *putOptions) { o.optimized = true }
}

// Put inserts name as a subcategory of every category in supers, creating
// it if needed. An empty supers list means the root. Repeated calls are
// additive: parents accumulate and are never replaced.
//
// All checks run before anything changes. Put fails with UNKNOWN_CATEGORY
// when a super-category does not exist and with INVALID_SUPERCATEGORY_SET
// when name is empty, is the root, or is already an ancestor of one of
// supers.
func (o *Ontology) Put(name string, supers []string, opts ...PutOption) error {
	var cfg putOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	if name == "" {
		return errs.New(errs.ErrCodeInvalidSupercategorySet, "category name must not be empty")
	}
	if name == Root {
		return errs.New(errs.ErrCodeInvalidSupercategorySet, "root %q cannot be a subcategory", Root)
	}

	supers = uniq(supers)
	for _, s := range supers {
		if !o.g.Has(s) {
			return unknownCategory(s)
		}
	}
	if len(supers) == 0 {
		supers = []string{Root}
	}

	var below dag.Set
	if o.g.Has(name) {
		below = o.g.Descendants(name)
		for _, s := range supers {
			if below.Has(s) {
				return errs.New(errs.ErrCodeInvalidSupercategorySet,
					"%q is a subcategory of %q and cannot become its parent", s, name)
			}
		}
	}

	parents := supers
	if cfg.optimized {
		parents = o.optimizedParents(name, supers, below)
	}

	created := !o.g.Has(name)
	if _, err := o.g.AddNode(name); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "add %q", name)
	}
	edges := make([]dag.Edge, len(parents))
	for i, p := range parents {
		edges[i] = dag.Edge{From: p, To: name}
	}
	if err := o.g.AddEdges(edges); err != nil {
		if created {
			_ = o.g.RemoveNode(name)
		}
		return errs.Wrap(errs.ErrCodeInvalidSupercategorySet, err, "attach %q", name)
	}
	return nil
}

// Remove deletes a category and reconnects each of its parents to each of its
// children so that everything reachable through it stays reachable. When the
// category had a parent besides the root, the root is not reconnected: the
// other parent already provides a more specific path.
//
// Fails with UNKNOWN_CATEGORY for a missing name and CANNOT_REMOVE_ROOT for
// the root.
func (o *Ontology) Remove(name string) error {
	if name == Root {
		return errs.New(errs.ErrCodeCannotRemoveRoot, "the root category cannot be removed")
	}
	if !o.g.Has(name) {
		return unknownCategory(name)
	}

	parents := o.g.Parents(name)
	children := o.g.Children(name)
	if err := o.g.RemoveNode(name); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "remove %q", name)
	}

	skipRoot := len(parents) > 1 && slices.Contains(parents, Root)
	var edges []dag.Edge
	for _, p := range parents {
		if skipRoot && p == Root {
			continue
		}
		for _, c := range children {
			edges = append(edges, dag.Edge{From: p, To: c})
		}
	}
	if err := o.g.AddEdges(edges); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "reconnect children of %q", name)
	}
	return nil
}

// Merge adds every category and edge of other to o, matching categories by
// name. Afterwards a direct root edge is dropped whenever the child has
// another ancestor that is itself directly under the root, and all counts are
// recomputed. other is not modified.
//
// If the combined edges would form a cycle, Merge fails with
// INVALID_SUPERCATEGORY_SET and o is left unchanged.
func (o *Ontology) Merge(other *Ontology) error {
	merged := o.g.Clone()
	for _, name := range other.g.Names() {
		if _, err := merged.AddNode(name); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "merge %q", name)
		}
	}
	if err := merged.AddEdges(other.g.Edges()); err != nil {
		if errors.Is(err, dag.ErrCycle) {
			return errs.Wrap(errs.ErrCodeInvalidSupercategorySet, err, "merged ontologies disagree on direction")
		}
		return errs.Wrap(errs.ErrCodeInternal, err, "merge edges")
	}
	if err := stripRootEdges(merged); err != nil {
		return err
	}
	merged.RecountAll()
	o.g = merged
	return nil
}

// stripRootEdges removes root → c whenever some other ancestor of c is also a
// direct child of the root.
func stripRootEdges(g *dag.DAG) error {
	top := dag.NewSet(g.Children(Root)...)
	for _, c := range g.Children(Root) {
		for a := range g.Ancestors(c, Root) {
			if top.Has(a) {
				if err := g.RemoveEdge(Root, c); err != nil {
					return errs.Wrap(errs.ErrCodeInternal, err, "strip root edge to %q", c)
				}
				break
			}
		}
	}
	return nil
}

func unknownCategory(name string) error {
	return errs.New(errs.ErrCodeUnknownCategory, "unknown category %q", name)
}

// uniq drops repeated names, keeping first occurrences in order.
func uniq(names []string) []string {
	seen := make(dag.Set, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen.Has(n) {
			seen.Add(n)
			out = append(out, n)
		}
	}
	return out
}
