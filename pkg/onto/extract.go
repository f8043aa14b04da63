package onto

import (
	"github.com/matzehuels/ontodag/pkg/dag"
	"github.com/matzehuels/ontodag/pkg/dag/transform"
	errs "github.com/matzehuels/ontodag/pkg/errors"
)

// Clone returns a deep copy of o. The copy shares no nodes with o and can be
// read or mutated independently.
func (o *Ontology) Clone() *Ontology { return wrap(o.g.Clone()) }

// Intersection returns a new ontology holding every category present by name
// in both a and b, each directly under the new root. This covers the root
// edges of b's root-adjacent categories and keeps every shared category
// reachable. No other edges are carried over.
func Intersection(a, b *Ontology) *Ontology {
	out := New()
	for _, name := range a.g.Names() {
		if name != Root && b.g.Has(name) {
			_, _ = out.g.AddNode(name)
		}
	}

	var edges []dag.Edge
	for _, name := range out.g.Names() {
		if name != Root {
			edges = append(edges, dag.Edge{From: Root, To: name})
		}
	}
	_ = out.g.AddEdges(edges)
	return out
}

// Prune shrinks o in place to the common descendants of interesting, the
// interesting categories themselves and the root. Other categories are
// deleted with [Ontology.Remove], so reachability through them is kept.
// Finally every edge n → s is dropped when another child of n already
// reaches s.
//
// Fails with UNKNOWN_CATEGORY if an interesting category does not exist and
// with INVALID_INPUT if none is given. o is unchanged on failure.
func (o *Ontology) Prune(interesting ...string) error {
	if len(interesting) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "prune needs at least one category")
	}
	common, err := o.Get(interesting...)
	if err != nil {
		return err
	}

	keep := dag.NewSet(common...)
	keep.Add(interesting...)
	keep.Add(Root)
	for _, name := range o.g.Names() {
		if keep.Has(name) {
			continue
		}
		if err := o.Remove(name); err != nil {
			return err
		}
	}
	transform.TransitiveReduction(o.g)
	return nil
}

// CopySubDAG returns a new ontology with fresh copies of the named categories
// and the edges among them. Copied categories left without a parent are
// attached to the root. Fails with UNKNOWN_CATEGORY for a missing name.
func (o *Ontology) CopySubDAG(names ...string) (*Ontology, error) {
	keep := dag.NewSet(Root)
	for _, n := range names {
		if !o.g.Has(n) {
			return nil, unknownCategory(n)
		}
		keep.Add(n)
	}

	sub := o.g.Subgraph(keep)
	var orphans []dag.Edge
	for _, n := range sub.Sources() {
		if n != Root {
			orphans = append(orphans, dag.Edge{From: Root, To: n})
		}
	}
	if err := sub.AddEdges(orphans); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "attach orphans")
	}
	return wrap(sub), nil
}

// GetAsDAG builds a new ontology describing a query: the given categories,
// keeping the ancestor relations among them, plus their common descendants.
//
// A category with no given ancestor sits under the new root; otherwise it
// sits under its most specific given ancestors. Each common descendant is
// attached to the given categories that are not ancestors of another given
// category. Redundant root edges are stripped as in [Ontology.Merge].
func (o *Ontology) GetAsDAG(categories ...string) (*Ontology, error) {
	categories = uniq(categories)
	common, err := o.Get(categories...)
	if err != nil {
		return nil, err
	}

	out := New()
	for _, c := range categories {
		_, _ = out.g.AddNode(c)
	}
	for _, d := range common {
		_, _ = out.g.AddNode(d)
	}

	given := dag.NewSet(categories...)
	var edges []dag.Edge
	for _, c := range categories {
		parents := mostSpecific(o.g, dag.Intersect(o.g.Ancestors(c), given))
		if len(parents) == 0 {
			parents = []string{Root}
		}
		for _, p := range parents {
			edges = append(edges, dag.Edge{From: p, To: c})
		}
	}
	leaves := mostSpecific(o.g, given)
	for _, d := range common {
		for _, p := range leaves {
			edges = append(edges, dag.Edge{From: p, To: d})
		}
	}
	if err := out.g.AddEdges(edges); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "build query graph")
	}
	if err := stripRootEdges(out.g); err != nil {
		return nil, err
	}
	out.g.RecountAll()
	return out, nil
}

// mostSpecific returns the sorted members of s that are not an ancestor of
// another member.
func mostSpecific(g *dag.DAG, s dag.Set) []string {
	var out []string
	for _, n := range s.Sorted() {
		general := false
		for m := range s {
			if m != n && g.Reaches(n, m) {
				general = true
				break
			}
		}
		if !general {
			out = append(out, n)
		}
	}
	return out
}
