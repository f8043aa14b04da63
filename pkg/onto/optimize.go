package onto

import "github.com/matzehuels/ontodag/pkg/dag"

// optimizedParents picks the most specific existing categories that already
// imply membership in every requested super-category.
//
// It works in three steps:
//
//  1. Element set: the ancestors of the requested categories, without the
//     root. The requested categories themselves are not members.
//  2. Extended set: the element set grown to a fixpoint by admitting any
//     descendant whose ancestors (without the root) are all inside it.
//  3. Bottom set: the members of the extended set with no children inside the
//     extended set, in topological order.
//
// The new category and its current descendants are never candidates, so the
// result cannot close a cycle. An empty element or bottom set falls back to
// supers, so a category requested directly under a top-level category stays
// there.
func (o *Ontology) optimizedParents(name string, supers []string, below dag.Set) []string {
	element := dag.Set{}
	for _, s := range supers {
		if s == Root {
			continue
		}
		for a := range o.g.Ancestors(s, Root) {
			element.Add(a)
		}
	}
	if element.Len() == 0 {
		return supers
	}

	extended := o.extend(element, name, below)

	sub := o.g.Subgraph(extended)
	var bottom []string
	for _, n := range sub.TopologicalOrder() {
		if node, _ := sub.Node(n); node.OutDegree() == 0 {
			bottom = append(bottom, n)
		}
	}
	if len(bottom) == 0 {
		return supers
	}
	return bottom
}

// extend grows element downward until no further descendant is fully covered.
func (o *Ontology) extend(element dag.Set, name string, below dag.Set) dag.Set {
	extended := element.Clone()

	ancestry := map[string]dag.Set{}
	for e := range element {
		for d := range o.g.Descendants(e) {
			if d == name || below.Has(d) || extended.Has(d) {
				continue
			}
			if _, ok := ancestry[d]; !ok {
				ancestry[d] = o.g.Ancestors(d, Root)
			}
		}
	}

	covered := func(ancestors dag.Set) bool {
		for a := range ancestors {
			if !extended.Has(a) {
				return false
			}
		}
		return true
	}

	for grew := true; grew; {
		grew = false
		for d, ancestors := range ancestry {
			if covered(ancestors) {
				extended.Add(d)
				delete(ancestry, d)
				grew = true
			}
		}
	}
	return extended
}
