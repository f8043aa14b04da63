package graph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/ontodag/pkg/dag"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// =============================================================================
// Graph - Rendering View
// =============================================================================

// Graph is the plain-data view of an ontology handed to renderers and API
// clients. No engine state is referenced; every field is a copy.
type Graph struct {
	Root  string `json:"root" bson:"root"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is one category with its direct children and cached descendant count.
type Node struct {
	ID       string   `json:"name" bson:"name"`
	Label    string   `json:"label" bson:"label"`
	Count    int      `json:"descendant_count" bson:"descendant_count"`
	Children []string `json:"children" bson:"children"`
}

// Edge is a parent → child connection.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Label formats the display label of a category: "name: count".
func Label(name string, count int) string {
	return fmt.Sprintf("%s: %d", name, count)
}

// FromOntology builds the rendering view of o. Nodes are listed root first,
// each before its subcategories (the reverse of [onto.Ontology.TopologicalOrder]).
// Edges are sorted.
func FromOntology(o *onto.Ontology) Graph {
	order := o.TopologicalOrder()
	slices.Reverse(order)

	out := Graph{
		Root:  o.Root(),
		Nodes: make([]Node, len(order)),
	}
	for i, name := range order {
		count := o.DescendantCount(name)
		out.Nodes[i] = Node{
			ID:       name,
			Label:    Label(name, count),
			Count:    count,
			Children: o.Children(name),
		}
	}
	for _, e := range o.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To})
	}
	return out
}

// =============================================================================
// Document - Interchange Triples
// =============================================================================

// Category is one interchange triple: a category and its direct parents.
// A parent equal to the document root denotes a root edge.
type Category struct {
	Name    string   `json:"name" yaml:"name"`
	Parents []string `json:"parents" yaml:"parents"`
}

// Document is the format-neutral interchange form of an ontology.
type Document struct {
	Root       string     `json:"root" yaml:"root"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Categories lists every category of o except the root in insertion order,
// with sorted parents.
func Categories(o *onto.Ontology) []Category {
	var out []Category
	for _, name := range o.Names() {
		if name == o.Root() {
			continue
		}
		out = append(out, Category{Name: name, Parents: o.Parents(name)})
	}
	return out
}

// ToDocument returns the interchange form of o.
func ToDocument(o *onto.Ontology) Document {
	return Document{Root: o.Root(), Categories: Categories(o)}
}

// Names returns the declared category names in document order, leaving out
// the document root.
func (d Document) Names() []string {
	names := make([]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		if d.Root == "" || c.Name != d.Root {
			names = append(names, c.Name)
		}
	}
	return names
}

// Edges returns one edge per declared parent. A parent named like the
// document root is mapped to [onto.Root].
func (d Document) Edges() []dag.Edge {
	var edges []dag.Edge
	for _, c := range d.Categories {
		for _, p := range c.Parents {
			if d.Root != "" && p == d.Root {
				p = onto.Root
			}
			edges = append(edges, dag.Edge{From: p, To: c.Name})
		}
	}
	return edges
}

// ToOntology rebuilds an ontology from d. Parents that are not declared as
// categories fail with UNKNOWN_CATEGORY; cyclic input fails with
// INVALID_SUPERCATEGORY_SET.
func ToOntology(d Document) (*onto.Ontology, error) {
	return onto.Build(d.Names(), d.Edges())
}
