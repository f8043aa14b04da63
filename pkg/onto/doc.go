// Package onto implements a rooted, multi-parent category hierarchy with
// conjunctive membership queries.
//
// # Overview
//
// An [Ontology] is a [dag.DAG] with a synthetic root named [Root]. Every
// category is reachable from the root; categories inserted without a parent
// are attached directly under it. Edges point from the general category to
// the specific one, so "Mammal → Dog" reads "Dog is a Mammal".
//
// # Queries
//
// [Ontology.Get] returns the categories that are subcategories of every
// named category:
//
//	o := onto.New()
//	o.Put("Animal", nil)
//	o.Put("Mammal", []string{"Animal"})
//	o.Put("Black", nil)
//	o.Put("BlackDog", []string{"Mammal", "Black"})
//
//	o.Get("Mammal", "Black") // [BlackDog]
//
// # Optimized Insertion
//
// Put with [WithOptimized] attaches a new category to the most specific
// existing categories that already imply all requested parents, instead of
// to the requested parents themselves. This keeps the edge set close to its
// transitive reduction as the hierarchy grows.
//
// # Extraction
//
// [Intersection], [Ontology.Prune], [Ontology.CopySubDAG] and
// [Ontology.GetAsDAG] derive smaller ontologies. Derived ontologies never
// share nodes with their source.
//
// # Errors
//
// Failures carry codes from [github.com/matzehuels/ontodag/pkg/errors]:
// UNKNOWN_CATEGORY, CANNOT_REMOVE_ROOT and INVALID_SUPERCATEGORY_SET. A
// failed operation leaves the ontology unchanged.
package onto
