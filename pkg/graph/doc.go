// Package graph provides plain-data views of an ontology.
//
// Two shapes live here, both free of engine references so they can cross API
// and storage boundaries:
//
//   - [Graph]: nodes with labels, children and descendant counts, plus the
//     edge list. This is what renderers and the HTTP API consume.
//   - [Document]: (name, parents) triples, the format-neutral interchange
//     form read and written by pkg/io.
//
// # Rendering View
//
//	g := graph.FromOntology(o)
//	for _, n := range g.Nodes {
//	    fmt.Println(n.Label) // "Mammal: 3"
//	}
//
// Nodes are listed root first and every node precedes its subcategories.
//
// # Interchange
//
// [ToDocument] and [ToOntology] convert in both directions. The round trip
// preserves the category set and the edge set exactly; the root is
// re-identified by name.
package graph
