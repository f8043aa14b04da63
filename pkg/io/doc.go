// Package io reads and writes ontologies in interchange formats.
//
// # Formats
//
// Three encodings of the same (name, parents) triples are supported:
//
//   - JSON: {"root": "*", "categories": [{"name": "Dog", "parents": ["Mammal"]}]}
//   - YAML: the same document in YAML
//   - OWL: RDF/XML with one owl:Class per category and rdfs:subClassOf per
//     parent; the root is written as owl:Thing
//
// Every non-root category is listed with all of its direct parents,
// including the root where there is a root edge, so an export followed by an
// import reproduces the category set and the edge set exactly.
//
// # Usage
//
//	// Write
//	err := io.Export(o, os.Stdout, io.FormatJSON)
//	err = io.ExportFile(o, "animals.owl")
//
//	// Read
//	o, err := io.ImportFile("animals.yaml")
//	o, err = io.Import(r, io.FormatOWL, io.Lenient(func(e dag.Edge) {
//	    log.Warn("dropped cyclic edge", "from", e.From, "to", e.To)
//	}))
//
// # Import Rules
//
// All categories are created before any edge is inserted and descendant
// counts are computed once. A parent that is never declared as a category is
// an UNKNOWN_CATEGORY error. Cyclic input is an INVALID_SUPERCATEGORY_SET
// error unless [Lenient] is given, in which case the back edges found by
// [transform.BreakCycles] are dropped and reported.
//
// [transform.BreakCycles]: github.com/matzehuels/ontodag/pkg/dag/transform.BreakCycles
package io
