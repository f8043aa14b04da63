// Package pkg provides the core libraries for ontodag category hierarchies.
//
// # Overview
//
// ontodag keeps categories in a rooted directed acyclic graph where a
// category may sit under several parents at once. Every category knows how
// many categories lie below it, which makes "what belongs to all of these"
// queries a walk over the smallest candidate. The pkg directory is organized
// into four areas:
//
//  1. [dag], [onto] - Domain logic (graph engine, ontology operations)
//  2. [graph], [io], [loader] - Serialization and import
//  3. [render/nodelink] - Visualization
//  4. [session], [store], [config], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	CSV rows / JSON, YAML, OWL documents
//	         ↓
//	    [loader], [io] packages (parse and build)
//	         ↓
//	    [onto] package (put, remove, merge, query, extract)
//	         ↓
//	    [graph] package (plain-data view)
//	         ↓
//	    JSON / DOT / SVG / PNG output
//
// # Quick Start
//
// Build a hierarchy and query it:
//
//	o := onto.New()
//	o.Put("Animal", nil)
//	o.Put("Pet", nil)
//	o.Put("Dog", []string{"Animal", "Pet"})
//
//	dogs, _ := o.Get("Animal", "Pet") // [Dog]
//
// Render it with Graphviz:
//
//	dot := nodelink.ToDOT(graph.FromOntology(o), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Main Packages
//
// ## Domain Logic
//
// [dag] - Node registry, traversals and the descendant-count cache. The
// [dag/transform] subpackage breaks cycles in imported edge lists and removes
// redundant edges.
//
// [onto] - The ontology: query, put (plain or optimized), remove, merge,
// intersection, prune and subgraph extraction.
//
// ## Serialization
//
// [graph] - Plain-data views (node-link graph and category document).
//
// [io] - JSON, YAML and OWL import and export.
//
// [loader] - Bulk loading from CSV with a column mapping.
//
// ## Visualization
//
// [render/nodelink] - Directed graph diagrams using Graphviz.
//
// ## Infrastructure
//
// [session] - In-memory ontology sessions with idle expiry and snapshots.
//
// [store] - Snapshot backends: file, Redis, Badger, MongoDB and null.
//
// [config] - Server configuration from TOML.
//
// [observability] - Hooks for metrics, with a Prometheus implementation in
// [observability/prom].
//
// [errors] - Error codes shared by the CLI and the HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/onto/...     # Specific package
//	go test -run Example       # Examples only
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/dag/transform
// [onto]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/onto
// [graph]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/graph
// [io]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/io
// [loader]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/loader
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/render/nodelink
// [session]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/session
// [store]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/observability/prom
// [errors]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/errors
package pkg
