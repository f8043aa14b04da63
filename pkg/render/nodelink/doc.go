// Package nodelink draws ontologies as node-link diagrams.
//
// # Overview
//
// Categories appear as boxes connected by arrows from the more general
// category to the more specific one. Each box is labelled with the category
// name and its descendant count, for example "Mammal: 3". The root is drawn
// as a grey ellipse.
//
// # Usage
//
// Build the plain-data view with [graph.FromOntology], convert it to DOT,
// then render:
//
//	dot := nodelink.ToDOT(graph.FromOntology(o), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - RankDir: layout direction (TB, LR, BT, RL). Defaults to TB.
//   - HideRoot: omit the root and its edges, useful for wide ontologies.
//
// # Dependencies
//
// Rendering runs in-process through [github.com/goccy/go-graphviz]; no
// Graphviz installation is required.
package nodelink
