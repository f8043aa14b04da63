// Package transform provides whole-graph transformations over [dag.DAG].
//
// # Transitive Reduction
//
// [TransitiveReduction] removes redundant edges that can be inferred through
// other paths. If A→B and B→C exist, then A→C is redundant and removed.
// Ontology extraction uses it after pruning, when deleting intermediate
// categories leaves broad categories wired both directly and indirectly to
// the same subcategory. [RedundantEdges] reports the same edges without
// mutating the graph.
//
// # Cycle Breaking
//
// [BreakCycles] detects edges that would close a cycle in an edge list that
// has not been inserted yet. A [dag.DAG] never admits a cycle, so this is
// only useful when importing external hierarchies in lenient mode, where
// back edges are dropped and reported instead of failing the import.
//
// [dag.DAG]: github.com/matzehuels/ontodag/pkg/dag.DAG
package transform
