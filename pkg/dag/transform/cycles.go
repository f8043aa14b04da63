package transform

import (
	"slices"

	"github.com/matzehuels/ontodag/pkg/dag"
)

// BreakCycles partitions an edge list into edges that form a DAG and the back
// edges that would close a cycle.
//
// It is intended for lenient imports of external data: the caller inserts
// kept and reports dropped. The traversal is a white/gray/black depth-first
// search started from every node in the given order, visiting targets in
// sorted order; an edge into a gray (in-progress) node is a back edge. Edges
// referencing names outside names are kept untouched for the caller to reject.
func BreakCycles(names []string, edges []dag.Edge) (kept, dropped []dag.Edge) {
	const (
		white = iota
		gray
		black
	)

	out := make(map[string][]string, len(names))
	for _, e := range edges {
		out[e.From] = append(out[e.From], e.To)
	}
	for k := range out {
		slices.Sort(out[k])
		out[k] = slices.Compact(out[k])
	}

	type frame struct {
		name string
		next int
	}

	back := make(map[dag.Edge]bool)
	color := make(map[string]int, len(names))
	for _, start := range names {
		if color[start] != white {
			continue
		}
		color[start] = gray
		stack := []frame{{name: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			targets := out[top.name]
			if top.next == len(targets) {
				color[top.name] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := targets[top.next]
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{name: child})
			case gray:
				back[dag.Edge{From: top.name, To: child}] = true
			}
		}
	}

	for _, e := range edges {
		if back[e] {
			dropped = append(dropped, e)
		} else {
			kept = append(kept, e)
		}
	}
	return kept, dropped
}
