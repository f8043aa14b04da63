package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontodag/pkg/onto"
)

// infoCommand prints summary statistics of an ontology.
func (c *CLI) infoCommand() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "info <ontology>",
		Short: "Show size, depth and the largest categories of an ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.readOntology(args[0])
			if err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			s := summarize(o)

			fmt.Println(StyleTitle.Render(args[0]))
			printKeyValue("Categories", fmt.Sprint(s.categories))
			printKeyValue("Edges", fmt.Sprint(s.edges))
			printKeyValue("Top level", fmt.Sprint(s.topLevel))
			printKeyValue("Leaves", fmt.Sprint(s.leaves))
			printKeyValue("Multi-parent", fmt.Sprint(s.multiParent))
			printKeyValue("Depth", fmt.Sprint(s.depth))
			if big := largest(o, top); len(big) > 0 {
				fmt.Println()
				fmt.Println(StyleTitle.Render("Largest categories"))
				printCategories(big, o.DescendantCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "number of largest categories to list")
	return cmd
}

type summary struct {
	categories  int
	edges       int
	topLevel    int
	leaves      int
	multiParent int
	depth       int // longest root-to-leaf path in edges
}

func summarize(o *onto.Ontology) summary {
	s := summary{
		categories: o.Len(),
		edges:      len(o.Edges()),
		topLevel:   len(o.Children(onto.Root)),
		leaves:     len(o.Leaves()),
	}

	// Topological order lists children before parents, so walking it in
	// reverse sees every parent's depth first.
	depth := map[string]int{}
	order := o.TopologicalOrder()
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		for _, p := range o.Parents(name) {
			depth[name] = max(depth[name], depth[p]+1)
		}
		s.depth = max(s.depth, depth[name])
		if o.ParentCount(name) > 1 {
			s.multiParent++
		}
	}
	return s
}

// largest returns the n categories with the most descendants, ties broken by
// name. Leaves are never listed.
func largest(o *onto.Ontology, n int) []string {
	var names []string
	for _, name := range o.Names() {
		if name != onto.Root && o.DescendantCount(name) > 0 {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := o.DescendantCount(b) - o.DescendantCount(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	if n >= 0 && len(names) > n {
		names = names[:n]
	}
	return names
}
