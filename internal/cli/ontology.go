package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// queryCommand prints the common subcategories of the given categories.
func (c *CLI) queryCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "query <ontology> <category>...",
		Short: "List the categories below every given category",
		Long: `List the categories that are subcategories of every given category.

Examples:
  ontodag query geo.json City Europe     # every European city
  ontodag query geo.json Country --json  # machine-readable output`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.readOntology(args[0])
			if err != nil {
				return err
			}
			cats := args[1:]
			result, err := o.Get(cats...)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string][]string{"categories": cats, "result": nonNil(result)})
			}
			if len(result) == 0 {
				printInfo("No category is below all of %s", strings.Join(cats, ", "))
				return nil
			}
			printSuccess("%d categories below %s", len(result), StyleHighlight.Render(strings.Join(cats, " ∧ ")))
			printCategories(result, o.DescendantCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a styled list")
	return cmd
}

// putCommand inserts a category under the given parents.
func (c *CLI) putCommand() *cobra.Command {
	var (
		output    string
		optimized bool
	)

	cmd := &cobra.Command{
		Use:   "put <ontology> <category> [parent]...",
		Short: "Insert a category under the given parents (the root if none)",
		Long: `Insert a category under the given parents, creating it if needed.

Without parents the category is placed directly under the root. Repeated puts
add parents; they never replace existing ones. With --optimized the category
is attached to the most specific existing categories implied by the parents.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, parents := args[1], args[2:]
			if err := errors.ValidateCategoryName(name); err != nil {
				return err
			}
			var opts []onto.PutOption
			if optimized {
				opts = append(opts, onto.WithOptimized())
			}

			o, err := c.updateOntology(args[0], output, func(o *onto.Ontology) error {
				return o.Put(name, parents, opts...)
			})
			if err != nil {
				return err
			}
			printSuccess("Put %s under %s", StyleHighlight.Render(name), strings.Join(o.Parents(name), ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (rewrites the input if empty)")
	cmd.Flags().BoolVar(&optimized, "optimized", false, "attach to the most specific implied categories")
	return cmd
}

// removeCommand deletes a category and reconnects its parents to its children.
func (c *CLI) removeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "remove <ontology> <category>",
		Short: "Remove a category, keeping everything below it reachable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			var children []string
			_, err := c.updateOntology(args[0], output, func(o *onto.Ontology) error {
				children = o.Children(name)
				return o.Remove(name)
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %s", StyleHighlight.Render(name))
			if len(children) > 0 {
				printDetail("Reconnected %s", strings.Join(children, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (rewrites the input if empty)")
	return cmd
}

// mergeCommand folds several ontologies into the first.
func (c *CLI) mergeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge <ontology> <other>...",
		Short: "Merge other ontologies into the first, matching categories by name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			o, err := c.updateOntology(args[0], output, func(o *onto.Ontology) error {
				for _, path := range args[1:] {
					other, err := c.readOntology(path)
					if err != nil {
						return err
					}
					if err := o.Merge(other); err != nil {
						return fmt.Errorf("merge %s: %w", path, err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Merged %d ontologies", len(args)))
			printStats(o.Len(), len(o.Edges()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (rewrites the first input if empty)")
	return cmd
}

// pruneCommand keeps only the given categories and their common subcategories.
func (c *CLI) pruneCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "prune <ontology> <category>...",
		Short: "Keep only the given categories and what lies below all of them",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before := 0
			o, err := c.updateOntology(args[0], output, func(o *onto.Ontology) error {
				before = o.Len()
				return o.Prune(args[1:]...)
			})
			if err != nil {
				return err
			}
			printSuccess("Pruned %d categories", before-o.Len())
			printStats(o.Len(), len(o.Edges()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (rewrites the input if empty)")
	return cmd
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
