package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontodag/pkg/onto"
)

// extractCommand groups the read-only subgraph extractions.
func (c *CLI) extractCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a new ontology from existing ones",
		Long: `Extract a new ontology from existing ones. Inputs are never modified.

Examples:
  ontodag extract copy geo.json France Paris Lyon -o france.json
  ontodag extract dag geo.json Europe City
  ontodag extract intersection a.json b.json -o shared.yaml`,
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (JSON to stdout if empty)")

	cmd.AddCommand(c.extractSingle("copy <ontology> <category>...",
		"Copy the named categories and the edges among them",
		&output, (*onto.Ontology).CopySubDAG))
	cmd.AddCommand(c.extractSingle("dag <ontology> <category>...",
		"Arrange the given categories and their common subcategories as a new ontology",
		&output, (*onto.Ontology).GetAsDAG))
	cmd.AddCommand(c.extractIntersection(&output))

	return cmd
}

func (c *CLI) extractSingle(use, short string, output *string, fn func(*onto.Ontology, ...string) (*onto.Ontology, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.readOntology(args[0])
			if err != nil {
				return err
			}
			out, err := fn(o, args[1:]...)
			if err != nil {
				return err
			}
			return c.writeExtracted(out, *output)
		},
	}
}

func (c *CLI) extractIntersection(output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "intersection <ontology> <ontology>",
		Short: "List the categories present in both ontologies under a fresh root",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.readOntology(args[0])
			if err != nil {
				return err
			}
			b, err := c.readOntology(args[1])
			if err != nil {
				return err
			}
			return c.writeExtracted(onto.Intersection(a, b), *output)
		},
	}
}

func (c *CLI) writeExtracted(o *onto.Ontology, output string) error {
	if err := c.writeOntology(o, output); err != nil {
		return err
	}
	if output != "" {
		printSuccess("Extracted %d categories", o.Len())
		printFile(output)
	}
	return nil
}
