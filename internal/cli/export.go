package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontodag/pkg/dag"
	ontoio "github.com/matzehuels/ontodag/pkg/io"
)

// exportCommand converts an ontology between interchange formats.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output  string
		format  string
		lenient bool
	)

	cmd := &cobra.Command{
		Use:   "export <ontology>",
		Short: "Convert an ontology between JSON, YAML and OWL",
		Long: `Convert an ontology between JSON, YAML and OWL (RDF/XML).

Formats are chosen by file extension (.json, .yaml/.yml, .owl/.rdf); without
--output the result goes to stdout in --format (JSON by default).

With --lenient, edges of the input that would close a cycle are dropped and
reported instead of failing the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dropped []dag.Edge
			var opts []ontoio.Option
			if lenient {
				opts = append(opts, ontoio.Lenient(func(e dag.Edge) { dropped = append(dropped, e) }))
			}
			o, err := ontoio.ImportFile(args[0], opts...)
			if err != nil {
				return err
			}
			for _, e := range dropped {
				c.Logger.Warn("dropped cyclic edge", "parent", e.From, "child", e.To)
			}

			if output != "" {
				if err := ontoio.ExportFile(o, output); err != nil {
					return err
				}
				printSuccess("Exported %d categories", o.Len())
				if len(dropped) > 0 {
					printWarning("Dropped %d cyclic edges", len(dropped))
				}
				printFile(output)
				return nil
			}

			f := ontoio.FormatJSON
			if format != "" {
				if f, err = ontoio.ParseFormat(format); err != nil {
					return err
				}
			}
			if err := ontoio.Export(o, os.Stdout, f); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "stdout format: json, yaml, owl")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "drop cyclic edges instead of failing")

	return cmd
}
