package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/loader"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// loadCommand builds an ontology from a CSV file.
func (c *CLI) loadCommand() *cobra.Command {
	var (
		mapping loader.Mapping
		comma   string
		output  string
		into    string
	)

	cmd := &cobra.Command{
		Use:   "load <file.csv>",
		Short: "Build an ontology from a CSV file",
		Long: `Build an ontology from a CSV file whose first line names the columns.

Every row puts the value of the --name column under the values of the
--parent columns. Values of --seed columns are first placed under the root
so that rows can refer to them in any order.

Examples:
  ontodag load places.csv --name Name --parent "Larger Region" --parent Type --seed Type -o geo.json
  ontodag load tags.csv --name tag --parent parents --separator "|" --into tags.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mapping.Validate(); err != nil {
				return err
			}
			l := mapping.Loader()
			l.Logger = loggerFromContext(cmd.Context())
			if comma != "" {
				r, size := utf8.DecodeRuneInString(comma)
				if size != len(comma) {
					return errors.New(errors.ErrCodeInvalidInput, "--comma must be a single character, got %q", comma)
				}
				l.Comma = r
			}

			o := onto.New()
			if into != "" {
				var err error
				if o, err = c.readOntology(into); err != nil {
					return err
				}
				if output == "" {
					output = into
				}
			}

			prog := newProgress(l.Logger)
			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Loading %s...", args[0]))
			spinner.Start()
			stats, err := l.LoadFile(cmd.Context(), args[0], o)
			if err != nil {
				spinner.StopWithError("Load failed")
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Loaded %d rows", stats.Rows))

			if err := c.writeOntology(o, output); err != nil {
				return err
			}
			if output == "" {
				return nil
			}
			printSuccess("Loaded %d categories", o.Len())
			printStats(o.Len(), len(o.Edges()))
			if stats.Skipped > 0 {
				printWarning("Skipped %d rows without a name", stats.Skipped)
			}
			printFile(output)
			printNextStep("Explore it", fmt.Sprintf("%s browse %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVar(&mapping.Name, "name", "", "column holding the category name (required)")
	cmd.Flags().StringArrayVar(&mapping.Parents, "parent", nil, "column holding parent names (repeatable)")
	cmd.Flags().StringArrayVar(&mapping.Seeds, "seed", nil, "column whose values go under the root first (repeatable)")
	cmd.Flags().StringVar(&mapping.Separator, "separator", "", "split parent cells on this string")
	cmd.Flags().BoolVar(&mapping.Optimized, "optimized", false, "attach to the most specific implied categories")
	cmd.Flags().StringVar(&comma, "comma", "", "field delimiter (default \",\")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (JSON to stdout if empty)")
	cmd.Flags().StringVar(&into, "into", "", "load into an existing ontology file instead of a new one")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
