package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/graph"
	"github.com/matzehuels/ontodag/pkg/render/nodelink"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
	formatDOT = "dot"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output     string
	format     string
	categories []string // render only the get_as_dag view of these
	nodelink.Options
}

// renderCommand draws an ontology with Graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <ontology>",
		Short: "Render an ontology as an SVG, PNG or DOT graph",
		Long: `Render an ontology as a node-link diagram. Every node is labelled with
its name and descendant count.

The format follows --format, else the output extension, else SVG.

Examples:
  ontodag render geo.json -o geo.svg
  ontodag render geo.json --cat Europe --cat City --rankdir LR -o cities.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.resolveFormat()
			if err != nil {
				return err
			}
			o, err := c.readOntology(args[0])
			if err != nil {
				return err
			}
			if len(opts.categories) > 0 {
				if o, err = o.GetAsDAG(opts.categories...); err != nil {
					return err
				}
			}
			dot := nodelink.ToDOT(graph.FromOntology(o), opts.Options)

			spinner := newSpinnerWithContext(cmd.Context(), "Rendering...")
			spinner.Start()
			var data []byte
			switch format {
			case formatSVG:
				data, err = nodelink.RenderSVG(cmd.Context(), dot)
			case formatPNG:
				data, err = nodelink.RenderPNG(cmd.Context(), dot)
			default:
				data = []byte(dot)
			}
			if err != nil {
				spinner.StopWithError("Render failed")
				return fmt.Errorf("render %s: %w", format, err)
			}
			spinner.Stop()

			output := opts.output
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + format
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %d categories", o.Len())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (input name with the format extension if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png, dot")
	cmd.Flags().StringVar(&opts.RankDir, "rankdir", nodelink.RankTopBottom, "layout direction: TB, LR, BT, RL")
	cmd.Flags().BoolVar(&opts.HideRoot, "hide-root", false, "omit the root node and its edges")
	cmd.Flags().StringArrayVar(&opts.categories, "cat", nil, "render only these categories and their common subcategories (repeatable)")

	return cmd
}

func (o renderOpts) resolveFormat() (string, error) {
	f := strings.ToLower(o.format)
	if f == "" {
		f = strings.ToLower(strings.TrimPrefix(filepath.Ext(o.output), "."))
	}
	switch f {
	case "":
		return formatSVG, nil
	case formatSVG, formatPNG, formatDOT:
		return f, nil
	case "gv":
		return formatDOT, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q (supported: svg, png, dot)", f)
}
