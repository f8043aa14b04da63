// Package cli implements the ontodag command-line interface.
//
// Most commands read an ontology file (JSON, YAML or OWL, chosen by
// extension), apply one operation and write the result. Mutating commands
// rewrite their input unless --output names another file; read-only
// extraction commands print JSON to stdout by default.
//
// # Commands
//
//   - load: build an ontology from a CSV file
//   - query, put, remove, merge, prune: the ontology operations
//   - extract: copy, dag and intersection subgraphs
//   - render: Graphviz SVG, PNG or DOT output
//   - export: convert between interchange formats
//   - info, browse: inspect an ontology
//   - serve: run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontodag/pkg/buildinfo"
	ontoio "github.com/matzehuels/ontodag/pkg/io"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// appName is the application name used for directories and display.
const appName = "ontodag"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ontodag maintains multi-parent category hierarchies",
		Long:         `ontodag stores categories in a rooted directed acyclic graph where a category may have several parents, answers "what belongs to all of these" queries, and extracts, renders and serves the hierarchy.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.loadCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.putCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.pruneCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Ontology Files
// =============================================================================

// readOntology imports path, choosing the format from its extension.
func (c *CLI) readOntology(path string) (*onto.Ontology, error) {
	o, err := ontoio.ImportFile(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("read ontology", "path", path, "categories", o.Len())
	return o, nil
}

// writeOntology writes o to path, or as JSON to stdout when path is empty.
func (c *CLI) writeOntology(o *onto.Ontology, path string) error {
	if path == "" {
		return ontoio.WriteJSON(o, os.Stdout)
	}
	if err := ontoio.ExportFile(o, path); err != nil {
		return err
	}
	c.Logger.Debug("wrote ontology", "path", path, "categories", o.Len())
	return nil
}

// updateOntology reads input, applies fn and writes the result to output,
// or back to input when output is empty.
func (c *CLI) updateOntology(input, output string, fn func(o *onto.Ontology) error) (*onto.Ontology, error) {
	o, err := c.readOntology(input)
	if err != nil {
		return nil, err
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	if output == "" {
		output = input
	}
	if err := c.writeOntology(o, output); err != nil {
		return nil, err
	}
	return o, nil
}
