package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand opens the interactive hierarchy explorer.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <ontology>",
		Short: "Explore an ontology interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.readOntology(args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewBrowseModel(o), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			if m, ok := final.(BrowseModel); ok && len(m.Path) > 1 {
				printInfo("Last visited %s", StyleHighlight.Render(strings.Join(m.Path, " › ")))
			}
			return nil
		},
	}
}
