package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ontodag/pkg/onto"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	breadcrumbStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// BrowseModel - Interactive hierarchy explorer
// =============================================================================

// BrowseModel is the bubbletea model of the hierarchy explorer. It shows the
// children of one category at a time; a category reached through one parent
// can be left through any other.
type BrowseModel struct {
	o *onto.Ontology

	// Path runs from the root to the category whose children are listed.
	Path     []string
	Children []string
	Cursor   int
	Offset   int
	Height   int
}

// NewBrowseModel starts at the root of o.
func NewBrowseModel(o *onto.Ontology) BrowseModel {
	m := BrowseModel{o: o, Height: 15}
	return m.enter(onto.Root)
}

// Current returns the category whose children are listed.
func (m BrowseModel) Current() string { return m.Path[len(m.Path)-1] }

// Selected returns the category under the cursor, or "" when the current
// category is a leaf.
func (m BrowseModel) Selected() string {
	if len(m.Children) == 0 {
		return ""
	}
	return m.Children[m.Cursor]
}

func (m BrowseModel) enter(name string) BrowseModel {
	m.Path = append(append([]string(nil), m.Path...), name)
	m.Children = m.o.Children(name)
	m.Cursor, m.Offset = 0, 0
	return m
}

func (m BrowseModel) leave() BrowseModel {
	if len(m.Path) < 2 {
		return m
	}
	from := m.Current()
	m.Path = m.Path[:len(m.Path)-1]
	m.Children = m.o.Children(m.Current())
	m.Cursor, m.Offset = 0, 0
	for i, c := range m.Children {
		if c == from {
			m = m.moveTo(i)
			break
		}
	}
	return m
}

func (m BrowseModel) moveTo(i int) BrowseModel {
	if i < 0 || i >= len(m.Children) {
		return m
	}
	m.Cursor = i
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveTo(m.Cursor - 1)
		case "down", "j":
			m = m.moveTo(m.Cursor + 1)
		case "enter", "right", "l":
			if sel := m.Selected(); sel != "" && m.o.DescendantCount(sel) > 0 {
				m = m.enter(sel)
			}
		case "backspace", "left", "h":
			m = m.leave()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m = m.moveTo(m.Cursor)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse"))
	b.WriteString("  ")
	b.WriteString(breadcrumbStyle.Render(strings.Join(m.Path, " › ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  ⌫ back  q quit"))
	b.WriteString("\n\n")

	if len(m.Children) == 0 {
		b.WriteString(listDimStyle.Render("  no subcategories"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Children))
	parent := m.Current()
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		name := m.Children[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		var others []string
		for _, p := range m.o.Parents(name) {
			if p != parent {
				others = append(others, p)
			}
		}
		also := "—"
		if len(others) > 0 {
			also = strings.Join(others, ", ")
		}
		rows = append(rows, []string{cursor, name, fmt.Sprint(m.o.DescendantCount(name)), also})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Category", "Descendants", "Also under").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Children) {
				return lipgloss.NewStyle()
			}
			leaf := m.o.DescendantCount(m.Children[idx]) == 0
			base := lipgloss.NewStyle()
			switch {
			case idx == m.Cursor && leaf:
				return base.Foreground(colorDim).Bold(true)
			case idx == m.Cursor:
				return base.Foreground(colorCyan).Bold(true)
			case col == 3 || leaf:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Children))))

	return b.String()
}
