package cli

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ontodag/pkg/onto"
)

func zoo(t *testing.T) *onto.Ontology {
	t.Helper()
	o := onto.New()
	for _, p := range []struct {
		name    string
		parents []string
	}{
		{"Animal", nil},
		{"Pet", nil},
		{"Bird", []string{"Animal"}},
		{"Mammal", []string{"Animal"}},
		{"Dog", []string{"Mammal", "Pet"}},
	} {
		if err := o.Put(p.name, p.parents); err != nil {
			t.Fatal(err)
		}
	}
	return o
}

func press(m BrowseModel, keys ...tea.KeyType) BrowseModel {
	for _, k := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: k})
		m = next.(BrowseModel)
	}
	return m
}

func TestBrowseModel_Navigate(t *testing.T) {
	m := NewBrowseModel(zoo(t))

	if got := m.Children; !slices.Equal(got, []string{"Animal", "Pet"}) {
		t.Fatalf("root children = %v, want [Animal Pet]", got)
	}

	m = press(m, tea.KeyEnter)
	if got := m.Path; !slices.Equal(got, []string{onto.Root, "Animal"}) {
		t.Errorf("Path = %v after enter", got)
	}

	m = press(m, tea.KeyDown, tea.KeyEnter)
	if got := m.Current(); got != "Mammal" {
		t.Errorf("Current() = %q, want Mammal", got)
	}
	if got := m.Selected(); got != "Dog" {
		t.Errorf("Selected() = %q, want Dog", got)
	}

	// Dog is a leaf; entering it is a no-op.
	m = press(m, tea.KeyEnter)
	if got := m.Current(); got != "Mammal" {
		t.Errorf("Current() = %q after entering a leaf, want Mammal", got)
	}

	// Going back restores the cursor on the category we came from.
	m = press(m, tea.KeyBackspace)
	if got := m.Selected(); got != "Mammal" {
		t.Errorf("Selected() = %q after back, want Mammal", got)
	}
	m = press(m, tea.KeyLeft, tea.KeyLeft)
	if got := m.Path; !slices.Equal(got, []string{onto.Root}) {
		t.Errorf("Path = %v, want [*]", got)
	}
}

func TestBrowseModel_CursorBounds(t *testing.T) {
	m := NewBrowseModel(zoo(t))
	m = press(m, tea.KeyUp)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", m.Cursor)
	}
	m = press(m, tea.KeyDown, tea.KeyDown, tea.KeyDown)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after moving past the end, want 1", m.Cursor)
	}
}

func TestBrowseModel_Scroll(t *testing.T) {
	o := onto.New()
	for _, n := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		if err := o.Put(n, nil); err != nil {
			t.Fatal(err)
		}
	}
	m := NewBrowseModel(o)
	m.Height = 3

	m = press(m, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown)
	if m.Cursor != 4 || m.Offset != 2 {
		t.Errorf("Cursor, Offset = %d, %d, want 4, 2", m.Cursor, m.Offset)
	}
	view := m.View()
	if strings.Contains(view, " A ") || !strings.Contains(view, "E") {
		t.Errorf("View() shows the wrong window:\n%s", view)
	}
}

func TestBrowseModel_View(t *testing.T) {
	m := press(NewBrowseModel(zoo(t)), tea.KeyDown, tea.KeyEnter)
	view := m.View()

	for _, want := range []string{"Browse", "Pet", "Dog", "Mammal", "[1/1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseModel_Quit(t *testing.T) {
	m := NewBrowseModel(zoo(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q did not return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
