package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/onto"
)

func sample(t *testing.T) *onto.Ontology {
	t.Helper()
	o := onto.New()
	steps := []struct {
		name   string
		supers []string
	}{
		{"Animal", nil},
		{"Mammal", []string{"Animal"}},
		{"Dog", []string{"Mammal"}},
		{"Black", nil},
		{"BlackDog", []string{"Dog", "Black"}},
		{"Pet", []string{onto.Root, "Animal"}},
	}
	for _, s := range steps {
		if err := o.Put(s.name, s.supers); err != nil {
			t.Fatalf("Put(%q) error = %v", s.name, err)
		}
	}
	return o
}

func TestFromOntology(t *testing.T) {
	g := FromOntology(sample(t))

	if g.Root != onto.Root {
		t.Errorf("Root = %q, want %q", g.Root, onto.Root)
	}
	if len(g.Nodes) != 7 {
		t.Fatalf("len(Nodes) = %d, want 7", len(g.Nodes))
	}
	if first := g.Nodes[0]; first.ID != onto.Root || first.Count != 6 || first.Label != "*: 6" {
		t.Errorf("Nodes[0] = %+v, want root with count 6", first)
	}

	pos := map[string]int{}
	for i, n := range g.Nodes {
		pos[n.ID] = i
	}
	for _, e := range g.Edges {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("parent %s listed after child %s", e.From, e.To)
		}
	}

	mammal := g.Nodes[pos["Mammal"]]
	want := Node{ID: "Mammal", Label: "Mammal: 2", Count: 2, Children: []string{"Dog"}}
	if diff := cmp.Diff(want, mammal); diff != "" {
		t.Errorf("Mammal node mismatch (-want +got):\n%s", diff)
	}
	if len(g.Edges) != 8 {
		t.Errorf("len(Edges) = %d, want 8", len(g.Edges))
	}
}

func TestLabel(t *testing.T) {
	if got := Label("Dog", 3); got != "Dog: 3" {
		t.Errorf("Label() = %q, want %q", got, "Dog: 3")
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	o := sample(t)
	doc := ToDocument(o)

	if doc.Root != onto.Root {
		t.Errorf("Root = %q, want %q", doc.Root, onto.Root)
	}
	if got := doc.Categories[len(doc.Categories)-1]; got.Name != "Pet" {
		t.Errorf("last category = %q, want Pet", got.Name)
	}

	back, err := ToOntology(doc)
	if err != nil {
		t.Fatalf("ToOntology() error = %v", err)
	}
	if diff := cmp.Diff(o.Edges(), back.Edges()); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(o.Names(), back.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if err := back.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestToOntology_ForeignRoot(t *testing.T) {
	doc := Document{
		Root: "Thing",
		Categories: []Category{
			{Name: "Animal", Parents: []string{"Thing"}},
			{Name: "Dog", Parents: []string{"Animal"}},
		},
	}

	o, err := ToOntology(doc)
	if err != nil {
		t.Fatalf("ToOntology() error = %v", err)
	}
	if got := o.Parents("Animal"); len(got) != 1 || got[0] != onto.Root {
		t.Errorf("Parents(Animal) = %v, want [%s]", got, onto.Root)
	}
	if o.Has("Thing") {
		t.Error("document root should not become a category")
	}
}

func TestToOntology_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want errors.Code
	}{
		{
			name: "undeclared parent",
			doc:  Document{Categories: []Category{{Name: "Dog", Parents: []string{"Mammal"}}}},
			want: errors.ErrCodeUnknownCategory,
		},
		{
			name: "cycle",
			doc: Document{Categories: []Category{
				{Name: "A", Parents: []string{"B"}},
				{Name: "B", Parents: []string{"A"}},
			}},
			want: errors.ErrCodeInvalidSupercategorySet,
		},
		{
			name: "empty name",
			doc:  Document{Categories: []Category{{Name: ""}}},
			want: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToOntology(tt.doc)
			if !errors.Is(err, tt.want) {
				t.Errorf("ToOntology() error = %v, want %s", err, tt.want)
			}
		})
	}
}
