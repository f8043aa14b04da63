package onto

import (
	"slices"
	"testing"

	"github.com/matzehuels/ontodag/pkg/dag"
	errs "github.com/matzehuels/ontodag/pkg/errors"
)

func TestClone_Independent(t *testing.T) {
	o := animals(t)
	c := o.Clone()

	if !slices.Equal(c.Edges(), o.Edges()) {
		t.Fatalf("Clone().Edges() = %v, want %v", c.Edges(), o.Edges())
	}
	if err := c.Remove("Mammal"); err != nil {
		t.Fatal(err)
	}
	if !o.Has("Mammal") {
		t.Error("removing from the clone affected the original")
	}
	if got := o.DescendantCount("Animal"); got != 5 {
		t.Errorf("original DescendantCount(Animal) = %d, want 5", got)
	}
}

func TestIntersection(t *testing.T) {
	a := build(t, put{"Animal", nil}, put{"Mammal", []string{"Animal"}}, put{"Dog", []string{"Mammal"}})
	b := build(t, put{"Mammal", nil}, put{"Dog", []string{"Mammal"}}, put{"Cat", []string{"Mammal"}})

	got := Intersection(a, b)

	if names := got.Names(); !slices.Equal(names, []string{Root, "Mammal", "Dog"}) {
		t.Errorf("Names() = %v, want [* Mammal Dog]", names)
	}
	want := []dag.Edge{{From: Root, To: "Dog"}, {From: Root, To: "Mammal"}}
	if !slices.Equal(got.Edges(), want) {
		t.Errorf("Edges() = %v, want %v", got.Edges(), want)
	}
	mustValid(t, got)
}

func TestIntersection_Disjoint(t *testing.T) {
	a := build(t, put{"A", nil})
	b := build(t, put{"B", nil})

	got := Intersection(a, b)
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
}

func TestPrune(t *testing.T) {
	o := letters(t)

	if err := o.Prune("B", "C"); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	if names := o.Names(); !slices.Equal(names, []string{Root, "B", "C", "BC", "ABC"}) {
		t.Errorf("Names() = %v, want [* B C BC ABC]", names)
	}
	want := []dag.Edge{
		{From: Root, To: "B"},
		{From: Root, To: "C"},
		{From: "B", To: "BC"},
		{From: "BC", To: "ABC"},
		{From: "C", To: "BC"},
	}
	if got := o.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if got := o.DescendantCount("B"); got != 2 {
		t.Errorf("DescendantCount(B) = %d, want 2", got)
	}
	mustValid(t, o)
}

func TestPrune_Errors(t *testing.T) {
	o := letters(t)
	before := o.Edges()

	if err := o.Prune("B", "Nonexistent"); !errs.Is(err, errs.ErrCodeUnknownCategory) {
		t.Errorf("Prune() error = %v, want %s", err, errs.ErrCodeUnknownCategory)
	}
	if err := o.Prune(); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Prune() with no categories error = %v, want %s", err, errs.ErrCodeInvalidInput)
	}
	if !slices.Equal(o.Edges(), before) {
		t.Error("failed Prune() changed the ontology")
	}
}

func TestCopySubDAG(t *testing.T) {
	o := animals(t)

	c, err := o.CopySubDAG("Dog", "Mammal", "BlackDog")
	if err != nil {
		t.Fatalf("CopySubDAG() error = %v", err)
	}

	want := []dag.Edge{
		{From: Root, To: "Mammal"},
		{From: "Dog", To: "BlackDog"},
		{From: "Mammal", To: "Dog"},
	}
	if got := c.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if got := c.DescendantCount(Root); got != 3 {
		t.Errorf("DescendantCount(root) = %d, want 3", got)
	}
	mustValid(t, c)

	if err := c.Remove("Dog"); err != nil {
		t.Fatal(err)
	}
	if !o.Has("Dog") || o.DescendantCount("Mammal") != 3 {
		t.Error("mutating the copy affected the source")
	}
}

func TestCopySubDAG_UnknownCategory(t *testing.T) {
	o := animals(t)
	if _, err := o.CopySubDAG("Dog", "Nonexistent"); !errs.Is(err, errs.ErrCodeUnknownCategory) {
		t.Errorf("CopySubDAG() error = %v, want %s", err, errs.ErrCodeUnknownCategory)
	}
}

func TestGetAsDAG(t *testing.T) {
	o := animals(t)

	q, err := o.GetAsDAG("Mammal", "Black")
	if err != nil {
		t.Fatalf("GetAsDAG() error = %v", err)
	}

	want := []dag.Edge{
		{From: Root, To: "Black"},
		{From: Root, To: "Mammal"},
		{From: "Black", To: "BlackDog"},
		{From: "Mammal", To: "BlackDog"},
	}
	if got := q.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if got := q.DescendantCount(Root); got != 3 {
		t.Errorf("DescendantCount(root) = %d, want 3", got)
	}
	mustValid(t, q)
}

func TestGetAsDAG_NestedCategories(t *testing.T) {
	o := animals(t)

	q, err := o.GetAsDAG("Animal", "Mammal")
	if err != nil {
		t.Fatal(err)
	}

	if got := q.Parents("Mammal"); !slices.Equal(got, []string{"Animal"}) {
		t.Errorf("Parents(Mammal) = %v, want [Animal]", got)
	}
	for _, d := range []string{"BlackDog", "Cat", "Dog"} {
		if got := q.Parents(d); !slices.Equal(got, []string{"Mammal"}) {
			t.Errorf("Parents(%s) = %v, want [Mammal]", d, got)
		}
	}
	if got := q.Children(Root); !slices.Equal(got, []string{"Animal"}) {
		t.Errorf("Children(root) = %v, want [Animal]", got)
	}
	mustValid(t, q)
}

func TestGetAsDAG_Errors(t *testing.T) {
	o := animals(t)
	if _, err := o.GetAsDAG("Nonexistent"); !errs.Is(err, errs.ErrCodeUnknownCategory) {
		t.Errorf("GetAsDAG() error = %v, want %s", err, errs.ErrCodeUnknownCategory)
	}

	q, err := o.GetAsDAG()
	if err != nil {
		t.Fatal(err)
	}
	if q.Len() != 0 {
		t.Errorf("GetAsDAG() with no categories Len() = %d, want 0", q.Len())
	}
}
