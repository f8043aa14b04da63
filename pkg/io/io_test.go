package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontodag/pkg/dag"
	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/onto"
)

func sample(t *testing.T) *onto.Ontology {
	t.Helper()
	o := onto.New()
	require.NoError(t, o.Put("Animal", nil))
	require.NoError(t, o.Put("Mammal", []string{"Animal"}))
	require.NoError(t, o.Put("Dog", []string{"Mammal"}))
	require.NoError(t, o.Put("Has colour", nil))
	require.NoError(t, o.Put("Black", []string{"Has colour"}))
	require.NoError(t, o.Put("Black Dog", []string{"Dog", "Black"}))
	require.NoError(t, o.Put("Pet#1", []string{onto.Root, "Animal"}))
	return o
}

func TestRoundTrip(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			o := sample(t)

			var buf bytes.Buffer
			require.NoError(t, Export(o, &buf, format))

			back, err := Import(&buf, format)
			require.NoError(t, err)

			if diff := cmp.Diff(o.Edges(), back.Edges()); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
			assert.ElementsMatch(t, o.Names(), back.Names())
			assert.Equal(t, o.DescendantCount("Animal"), back.DescendantCount("Animal"))
			assert.NoError(t, back.Validate())
		})
	}
}

func TestRoundTrip_File(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.yaml", "out.yml", "out.owl", "out.rdf"} {
		t.Run(name, func(t *testing.T) {
			o := sample(t)
			path := filepath.Join(dir, name)
			require.NoError(t, ExportFile(o, path))

			back, err := ImportFile(path)
			require.NoError(t, err)
			assert.Equal(t, o.Edges(), back.Edges())
		})
	}
}

func TestWriteJSON_Shape(t *testing.T) {
	o := onto.New()
	require.NoError(t, o.Put("Animal", nil))
	require.NoError(t, o.Put("Dog", []string{"Animal"}))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(o, &buf))

	want := `{
  "root": "*",
  "categories": [
    {
      "name": "Animal",
      "parents": [
        "*"
      ]
    },
    {
      "name": "Dog",
      "parents": [
        "Animal"
      ]
    }
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteOWL_Thing(t *testing.T) {
	o := onto.New()
	require.NoError(t, o.Put("Has colour", nil))

	var buf bytes.Buffer
	require.NoError(t, WriteOWL(o, &buf))
	out := buf.String()

	assert.Contains(t, out, `<owl:Class rdf:about="http://ontodag.local/ontology#Has%20colour">`)
	assert.Contains(t, out, `<rdfs:subClassOf rdf:resource="http://www.w3.org/2002/07/owl#Thing">`)
	assert.NotContains(t, out, "#*")
}

func TestReadOWL_Foreign(t *testing.T) {
	src := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#"
         xml:base="http://example.org/zoo.owl">
  <owl:Ontology rdf:about="http://example.org/zoo.owl"/>
  <owl:Class rdf:about="#Animal">
    <rdfs:subClassOf rdf:resource="http://www.w3.org/2002/07/owl#Thing"/>
  </owl:Class>
  <owl:Class rdf:ID="Mammal">
    <rdfs:subClassOf rdf:resource="#Animal"/>
    <rdfs:subClassOf>
      <owl:Restriction/>
    </rdfs:subClassOf>
  </owl:Class>
  <owl:Class rdf:about="http://example.org/zoo.owl#Dog">
    <rdfs:subClassOf rdf:resource="http://example.org/zoo.owl#Mammal"/>
  </owl:Class>
  <owl:Class rdf:about="http://example.org/zoo.owl#Stray"/>
</rdf:RDF>`

	o, err := ReadOWL(strings.NewReader(src))
	require.NoError(t, err)

	want := []dag.Edge{
		{From: onto.Root, To: "Animal"},
		{From: onto.Root, To: "Stray"},
		{From: "Animal", To: "Mammal"},
		{From: "Mammal", To: "Dog"},
	}
	assert.Equal(t, want, o.Edges())
	assert.Equal(t, 2, o.DescendantCount("Animal"))
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   errors.Code
	}{
		{"malformed json", FormatJSON, `{"categories": [`, errors.ErrCodeInvalidFormat},
		{"malformed yaml", FormatYAML, "categories: [", errors.ErrCodeInvalidFormat},
		{"malformed owl", FormatOWL, "<rdf:RDF><owl:Class>", errors.ErrCodeInvalidFormat},
		{"unknown format", Format("csv"), "", errors.ErrCodeInvalidFormat},
		{"undeclared parent", FormatJSON, `{"categories":[{"name":"Dog","parents":["Mammal"]}]}`, errors.ErrCodeUnknownCategory},
		{"cycle", FormatJSON, `{"categories":[{"name":"A","parents":["B"]},{"name":"B","parents":["A"]}]}`, errors.ErrCodeInvalidSupercategorySet},
		{"control character", FormatJSON, `{"categories":[{"name":"A\nB"}]}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "error = %v, want %s", err, tt.want)
		})
	}
}

func TestImport_Lenient(t *testing.T) {
	src := `{"root":"*","categories":[
		{"name":"A","parents":["*","C"]},
		{"name":"B","parents":["A"]},
		{"name":"C","parents":["B"]}
	]}`

	var dropped []dag.Edge
	o, err := Import(strings.NewReader(src), FormatJSON, Lenient(func(e dag.Edge) {
		dropped = append(dropped, e)
	}))
	require.NoError(t, err)

	assert.Len(t, dropped, 1)
	assert.NoError(t, o.Validate())
	assert.Equal(t, 3, o.Len())
}

func TestImport_YAMLEmpty(t *testing.T) {
	o, err := Import(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0, o.Len())
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.json", FormatJSON},
		{"a.YAML", FormatYAML},
		{"dir/a.yml", FormatYAML},
		{"a.owl", FormatOWL},
		{"a.rdf", FormatOWL},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFromPath("noext")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	_, err = FormatFromPath("a.csv")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestImportFile_Missing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "error = %v", err)
}

func TestExportFile_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "o.yaml")
	require.NoError(t, ExportFile(sample(t), path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "root:")
	assert.Contains(t, string(data), "Black Dog")
}
