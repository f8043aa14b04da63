package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/graph"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// Export writes o to w in the given format.
func Export(o *onto.Ontology, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(o, w)
	case FormatYAML:
		return WriteYAML(o, w)
	case FormatOWL:
		return WriteOWL(o, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

// ExportFile writes o to path, choosing the format from the extension.
func ExportFile(o *onto.Ontology, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Export(o, f, format)
}

// WriteJSON encodes o as an interchange document:
//
//	{
//	  "root": "*",
//	  "categories": [{"name": "Animal", "parents": ["*"]}]
//	}
//
// The output can be re-imported with [ReadJSON].
func WriteJSON(o *onto.Ontology, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(graph.ToDocument(o)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes o as the YAML form of the interchange document.
func WriteYAML(o *onto.Ontology, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(graph.ToDocument(o)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}
