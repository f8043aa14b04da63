package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ontodag/pkg/dag/transform"
	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/graph"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// Import decodes an ontology from r in the given format.
//
// Every category is added before any edge, so the result reproduces the
// source's category and edge sets exactly. Categories without a parent are
// placed under the root. Import fails with INVALID_FORMAT for malformed
// input, INVALID_INPUT for unusable names, UNKNOWN_CATEGORY for an
// undeclared parent and INVALID_SUPERCATEGORY_SET for cyclic input (unless
// [Lenient] is given).
//
// The returned ontology is independent of r. Import does not close r.
func Import(r io.Reader, format Format, opts ...Option) (*onto.Ontology, error) {
	var (
		doc graph.Document
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = decodeJSON(r)
	case FormatYAML:
		doc, err = decodeYAML(r)
	case FormatOWL:
		doc, err = decodeOWL(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return build(doc, opts)
}

// ImportFile reads path, choosing the format from the extension.
func ImportFile(path string, opts ...Option) (*onto.Ontology, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Import(f, format, opts...)
}

// ReadJSON decodes a document written by [WriteJSON].
func ReadJSON(r io.Reader, opts ...Option) (*onto.Ontology, error) {
	return Import(r, FormatJSON, opts...)
}

// ReadYAML decodes a document written by [WriteYAML].
func ReadYAML(r io.Reader, opts ...Option) (*onto.Ontology, error) {
	return Import(r, FormatYAML, opts...)
}

func decodeJSON(r io.Reader) (graph.Document, error) {
	var doc graph.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return doc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return doc, nil
}

func decodeYAML(r io.Reader) (graph.Document, error) {
	var doc graph.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return doc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return doc, nil
}

func build(doc graph.Document, opts []Option) (*onto.Ontology, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	names := doc.Names()
	if err := errors.ValidateCategoryNames(names); err != nil {
		return nil, err
	}
	if !cfg.lenient {
		return graph.ToOntology(doc)
	}

	edges, dropped := transform.BreakCycles(append([]string{onto.Root}, names...), doc.Edges())
	if cfg.onDropped != nil {
		for _, e := range dropped {
			cfg.onDropped(e)
		}
	}
	return onto.Build(names, edges)
}
