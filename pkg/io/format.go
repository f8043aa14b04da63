package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/ontodag/pkg/dag"
	"github.com/matzehuels/ontodag/pkg/errors"
)

// Format names an interchange encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatOWL  Format = "owl"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatOWL}

// ParseFormat resolves a format name. Matching is case-insensitive and
// accepts the aliases "yml" and "rdf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "owl", "rdf", "xml":
		return FormatOWL, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (supported: json, yaml, owl)", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %s: no extension", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type used when serving f over HTTP.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatOWL:
		return "application/rdf+xml"
	default:
		return "application/octet-stream"
	}
}

// Option configures an import.
type Option func(*options)

type options struct {
	lenient   bool
	onDropped func(dag.Edge)
}

// Lenient drops edges that would close a cycle instead of failing the import.
// report, if non-nil, is called once per dropped edge.
func Lenient(report func(dag.Edge)) Option {
	return func(o *options) {
		o.lenient = true
		o.onDropped = report
	}
}
