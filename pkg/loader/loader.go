package loader

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// Row is one CSV record keyed by header name.
type Row struct {
	Line   int
	fields map[string]string
}

// Get returns the trimmed value of column, or "" if the column is absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.fields[column])
}

// RowFunc applies one row to an ontology.
type RowFunc func(row Row, o *onto.Ontology) error

// Stats summarizes a load.
type Stats struct {
	Rows    int // data rows read in the process pass
	Skipped int // rows a RowFunc reported as skipped
}

// ErrSkipRow may be returned by a RowFunc to skip a row without failing the
// load.
var ErrSkipRow = errors.New(errors.ErrCodeInvalidInput, "row skipped")

// CSVLoader loads an ontology from a header-led CSV file in two passes.
// Preprocess (optional) sees every row first, typically to create the
// categories other rows refer to; Process then sees every row again.
type CSVLoader struct {
	Preprocess RowFunc
	Process    RowFunc
	Comma      rune        // field delimiter; ',' if zero
	Logger     *log.Logger // optional
}

// LoadFile opens path and calls Load.
func (l *CSVLoader) LoadFile(ctx context.Context, path string, o *onto.Ontology) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Stats{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Stats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return l.Load(ctx, f, o)
}

// Load runs the preprocess pass (if any) and the process pass over r,
// rewinding between them. A failing row aborts the load; the error carries
// the row's line number and keeps the code of the underlying failure. Rows
// already applied stay applied.
func (l *CSVLoader) Load(ctx context.Context, r io.ReadSeeker, o *onto.Ontology) (Stats, error) {
	if l.Process == nil {
		return Stats{}, errors.New(errors.ErrCodeInvalidInput, "loader has no process function")
	}

	if l.Preprocess != nil {
		if _, err := l.pass(ctx, r, o, "preprocess", l.Preprocess); err != nil {
			return Stats{}, err
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return Stats{}, fmt.Errorf("rewind: %w", err)
		}
	}
	return l.pass(ctx, r, o, "process", l.Process)
}

func (l *CSVLoader) pass(ctx context.Context, r io.Reader, o *onto.Ontology, name string, fn RowFunc) (Stats, error) {
	cr := csv.NewReader(r)
	if l.Comma != 0 {
		cr.Comma = l.Comma
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
		}
		line, _ := cr.FieldPos(0)

		row := Row{Line: line, fields: make(map[string]string, len(header))}
		for i, col := range header {
			if i < len(record) {
				row.fields[col] = record[i]
			}
		}

		stats.Rows++
		if err := fn(row, o); err != nil {
			if stderrors.Is(err, ErrSkipRow) {
				stats.Skipped++
				continue
			}
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInvalidInput
			}
			return stats, errors.Wrap(code, err, "%s row %d", name, line)
		}
	}

	if l.Logger != nil {
		l.Logger.Debug("csv pass complete", "pass", name, "rows", stats.Rows, "skipped", stats.Skipped)
	}
	return stats, nil
}
