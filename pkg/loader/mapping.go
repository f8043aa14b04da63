package loader

import (
	"slices"
	"strings"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// Mapping describes a column layout where each row names one category and
// the columns holding its parents.
//
// For a file with columns Name, Larger Region and Type:
//
//	m := loader.Mapping{
//	    Name:    "Name",
//	    Parents: []string{"Larger Region", "Type"},
//	    Seeds:   []string{"Type"},
//	}
//
// puts every Type value under the root first, then every Name under its
// region and its type.
type Mapping struct {
	Name      string   // column holding the category name
	Parents   []string // columns holding parent names
	Seeds     []string // columns whose values are put under the root in the preprocess pass
	Separator string   // optional: split parent cells on this string
	Optimized bool     // use optimized attachment
}

// Validate checks that the mapping names a category column.
func (m Mapping) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "mapping needs a name column")
	}
	return nil
}

// Loader returns a CSVLoader driven by m.
func (m Mapping) Loader() *CSVLoader {
	l := &CSVLoader{Process: m.process}
	if len(m.Seeds) > 0 {
		l.Preprocess = m.preprocess
	}
	return l
}

func (m Mapping) preprocess(row Row, o *onto.Ontology) error {
	for _, col := range m.Seeds {
		for _, v := range m.values(row, col) {
			if o.Has(v) {
				continue
			}
			if err := errors.ValidateCategoryName(v); err != nil {
				return err
			}
			if err := o.Put(v, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m Mapping) process(row Row, o *onto.Ontology) error {
	name := row.Get(m.Name)
	if name == "" {
		return ErrSkipRow
	}
	if err := errors.ValidateCategoryName(name); err != nil {
		return err
	}

	var parents []string
	for _, col := range m.Parents {
		for _, v := range m.values(row, col) {
			if v != name && !slices.Contains(parents, v) {
				parents = append(parents, v)
			}
		}
	}

	var opts []onto.PutOption
	if m.Optimized {
		opts = append(opts, onto.WithOptimized())
	}
	return o.Put(name, parents, opts...)
}

func (m Mapping) values(row Row, col string) []string {
	v := row.Get(col)
	if v == "" {
		return nil
	}
	if m.Separator == "" {
		return []string{v}
	}
	var out []string
	for _, part := range strings.Split(v, m.Separator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
