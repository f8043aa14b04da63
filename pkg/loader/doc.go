// Package loader bulk-loads categories from tabular files.
//
// A [CSVLoader] reads a header-led CSV twice: an optional preprocess pass
// followed by a process pass. Each pass hands every row to a [RowFunc],
// which typically calls [onto.Ontology.Put]. Because the input is read twice
// it must be seekable; use [CSVLoader.LoadFile] for paths.
//
// [Mapping] builds the two RowFuncs for the common layout "one category per
// row, parents in named columns":
//
//	l := loader.Mapping{
//	    Name:    "Name",
//	    Parents: []string{"Larger Region", "Type"},
//	    Seeds:   []string{"Type"},
//	}.Loader()
//	stats, err := l.LoadFile(ctx, "geo.csv", o)
//
// Empty parent cells are ignored, so a row without parents lands under the
// root. Rows must be ordered so that a parent is created before it is used,
// either by an earlier row or by the preprocess pass.
package loader
