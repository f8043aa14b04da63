package io

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/graph"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// Namespaces used by the OWL RDF/XML encoding.
const (
	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"
	owlNS  = "http://www.w3.org/2002/07/owl#"

	// DefaultOWLBase is the ontology IRI written by WriteOWL.
	DefaultOWLBase = "http://ontodag.local/ontology"
)

var owlThing = owlNS + "Thing"

// Output structs spell prefixes out literally; encoding/xml writes such
// names verbatim.
type rdfDocument struct {
	XMLName  xml.Name      `xml:"rdf:RDF"`
	RDF      string        `xml:"xmlns:rdf,attr"`
	RDFS     string        `xml:"xmlns:rdfs,attr"`
	OWL      string        `xml:"xmlns:owl,attr"`
	Base     string        `xml:"xml:base,attr"`
	Ontology rdfAbout      `xml:"owl:Ontology"`
	Classes  []owlClassOut `xml:"owl:Class"`
}

type rdfAbout struct {
	About string `xml:"rdf:about,attr"`
}

type owlClassOut struct {
	About      string        `xml:"rdf:about,attr"`
	SubClassOf []rdfResource `xml:"rdfs:subClassOf"`
}

type rdfResource struct {
	Resource string `xml:"rdf:resource,attr"`
}

// Input structs match on namespace URIs, since prefixes are resolved by the
// decoder.
type owlClassIn struct {
	About      string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
	ID         string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# ID,attr"`
	SubClassOf []struct {
		Resource string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# resource,attr"`
	} `xml:"http://www.w3.org/2000/01/rdf-schema# subClassOf"`
}

// WriteOWL encodes o as OWL in RDF/XML. Every category except the root
// becomes an owl:Class with one rdfs:subClassOf per parent; the root is
// written as owl:Thing. Names are percent-escaped in the IRI fragment.
func WriteOWL(o *onto.Ontology, w io.Writer) error {
	iri := func(name string) string {
		if name == o.Root() {
			return owlThing
		}
		return DefaultOWLBase + "#" + url.PathEscape(name)
	}

	doc := rdfDocument{
		RDF:      rdfNS,
		RDFS:     rdfsNS,
		OWL:      owlNS,
		Base:     DefaultOWLBase,
		Ontology: rdfAbout{About: DefaultOWLBase},
	}
	for _, c := range graph.Categories(o) {
		class := owlClassOut{About: iri(c.Name)}
		for _, p := range c.Parents {
			class.SubClassOf = append(class.SubClassOf, rdfResource{Resource: iri(p)})
		}
		doc.Classes = append(doc.Classes, class)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ReadOWL decodes owl:Class declarations and their rdfs:subClassOf links.
// owl:Thing is mapped to the root. Other RDF content is ignored.
func ReadOWL(r io.Reader, opts ...Option) (*onto.Ontology, error) {
	return Import(r, FormatOWL, opts...)
}

func decodeOWL(r io.Reader) (graph.Document, error) {
	doc := graph.Document{Root: onto.Root}
	index := map[string]int{}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return doc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode owl")
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Space != owlNS || se.Name.Local != "Class" {
			continue
		}

		var c owlClassIn
		if err := dec.DecodeElement(&c, &se); err != nil {
			return doc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode owl class")
		}
		ref := c.About
		if ref == "" {
			ref = "#" + c.ID
		}
		if ref == "#" || ref == owlThing {
			continue
		}

		name := nameFromIRI(ref)
		i, seen := index[name]
		if !seen {
			i = len(doc.Categories)
			index[name] = i
			doc.Categories = append(doc.Categories, graph.Category{Name: name})
		}
		for _, sc := range c.SubClassOf {
			switch {
			case sc.Resource == "":
				// Anonymous restrictions carry no named parent.
			case sc.Resource == owlThing:
				doc.Categories[i].Parents = append(doc.Categories[i].Parents, onto.Root)
			default:
				doc.Categories[i].Parents = append(doc.Categories[i].Parents, nameFromIRI(sc.Resource))
			}
		}
	}
	return doc, nil
}

// nameFromIRI returns the unescaped fragment of iri, or its last path segment
// when there is no fragment.
func nameFromIRI(iri string) string {
	frag := iri
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		frag = iri[i+1:]
	} else if i := strings.LastIndex(iri, "/"); i >= 0 {
		frag = iri[i+1:]
	}
	if name, err := url.PathUnescape(frag); err == nil {
		return name
	}
	return frag
}
