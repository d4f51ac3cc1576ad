package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"tb16pix/internal/graph"
)

// Syntax names an RDF serialization
type Syntax string

const (
	SyntaxTurtle   Syntax = "turtle"
	SyntaxN3       Syntax = "n3"
	SyntaxNTriples Syntax = "nt"
	SyntaxJSONLD   Syntax = "json-ld"
	SyntaxRDFXML   Syntax = "xml"
)

// Importer interface for reading triples from a serialization
type Importer interface {
	Parse(r io.Reader) ([]graph.Triple, error)
	Format() Syntax
}

// Exporter interface for writing triples to a serialization
type Exporter interface {
	Export(triples []graph.Triple, w io.Writer) error
	Format() Syntax
}

// ExporterFor returns the exporter for a syntax
func ExporterFor(syntax Syntax) (Exporter, error) {
	switch syntax {
	case SyntaxTurtle:
		return NewTurtleCodec(), nil
	case SyntaxN3:
		return NewN3Codec(), nil
	case SyntaxNTriples:
		return NewNTriplesCodec(), nil
	case SyntaxJSONLD:
		return NewJSONLDCodec(), nil
	case SyntaxRDFXML:
		return NewRDFXMLCodec(), nil
	default:
		return nil, fmt.Errorf("no exporter for syntax %q", syntax)
	}
}

// SyntaxForFile picks a syntax from a file extension
func SyntaxForFile(name string) (Syntax, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttl":
		return SyntaxTurtle, true
	case ".n3":
		return SyntaxN3, true
	case ".nt":
		return SyntaxNTriples, true
	case ".jsonld":
		return SyntaxJSONLD, true
	case ".rdf":
		return SyntaxRDFXML, true
	default:
		return "", false
	}
}

// ImporterFor returns the importer for a syntax
func ImporterFor(syntax Syntax) (Importer, error) {
	switch syntax {
	case SyntaxTurtle, SyntaxN3:
		return NewTurtleCodec(), nil
	case SyntaxNTriples:
		return NewNTriplesCodec(), nil
	case SyntaxJSONLD:
		return NewJSONLDCodec(), nil
	case SyntaxRDFXML:
		return NewRDFXMLCodec(), nil
	default:
		return nil, fmt.Errorf("no importer for syntax %q", syntax)
	}
}
