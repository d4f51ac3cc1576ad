package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"

	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// TripleCodec handles the line and Turtle family of syntaxes
type TripleCodec struct {
	syntax Syntax
	format rdf.Format
}

// NewTurtleCodec creates a Turtle codec
func NewTurtleCodec() *TripleCodec {
	return &TripleCodec{syntax: SyntaxTurtle, format: rdf.Turtle}
}

// NewN3Codec creates an N3 codec; the Turtle output is valid N3
func NewN3Codec() *TripleCodec {
	return &TripleCodec{syntax: SyntaxN3, format: rdf.Turtle}
}

// NewNTriplesCodec creates an N-Triples codec
func NewNTriplesCodec() *TripleCodec {
	return &TripleCodec{syntax: SyntaxNTriples, format: rdf.NTriples}
}

// Format returns the codec syntax
func (c *TripleCodec) Format() Syntax {
	return c.syntax
}

// Export serializes triples in order. Turtle output only abbreviates the
// known vocabulary namespaces; every other IRI is written in full.
func (c *TripleCodec) Export(triples []graph.Triple, w io.Writer) error {
	enc := rdf.NewTripleEncoder(w, c.format)
	if c.format == rdf.Turtle {
		enc.GenerateNamespaces = false
		for _, prefix := range vocab.PrefixNames() {
			enc.Namespaces[vocab.Prefixes[prefix]] = prefix
		}
	}

	for _, tr := range triples {
		t, err := toRDF(tr)
		if err != nil {
			return fmt.Errorf("failed to convert triple %s: %w", tr, err)
		}
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("failed to encode %s: %w", c.syntax, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", c.syntax, err)
	}
	return nil
}

// Parse reads every triple from r
func (c *TripleCodec) Parse(r io.Reader) ([]graph.Triple, error) {
	return decodeAll(rdf.NewTripleDecoder(r, c.format), c.syntax)
}

func decodeAll(dec rdf.TripleDecoder, syntax Syntax) ([]graph.Triple, error) {
	var out []graph.Triple
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", syntax, err)
		}
		tr, err := fromRDF(t)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", syntax, err)
		}
		out = append(out, tr)
	}
}

func toRDF(tr graph.Triple) (rdf.Triple, error) {
	subj, err := toSubject(tr.Subject)
	if err != nil {
		return rdf.Triple{}, err
	}
	pred, err := rdf.NewIRI(tr.Predicate.Value)
	if err != nil {
		return rdf.Triple{}, err
	}
	obj, err := toObject(tr.Object)
	if err != nil {
		return rdf.Triple{}, err
	}
	return rdf.Triple{Subj: subj, Pred: pred, Obj: obj}, nil
}

func toSubject(t graph.Term) (rdf.Subject, error) {
	switch t.Kind {
	case graph.KindIRI:
		return rdf.NewIRI(t.Value)
	case graph.KindBlank:
		return rdf.NewBlank(t.Value)
	default:
		return nil, fmt.Errorf("literal %q cannot be a subject", t.Value)
	}
}

func toObject(t graph.Term) (rdf.Object, error) {
	switch t.Kind {
	case graph.KindIRI:
		return rdf.NewIRI(t.Value)
	case graph.KindBlank:
		return rdf.NewBlank(t.Value)
	}
	if t.Lang != "" {
		return rdf.NewLangLiteral(t.Value, t.Lang)
	}
	if t.Datatype != "" && t.Datatype != xsdString {
		dt, err := rdf.NewIRI(t.Datatype)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(t.Value, dt), nil
	}
	return rdf.NewLiteral(t.Value)
}

func fromRDF(t rdf.Triple) (graph.Triple, error) {
	subj, err := fromTerm(t.Subj)
	if err != nil {
		return graph.Triple{}, err
	}
	obj, err := fromTerm(t.Obj)
	if err != nil {
		return graph.Triple{}, err
	}
	return graph.T(subj, graph.IRI(t.Pred.String()), obj), nil
}

const xsdString = vocab.XSD + "string"

func fromTerm(t rdf.Term) (graph.Term, error) {
	switch t.Type() {
	case rdf.TermIRI:
		return graph.IRI(t.String()), nil
	case rdf.TermBlank:
		return graph.Blank(t.String()), nil
	case rdf.TermLiteral:
		lit, ok := t.(rdf.Literal)
		if !ok {
			return graph.Term{}, fmt.Errorf("unexpected literal term %T", t)
		}
		if lang := lit.Lang(); lang != "" {
			return graph.LangLiteral(lit.String(), lang), nil
		}
		dt := lit.DataType.String()
		if dt == "" || dt == xsdString {
			return graph.Literal(lit.String()), nil
		}
		return graph.TypedLiteral(lit.String(), dt), nil
	default:
		return graph.Term{}, fmt.Errorf("unsupported term %q", strings.TrimSpace(t.String()))
	}
}
