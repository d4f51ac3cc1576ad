// Package graph provides the RDF term and triple model shared by the
// representation builder, the codecs and the background data graph.
package graph

import (
	"sort"
	"strings"
)

// TermKind distinguishes the three RDF term forms
type TermKind int

const (
	KindIRI TermKind = iota
	KindBlank
	KindLiteral
)

// Term is an RDF term. Datatype and Lang apply to literals only.
type Term struct {
	Kind     TermKind `json:"kind"`
	Value    string   `json:"value"`
	Datatype string   `json:"datatype,omitempty"`
	Lang     string   `json:"lang,omitempty"`
}

// IRI creates an IRI term
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Blank creates a blank node term from its label, without the "_:" prefix
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(label, "_:")}
}

// Literal creates a plain string literal
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// TypedLiteral creates a literal with a datatype IRI
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral creates a language-tagged literal
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: lang}
}

// IsIRI reports whether the term is an IRI
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlank reports whether the term is a blank node
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsLiteral reports whether the term is a literal
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// String returns the N-Triples form of the term
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	default:
		s := `"` + literalEscaper.Replace(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	}
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Triple is a single RDF statement
type Triple struct {
	Subject   Term `json:"subject"`
	Predicate Term `json:"predicate"`
	Object    Term `json:"object"`
}

// T is shorthand for building a triple
func T(s, p, o Term) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// String returns the N-Triples line for the triple, without the newline
func (tr Triple) String() string {
	return tr.Subject.String() + " " + tr.Predicate.String() + " " + tr.Object.String() + " ."
}

// Graph is an immutable, indexed set of triples. It is safe for concurrent
// reads once built.
type Graph struct {
	triples   []Triple
	bySubject map[Term][]int
}

// New builds a graph from triples, dropping duplicates and keeping first-seen order
func New(triples []Triple) *Graph {
	g := &Graph{
		triples:   make([]Triple, 0, len(triples)),
		bySubject: make(map[Term][]int),
	}
	seen := make(map[Triple]struct{}, len(triples))
	for _, tr := range triples {
		if _, dup := seen[tr]; dup {
			continue
		}
		seen[tr] = struct{}{}
		g.bySubject[tr.Subject] = append(g.bySubject[tr.Subject], len(g.triples))
		g.triples = append(g.triples, tr)
	}
	return g
}

// Len returns the number of distinct triples
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.triples)
}

// Triples returns a copy of every triple in insertion order
func (g *Graph) Triples() []Triple {
	if g == nil {
		return nil
	}
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Objects returns the objects of (subject, predicate, ?) in insertion order
func (g *Graph) Objects(subject, predicate Term) []Term {
	if g == nil {
		return nil
	}
	var out []Term
	for _, i := range g.bySubject[subject] {
		if g.triples[i].Predicate == predicate {
			out = append(out, g.triples[i].Object)
		}
	}
	return out
}

// Value returns the first object of (subject, predicate, ?)
func (g *Graph) Value(subject, predicate Term) (Term, bool) {
	objs := g.Objects(subject, predicate)
	if len(objs) == 0 {
		return Term{}, false
	}
	return objs[0], true
}

// Subjects returns the distinct subjects of (?, predicate, object), sorted
func (g *Graph) Subjects(predicate, object Term) []Term {
	if g == nil {
		return nil
	}
	seen := make(map[Term]struct{})
	var out []Term
	for _, tr := range g.triples {
		if tr.Predicate != predicate || tr.Object != object {
			continue
		}
		if _, ok := seen[tr.Subject]; ok {
			continue
		}
		seen[tr.Subject] = struct{}{}
		out = append(out, tr.Subject)
	}
	SortTerms(out)
	return out
}

// SortTerms orders terms by their N-Triples form
func SortTerms(terms []Term) {
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].String() < terms[j].String()
	})
}
