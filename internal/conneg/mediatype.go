// Package conneg selects a (profile, mediatype) pair for a request from the
// Accept header, the Accept-Profile header and explicit query parameters.
// Selection is deterministic and holds no state.
package conneg

import (
	"strings"

	"tb16pix/internal/codec"
)

// Mediatype is one entry of the closed mediatype table
type Mediatype struct {
	Type        string       // e.g. "text/turtle"
	Token       string       // file-extension token, e.g. "ttl"
	ContentType string       // outbound Content-Type header
	Label       string       // display name
	Syntax      codec.Syntax // empty for HTML
}

var (
	HTML     = Mediatype{"text/html", "html", "text/html; charset=utf-8", "HTML", ""}
	JSON     = Mediatype{"application/json", "json", "application/json", "JSON", codec.SyntaxJSONLD}
	Turtle   = Mediatype{"text/turtle", "ttl", "text/turtle; charset=utf-8", "Turtle", codec.SyntaxTurtle}
	RDFXML   = Mediatype{"application/rdf+xml", "rdf", "application/rdf+xml", "RDF/XML", codec.SyntaxRDFXML}
	JSONLD   = Mediatype{"application/ld+json", "jsonld", "application/ld+json", "JSON-LD", codec.SyntaxJSONLD}
	N3       = Mediatype{"text/n3", "n3", "text/n3; charset=utf-8", "Notation-3", codec.SyntaxN3}
	NTriples = Mediatype{"application/n-triples", "nt", "application/n-triples", "N-Triples", codec.SyntaxNTriples}
)

// Mediatypes is the closed table in display order
var Mediatypes = []Mediatype{HTML, JSON, Turtle, RDFXML, JSONLD, N3, NTriples}

// RDFMediatypes lists the RDF serializations in display order
var RDFMediatypes = []Mediatype{Turtle, RDFXML, JSONLD, N3, NTriples}

// LookupMediatype finds a table entry by full type or extension token.
// Parameters such as "; charset=utf-8" are ignored.
func LookupMediatype(token string) (Mediatype, bool) {
	if i := strings.IndexByte(token, ';'); i >= 0 {
		token = token[:i]
	}
	token = strings.ToLower(strings.TrimSpace(token))
	for _, m := range Mediatypes {
		if token == m.Type || token == m.Token {
			return m, true
		}
	}
	return Mediatype{}, false
}

// IsHTML reports whether the mediatype is rendered by the template collaborator
func (m Mediatype) IsHTML() bool {
	return m.Type == HTML.Type
}

// IsRDF reports whether the mediatype is rendered by an RDF codec
func (m Mediatype) IsRDF() bool {
	return m.Syntax != ""
}

// MediatypeLabel returns the display name of a mediatype, or the type itself
func MediatypeLabel(mediatype string) string {
	if m, ok := LookupMediatype(mediatype); ok {
		return m.Label
	}
	return mediatype
}
