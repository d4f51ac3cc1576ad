// Package representation builds the statement sets and HTML view contexts of
// every TB16Pix resource. Serialization is left to the codec and view
// packages; a View here is data only.
package representation

import (
	"context"

	"tb16pix/internal/conneg"
	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// Link is a (URI, label) pair for HTML rendering
type Link struct {
	URI   string
	Label string
}

// View is one profile's rendition of a resource
type View struct {
	Template   string         // HTML template name
	Statements []graph.Triple // RDF statements for the RDF mediatypes
	Context    any            // HTML template context
}

// Resource is a buildable resource with its supported profiles
type Resource struct {
	URI          string
	Label        string
	Capabilities conneg.Capabilities
	views        map[string]View
}

// View returns the view for a profile token. The alternates token yields
// the alternates listing of the resource.
func (r *Resource) View(profile string) (View, bool) {
	if profile == conneg.AltToken {
		return r.alternates(), true
	}
	v, ok := r.views[profile]
	return v, ok
}

// CollectionLister provides the grids published in the data graph
type CollectionLister interface {
	Collections(ctx context.Context) ([]domain.Collection, error)
}

// Builder creates resources. It is safe for concurrent use.
type Builder struct {
	bases       vocab.Bases
	nav         *domain.Navigator
	collections CollectionLister
}

// NewBuilder creates a builder
func NewBuilder(bases vocab.Bases, nav *domain.Navigator, collections CollectionLister) *Builder {
	return &Builder{bases: bases, nav: nav, collections: collections}
}

// Bases returns the URI bases the builder mints URIs from
func (b *Builder) Bases() vocab.Bases {
	return b.bases
}

func (b *Builder) zoneLink(id domain.ZoneID) Link {
	return Link{URI: b.bases.ZoneURI(id.String()), Label: "Zone " + id.String()}
}

func (b *Builder) cellLink(id domain.ZoneID) Link {
	return Link{URI: b.bases.CellURI(id.String()), Label: "Cell " + id.String()}
}

func (b *Builder) gridLink(level domain.Level) Link {
	token := domain.CollectionToken(level)
	return Link{URI: b.bases.GridURI(token), Label: "Grid " + token}
}

// statements accumulates triples about resources
type statements []graph.Triple

func (s *statements) add(subj graph.Term, pred string, obj graph.Term) {
	*s = append(*s, graph.T(subj, graph.IRI(pred), obj))
}

func (s *statements) typed(subj graph.Term, class string) {
	s.add(subj, vocab.RDFType, graph.IRI(class))
}

func (s *statements) label(subj graph.Term, label string) {
	s.add(subj, vocab.RDFSLabel, graph.Literal(label))
}
