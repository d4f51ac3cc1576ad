package service

import (
	"context"
	"fmt"
	"sort"

	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// GraphSource supplies the background graph
type GraphSource interface {
	Graph(ctx context.Context) (*graph.Graph, error)
}

// Catalog lists the grid collections published in the data graph
type Catalog struct {
	source GraphSource
}

// NewCatalog creates a catalog over a graph source
func NewCatalog(source GraphSource) *Catalog {
	return &Catalog{source: source}
}

// Collections returns every dggs:Resolution with its label, sorted by URI
func (c *Catalog) Collections(ctx context.Context) ([]domain.Collection, error) {
	g, err := c.source.Graph(ctx)
	if err != nil {
		return nil, err
	}

	subjects := g.Subjects(graph.IRI(vocab.RDFType), graph.IRI(vocab.DGGSResolution))
	collections := make([]domain.Collection, 0, len(subjects))
	for _, s := range subjects {
		if !s.IsIRI() {
			continue
		}
		labels := g.Objects(s, graph.IRI(vocab.RDFSLabel))
		if len(labels) == 0 {
			return nil, domain.NewError(domain.KindInternalDataFailure,
				fmt.Sprintf("grid %s has no rdfs:label in the data graph", s.Value))
		}
		for _, l := range labels {
			collections = append(collections, domain.Collection{URI: s.Value, Label: l.Value})
		}
	}

	sort.Slice(collections, func(i, j int) bool {
		if collections[i].URI != collections[j].URI {
			return collections[i].URI < collections[j].URI
		}
		return collections[i].Label < collections[j].Label
	})
	return collections, nil
}
