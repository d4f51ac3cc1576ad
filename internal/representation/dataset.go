package representation

import (
	"context"

	"tb16pix/internal/conneg"
	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// Dataset text
const (
	DatasetLabel       = "Testbed 16 Pix Discrete Global Grid"
	DatasetDescription = "This is an instance of the Open Geospatial Consortium (OGC) \"OGC API - Features\" API " +
		"that delivers the authoritative content for the Testbed 16 Pix (TB16Pix) Discrete Global Grid, " +
		"that is, a multi-layered, tessellated set of spatial grid cells used for position identification " +
		"on the Earth's surface.\n\n" +
		"This API and the data within it have been created for the OGC's Testbed 16 which is a " +
		"multi-organisation interoperability experiment."
)

// DatasetContext is the HTML context of the landing page
type DatasetContext struct {
	URI           string
	Label         string
	Description   string
	Parts         []Link
	Distributions []Link
	RootZone      Link
}

var datasetCapabilities = conneg.NewCapabilities(conneg.ProfileDCAT, conneg.ProfileDGGS)

// Dataset builds the landing resource from the grids in the data graph
func (b *Builder) Dataset(ctx context.Context) (*Resource, error) {
	collections, err := b.listCollections(ctx)
	if err != nil {
		return nil, err
	}

	uri := b.bases.Dataset
	subj := graph.IRI(uri)
	hc := DatasetContext{
		URI:         uri,
		Label:       DatasetLabel,
		Description: DatasetDescription,
		Distributions: []Link{
			{URI: uri + "/sparql", Label: "SPARQL"},
			{URI: uri, Label: "Linked Data API"},
		},
		RootZone: b.zoneLink(domain.Root),
	}
	for _, c := range collections {
		hc.Parts = append(hc.Parts, Link{URI: c.URI, Label: c.Label})
	}

	var dcat statements
	dcat.typed(subj, vocab.DCATDataset)
	dcat.add(subj, vocab.DCTitle, graph.Literal(DatasetLabel))
	dcat.add(subj, vocab.DCDescription, graph.Literal(DatasetDescription))
	for i, d := range hc.Distributions {
		dist := graph.Blank("dist-" + string(rune('a'+i)))
		dcat.add(subj, vocab.DCATDistribution, dist)
		dcat.add(dist, vocab.DCTitle, graph.Literal(d.Label))
		dcat.add(dist, vocab.DCATAccessURL, graph.IRI(d.URI))
	}
	for _, p := range hc.Parts {
		dcat.add(subj, vocab.DCHasPart, graph.IRI(p.URI))
		dcat.label(graph.IRI(p.URI), p.Label)
	}

	var dggs statements
	dggs.typed(subj, vocab.DGGSDiscreteGlobalGrid)
	dggs.label(subj, DatasetLabel)
	for _, p := range hc.Parts {
		dggs.add(subj, vocab.DCHasPart, graph.IRI(p.URI))
		dggs.typed(graph.IRI(p.URI), vocab.DGGSResolution)
	}
	dggs.add(subj, vocab.DCHasPart, graph.IRI(hc.RootZone.URI))

	return &Resource{
		URI:          uri,
		Label:        DatasetLabel,
		Capabilities: datasetCapabilities,
		views: map[string]View{
			conneg.ProfileDCAT.Token: {Template: "dataset.html", Statements: dcat, Context: hc},
			conneg.ProfileDGGS.Token: {Template: "dataset.html", Statements: dggs, Context: hc},
		},
	}, nil
}

func (b *Builder) listCollections(ctx context.Context) ([]domain.Collection, error) {
	if b.collections == nil {
		return nil, domain.NewError(domain.KindInternalDataFailure, "no collection source configured")
	}
	collections, err := b.collections.Collections(ctx)
	if err != nil {
		return nil, err
	}
	return collections, nil
}
