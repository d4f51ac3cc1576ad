package representation

import (
	"tb16pix/internal/conneg"
	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// CellContext is the HTML context of a cell page
type CellContext struct {
	URI          string
	Label        string
	AsDGGS       string
	IsPartOf     Link
	IsGeometryOf Link
}

// Cell builds the cell bound to a non-root zone
func (b *Builder) Cell(id domain.ZoneID) (*Resource, error) {
	if id.IsRoot() || !id.IsValid() {
		return nil, domain.NewError(domain.KindInvalidIdentifier, "cells exist for face zones only")
	}

	self := b.cellLink(id)
	subj := graph.IRI(self.URI)
	ctx := CellContext{
		URI:          self.URI,
		Label:        self.Label,
		AsDGGS:       b.bases.DGGSLiteral(id.String()),
		IsPartOf:     b.gridLink(id.Level()),
		IsGeometryOf: b.zoneLink(id),
	}

	var st statements
	st.typed(subj, vocab.DGGSCell)
	st.label(subj, self.Label)
	st.add(subj, vocab.GeoxAsDGGS, graph.TypedLiteral(ctx.AsDGGS, vocab.GeoxDGGSLiteral))
	st.add(subj, vocab.DCIsPartOf, graph.IRI(ctx.IsPartOf.URI))
	st.add(subj, vocab.GeoxIsGeometryOf, graph.IRI(ctx.IsGeometryOf.URI))

	return &Resource{
		URI:          self.URI,
		Label:        self.Label,
		Capabilities: zoneCapabilities,
		views: map[string]View{
			conneg.ProfileDGGS.Token: {Template: "cell.html", Statements: st, Context: ctx},
		},
	}, nil
}
