package representation

import (
	"tb16pix/internal/conneg"
	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// NeighbourLink is a neighbouring zone with its direction label
type NeighbourLink struct {
	Link
	Direction string
}

// ZoneContext is the HTML context of zone and root-zone pages
type ZoneContext struct {
	URI             string
	Label           string
	Level           domain.Level
	Parent          *Link
	Neighbours      []NeighbourLink
	Children        []Link
	DefaultGeometry Link
}

var zoneCapabilities = conneg.NewCapabilities(conneg.ProfileDGGS)

// Zone builds a non-root zone
func (b *Builder) Zone(id domain.ZoneID) (*Resource, error) {
	if id.IsRoot() {
		return b.Earth(), nil
	}
	if !id.IsValid() {
		return nil, domain.NewError(domain.KindInvalidIdentifier, "zone identifier is not valid")
	}

	neighbours, err := b.nav.Neighbours(id)
	if err != nil {
		return nil, err
	}
	parent, _ := b.nav.Parent(id)
	children := b.nav.Children(id)

	self := b.zoneLink(id)
	subj := graph.IRI(self.URI)
	parentLink := b.zoneLink(parent)
	ctx := ZoneContext{
		URI:             self.URI,
		Label:           self.Label,
		Level:           id.Level(),
		Parent:          &parentLink,
		DefaultGeometry: b.cellLink(id),
	}

	var st statements
	st.typed(subj, vocab.DGGSZone)
	st.label(subj, self.Label)
	st.add(subj, vocab.GeoSfWithin, graph.IRI(parentLink.URI))

	for _, nb := range neighbours {
		link := b.zoneLink(nb.Zone)
		bn := graph.Blank("nb-" + string(nb.Direction))
		st.add(bn, vocab.DGGSNeighbour, graph.IRI(link.URI))
		st.add(bn, vocab.DGGSDirection, graph.IRI(b.bases.DirectionURI(nb.Direction.Title())))
		st.add(subj, vocab.DGGSDirectionalisedNeighbour, bn)
		st.add(subj, vocab.GeoSfTouches, graph.IRI(link.URI))
		ctx.Neighbours = append(ctx.Neighbours, NeighbourLink{Link: link, Direction: nb.Direction.Title()})
	}

	for _, c := range children {
		link := b.zoneLink(c)
		st.add(subj, vocab.GeoSfContains, graph.IRI(link.URI))
		ctx.Children = append(ctx.Children, link)
	}

	st.add(subj, vocab.GeoHasDefaultGeometry, graph.IRI(ctx.DefaultGeometry.URI))

	return &Resource{
		URI:          self.URI,
		Label:        self.Label,
		Capabilities: zoneCapabilities,
		views: map[string]View{
			conneg.ProfileDGGS.Token: {Template: "zone.html", Statements: st, Context: ctx},
		},
	}, nil
}

// Earth builds the root zone
func (b *Builder) Earth() *Resource {
	self := b.zoneLink(domain.Root)
	subj := graph.IRI(self.URI)
	ctx := ZoneContext{
		URI:             self.URI,
		Label:           self.Label,
		Level:           domain.RootLevel,
		DefaultGeometry: b.cellLink(domain.Root),
	}

	var st statements
	st.typed(subj, vocab.DGGSZone)
	st.label(subj, self.Label)
	for _, face := range b.nav.Children(domain.Root) {
		link := b.zoneLink(face)
		st.add(subj, vocab.GeoSfContains, graph.IRI(link.URI))
		ctx.Children = append(ctx.Children, link)
	}
	st.add(subj, vocab.GeoHasDefaultGeometry, graph.IRI(ctx.DefaultGeometry.URI))

	return &Resource{
		URI:          self.URI,
		Label:        self.Label,
		Capabilities: zoneCapabilities,
		views: map[string]View{
			conneg.ProfileDGGS.Token: {Template: "earth.html", Statements: st, Context: ctx},
		},
	}
}
