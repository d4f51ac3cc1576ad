package representation

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tb16pix/internal/conneg"
	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// Items paging bounds
const (
	DefaultPageSize int64 = 100
	MaxPageSize     int64 = 1000
)

// CollectionsDescription introduces the collections listing
const CollectionsDescription = "DGGs are made of hierarchical layers of Cell geometries. In TB16Pix, these layers " +
	"are called Grids. Additionally, this API delivers TB16Pix Zones in Collections too."

// ContainerContext is the HTML context of member listings
type ContainerContext struct {
	URI         string
	Label       string
	Description string
	Parent      Link
	Members     []Link
	Total       int64
	Offset      int64
	Limit       int64
	Prev        string // query string of the previous page, empty on the first
	Next        string // query string of the next page, empty on the last
}

// CollectionContext is the HTML context of one grid
type CollectionContext struct {
	URI   string
	Label string
	Token string
	Level domain.Level
	Size  int64
	Items string
}

var (
	containerCapabilities  = conneg.NewCapabilities(conneg.ProfileMembers)
	collectionCapabilities = conneg.NewCapabilities(conneg.ProfileDGGS)
)

// Collections builds the listing of every grid in the data graph
func (b *Builder) Collections(ctx context.Context) (*Resource, error) {
	collections, err := b.listCollections(ctx)
	if err != nil {
		return nil, err
	}

	uri := b.bases.Grid
	hc := ContainerContext{
		URI:         uri,
		Label:       "Collections",
		Description: CollectionsDescription,
		Parent:      Link{URI: b.bases.Dataset, Label: "TB16Pix Dataset"},
		Total:       int64(len(collections)),
		Limit:       int64(len(collections)),
	}
	members := make([]Link, 0, len(collections))
	for _, c := range collections {
		members = append(members, Link{URI: c.URI, Label: c.Label})
	}
	hc.Members = members

	return &Resource{
		URI:          uri,
		Label:        hc.Label,
		Capabilities: containerCapabilities,
		views: map[string]View{
			conneg.ProfileMembers.Token: {Template: "collections.html", Statements: containerStatements(hc), Context: hc},
		},
	}, nil
}

// Collection builds a single grid
func (b *Builder) Collection(level domain.Level) (*Resource, error) {
	size := domain.GridSize(level)
	if size == 0 {
		return nil, domain.InvalidCollectionLevel()
	}

	self := b.gridLink(level)
	subj := graph.IRI(self.URI)
	hc := CollectionContext{
		URI:   self.URI,
		Label: self.Label,
		Token: domain.CollectionToken(level),
		Level: level,
		Size:  size,
		Items: self.URI + "/cell/",
	}

	var st statements
	st.typed(subj, vocab.DGGSResolution)
	st.label(subj, self.Label)
	st.add(subj, vocab.RDFSComment, graph.Literal(fmt.Sprintf("Grid of %d cells at level %d", size, level)))
	st.add(subj, vocab.DCIsPartOf, graph.IRI(b.bases.Dataset))

	return &Resource{
		URI:          self.URI,
		Label:        self.Label,
		Capabilities: collectionCapabilities,
		views: map[string]View{
			conneg.ProfileDGGS.Token: {Template: "collection.html", Statements: st, Context: hc},
		},
	}, nil
}

// Items builds one page of the cells of a grid
func (b *Builder) Items(level domain.Level, offset, limit int64) (*Resource, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	page, err := domain.GridPage(level, offset, limit)
	if err != nil {
		return nil, err
	}

	grid := b.gridLink(level)
	hc := ContainerContext{
		URI:    grid.URI + "/cell/",
		Label:  "Cells of " + grid.Label,
		Parent: grid,
		Total:  domain.GridSize(level),
		Offset: offset,
		Limit:  limit,
	}
	hc.Members = make([]Link, 0, len(page))
	for _, z := range page {
		hc.Members = append(hc.Members, b.cellLink(z))
	}
	if offset > 0 {
		hc.Prev = pageQuery(max(offset-limit, 0), limit)
	}
	if offset+limit < hc.Total {
		hc.Next = pageQuery(offset+limit, limit)
	}

	return &Resource{
		URI:          hc.URI,
		Label:        hc.Label,
		Capabilities: containerCapabilities,
		views: map[string]View{
			conneg.ProfileMembers.Token: {Template: "items.html", Statements: containerStatements(hc), Context: hc},
		},
	}, nil
}

func pageQuery(offset, limit int64) string {
	v := url.Values{}
	v.Set("offset", strconv.FormatInt(offset, 10))
	v.Set("limit", strconv.FormatInt(limit, 10))
	return "?" + v.Encode()
}

func containerStatements(hc ContainerContext) statements {
	subj := graph.IRI(hc.URI)
	var st statements
	st.label(subj, hc.Label)
	if hc.Description != "" {
		st.add(subj, vocab.RDFSComment, graph.Literal(hc.Description))
	}
	st.add(subj, vocab.DCIsPartOf, graph.IRI(hc.Parent.URI))
	for _, m := range hc.Members {
		st.add(subj, vocab.RDFSMember, graph.IRI(m.URI))
		st.label(graph.IRI(m.URI), m.Label)
	}
	return st
}
