package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tb16pix/internal/conneg"
	"tb16pix/internal/representation"
	"tb16pix/internal/vocab"
)

const base = "https://w3id.org/dggs/tb16pix"

func newRenderer(t *testing.T, local bool) *Renderer {
	t.Helper()
	r, err := New(Options{DatasetURI: base, LocalURIs: local})
	require.NoError(t, err)
	return r
}

func TestNew_ParsesEveryPage(t *testing.T) {
	r := newRenderer(t, false)
	for _, name := range []string{
		"dataset.html", "collections.html", "collection.html", "items.html", "zone.html",
		"earth.html", "cell.html", "alternates.html", "error.html", "conformance.html",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout.html"))
}

func TestLink(t *testing.T) {
	tests := []struct {
		name  string
		local bool
		uri   string
		want  string
	}{
		{"canonical", false, base + "/zone/P", base + "/zone/P"},
		{"local zone", true, base + "/zone/P", "/object?uri=https%3A%2F%2Fw3id.org%2Fdggs%2Ftb16pix%2Fzone%2FP"},
		{"local dataset", true, base, "/"},
		{"foreign", true, "https://example.com/x", "https://example.com/x"},
		{"prefix only", true, base + "extra", base + "extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newRenderer(t, tt.local).Link(tt.uri))
		})
	}
}

func TestRender_Zone(t *testing.T) {
	ctx := representation.ZoneContext{
		URI:   base + "/zone/P1",
		Label: "Zone P1",
		Level: 1,
		Parent: &representation.Link{
			URI: base + "/zone/P", Label: "Zone P",
		},
		Neighbours: []representation.NeighbourLink{
			{Link: representation.Link{URI: base + "/zone/P0", Label: "Zone P0"}, Direction: "Left"},
		},
		DefaultGeometry: representation.Link{URI: base + "/cell/P1", Label: "Cell P1"},
	}
	caps := conneg.NewCapabilities(conneg.ProfileDGGS)

	var buf bytes.Buffer
	err := newRenderer(t, true).Render(&buf, "zone.html", Page{
		Title:      "Zone P1",
		Self:       "/object?uri=x",
		Profile:    conneg.ProfileDGGS,
		Mediatype:  conneg.HTML,
		Alternates: conneg.Alternates(caps),
		Data:       ctx,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<title>Zone P1 | TB16Pix</title>")
	assert.Contains(t, out, "Zone P0")
	assert.Contains(t, out, "/object?uri=https%3A%2F%2Fw3id.org%2Fdggs%2Ftb16pix%2Fzone%2FP\"")
	assert.Contains(t, out, "This zone is at the finest level.")
	assert.Contains(t, out, ">Turtle</a>")
	assert.Contains(t, out, "Alternates:")
}

func TestRender_Items(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(t, false).Render(&buf, "items.html", Page{
		Title: "Cells",
		Data: representation.ContainerContext{
			Label:   "Cells of Grid level0",
			Members: []representation.Link{{URI: base + "/cell/N", Label: "Cell N"}},
			Total:   6,
			Limit:   1,
			Next:    "?limit=1&offset=1",
			Parent:  representation.Link{URI: base + "/grid/level0", Label: "Grid level0"},
		},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Showing 1 of 6 cells")
	assert.Contains(t, out, "Next</a>")
	assert.NotContains(t, out, "Previous")
	assert.NotContains(t, out, "<footer>")
}

func TestRender_ErrorEscapes(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(t, false).Render(&buf, "error.html", Page{
		Title: "Invalid Collection ID",
		Data:  ErrorContext{Title: "Invalid Collection ID", Status: 400, Message: "<script>x</script>"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.Contains(t, buf.String(), "Status 400")
}

func TestRender_Dataset(t *testing.T) {
	bases := vocab.DefaultBases()
	var buf bytes.Buffer
	err := newRenderer(t, false).Render(&buf, "dataset.html", Page{
		Title: representation.DatasetLabel,
		Data: representation.DatasetContext{
			URI:         bases.Dataset,
			Label:       representation.DatasetLabel,
			Description: representation.DatasetDescription,
			RootZone:    representation.Link{URI: bases.ZoneURI("Earth"), Label: "Zone Earth"},
		},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "<p>This API")+strings.Count(out, "<p>This is an instance"))
	assert.Contains(t, out, "No grids are published.")
}

func TestRender_Unknown(t *testing.T) {
	err := newRenderer(t, false).Render(&bytes.Buffer{}, "missing.html", Page{})
	assert.Error(t, err)
}
