package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tb16pix/internal/domain"
	"tb16pix/internal/vocab"
)

const base = "https://w3id.org/dggs/tb16pix"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		kind     Kind
		action   Action
		zone     string
		location string
	}{
		{"dataset", base, KindDataset, ActionRender, "", ""},
		{"root zone", base + "/zone/Earth", KindRootZone, ActionRender, "Earth", ""},
		{"grid base", base + "/grid/", KindCollections, ActionRedirect, "", "/collections"},
		{"cell suffix", base + "/grid/level2/cell/", KindItems, ActionRedirect, "", "/collections/level2/items"},
		{"grid", base + "/grid/level4", KindCollection, ActionRedirect, "", "/collections/level4"},
		{"zone", base + "/zone/P012", KindZone, ActionRender, "P012", ""},
		{"zone with query", base + "/zone/R3?_profile=dggs", KindZone, ActionRender, "R3", ""},
		{"cell", base + "/cell/Q21", KindItem, ActionRedirect, "", "/collections/level2/items/Q21"},
		{"cell with query", base + "/cell/S?x=1", KindItem, ActionRedirect, "", "/collections/level0/items/S"},
		{"root cell", base + "/cell/Earth", KindItem, ActionRedirect, "", "/collections/level4/items/Earth"},
		{"grid trailing slash", base + "/grid/level3/", KindCollection, ActionRedirect, "", "/collections/level3"},
		{"grid with query", base + "/grid/level5?_profile=dggs", KindCollection, ActionRedirect, "", "/collections/level5"},
		{"grid base with query", base + "/grid/?x=1", KindCollections, ActionRedirect, "", "/collections"},
	}
	r := New(vocab.DefaultBases())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.uri, true)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.action, got.Action)
			assert.Equal(t, tt.location, got.Location)
			if tt.zone != "" {
				assert.Equal(t, tt.zone, got.Zone.String())
			}
		})
	}
}

func TestResolve_CellSuffixUsesThirdFromLastSegment(t *testing.T) {
	r := New(vocab.DefaultBases())
	for _, uri := range []string{
		base + "/grid/level7/cell/",
		base + "/resolution/7/cell/",
		"https://example.com/anything/level7/cell/",
	} {
		got, err := r.Resolve(uri, true)
		require.NoError(t, err)
		segs := strings.Split(uri, "/")
		assert.Equal(t, "/collections/"+segs[len(segs)-3]+"/items", got.Location)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		present bool
		kind    domain.ErrorKind
	}{
		{"missing", "", false, domain.KindMissingParameter},
		{"empty", "", true, domain.KindUnknownURI},
		{"unknown", "https://example.com/nope", true, domain.KindUnknownURI},
		{"bad zone", base + "/zone/X12", true, domain.KindInvalidIdentifier},
		{"bad cell digit", base + "/cell/N9", true, domain.KindInvalidIdentifier},
		{"near miss", base + "/zonal/N", true, domain.KindUnknownURI},
	}
	r := New(vocab.DefaultBases())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.uri, tt.present)
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))
			assert.Equal(t, tt.kind.Status(), domain.AsError(err).Status())
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := New(vocab.DefaultBases())
	for _, uri := range []string{
		base, base + "/zone/Earth", base + "/grid/", base + "/grid/level1/cell/",
		base + "/grid/level3", base + "/zone/N1", base + "/cell/O22",
	} {
		first, err := r.Resolve(uri, true)
		require.NoError(t, err)
		second, err := r.Resolve(uri, true)
		require.NoError(t, err)
		assert.Equal(t, first, second, uri)
	}
}

func TestResolve_CustomBases(t *testing.T) {
	r := New(vocab.NewBases("https://example.org/dggs/"))
	got, err := r.Resolve("https://example.org/dggs/zone/N", true)
	require.NoError(t, err)
	assert.Equal(t, KindZone, got.Kind)

	_, err = r.Resolve(base+"/zone/N", true)
	assert.ErrorIs(t, err, domain.ErrUnknownURI)
}
