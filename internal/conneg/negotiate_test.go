package conneg

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tb16pix/internal/domain"
)

var zoneCaps = NewCapabilities(ProfileDGGS)
var datasetCaps = NewCapabilities(ProfileDCAT, ProfileDGGS)

func TestNegotiate_Accept(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"absent", "", "text/html"},
		{"any", "*/*", "text/html"},
		{"turtle", "text/turtle", "text/turtle"},
		{"browser", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", "text/html"},
		{"q ordering", "text/turtle;q=0.5, application/ld+json", "application/ld+json"},
		{"type wildcard", "application/*", "application/json"},
		{"unsupported", "image/png", "text/html"},
		{"q=0 excludes", "text/html;q=0, */*", "application/json"},
		{"with params", "application/n-triples; charset=utf-8", "application/n-triples"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Negotiate(zoneCaps, Request{Accept: tt.accept})
			require.NoError(t, err)
			assert.Equal(t, "dggs", sel.Profile.Token)
			assert.Equal(t, tt.want, sel.Mediatype.Type)
		})
	}
}

func TestNegotiate_ZoneTurtleWithDGGSProfile(t *testing.T) {
	sel, err := Negotiate(zoneCaps, Request{Accept: "text/turtle", Profile: "dggs"})
	require.NoError(t, err)
	assert.Equal(t, "dggs", sel.Profile.Token)
	assert.Equal(t, "text/turtle", sel.Mediatype.Type)
	assert.False(t, sel.Alternates)
}

func TestNegotiate_ExplicitMediatype(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"ttl", "text/turtle"},
		{"text/turtle", "text/turtle"},
		{"jsonld", "application/ld+json"},
		{"json", "application/json"},
		{"rdf", "application/rdf+xml"},
		{"nt", "application/n-triples"},
		{"n3", "text/n3"},
		{"html", "text/html"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			sel, err := Negotiate(zoneCaps, Request{Accept: "text/html", Mediatype: tt.token})
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel.Mediatype.Type)
		})
	}
}

func TestNegotiate_Errors(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		req  Request
		kind domain.ErrorKind
	}{
		{"unknown profile", zoneCaps, Request{Profile: "nope"}, domain.KindInvalidProfile},
		{"profile of another resource", zoneCaps, Request{Profile: "dcat"}, domain.KindInvalidProfile},
		{"unknown mediatype", zoneCaps, Request{Mediatype: "image/png"}, domain.KindInvalidMediatype},
		{"mediatype outside profile", NewCapabilities(ProfileMembers), Request{Mediatype: "nt"}, domain.KindInvalidMediatype},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Negotiate(tt.caps, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}
}

func TestNegotiate_Alternates(t *testing.T) {
	sel, err := Negotiate(datasetCaps, Request{Profile: "alt", Accept: "application/json"})
	require.NoError(t, err)
	assert.True(t, sel.Alternates)
	assert.Equal(t, "application/json", sel.Mediatype.Type)

	alts := Alternates(datasetCaps)
	require.Len(t, alts, 3)
	assert.Equal(t, "dcat", alts[0].Profile.Token)
	assert.True(t, alts[0].IsDefault)
	assert.Equal(t, "dggs", alts[1].Profile.Token)
	assert.Equal(t, AltToken, alts[2].Profile.Token)
}

func TestNegotiate_DefaultAndAcceptProfile(t *testing.T) {
	sel, err := Negotiate(datasetCaps, Request{})
	require.NoError(t, err)
	assert.Equal(t, "dcat", sel.Profile.Token)

	sel, err = Negotiate(datasetCaps, Request{AcceptProfile: "<https://example.org/x>, <https://w3id.org/dggs/abstract>;q=0.5"})
	require.NoError(t, err)
	assert.Equal(t, "dggs", sel.Profile.Token)

	sel, err = Negotiate(datasetCaps, Request{AcceptProfile: "<https://w3id.org/dggs/abstract>", Profile: "dcat"})
	require.NoError(t, err)
	assert.Equal(t, "dcat", sel.Profile.Token)
}

func TestNegotiate_Deterministic(t *testing.T) {
	req := Request{Accept: "text/n3;q=0.9, application/rdf+xml;q=0.9"}
	first, err := Negotiate(zoneCaps, req)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Negotiate(zoneCaps, req)
		require.NoError(t, err)
		assert.Equal(t, first.Mediatype, again.Mediatype)
	}
}

func TestRequestFrom_Aliases(t *testing.T) {
	r := httptest.NewRequest("GET", "/object?uri=x&_view=dggs&_format=ttl", nil)
	r.Header.Set("Accept", "text/html")
	req := RequestFrom(r)
	assert.Equal(t, "dggs", req.Profile)
	assert.Equal(t, "ttl", req.Mediatype)
	assert.Equal(t, "text/html", req.Accept)

	r = httptest.NewRequest("GET", "/?_profile=dcat&_view=dggs&_mediatype=nt&_format=ttl", nil)
	req = RequestFrom(r)
	assert.Equal(t, "dcat", req.Profile)
	assert.Equal(t, "nt", req.Mediatype)
}

func TestSelection_Headers(t *testing.T) {
	sel, err := Negotiate(zoneCaps, Request{Accept: "text/turtle"})
	require.NoError(t, err)

	h := sel.Headers(zoneCaps, "/object")
	assert.Equal(t, "text/turtle; charset=utf-8", h.Get("Content-Type"))
	assert.Equal(t, "Accept, Accept-Profile", h.Get("Vary"))
	assert.Equal(t, "<https://w3id.org/dggs/abstract>", h.Get("Content-Profile"))

	link := h.Get("Link")
	assert.True(t, strings.HasPrefix(link, `<https://w3id.org/dggs/abstract>; rel="profile"`))
	assert.Contains(t, link, `rel="alternate"; type="text/turtle"`)
	assert.Equal(t, len(Mediatypes), strings.Count(link, `rel="alternate"`))
}

func TestLookupMediatype(t *testing.T) {
	m, ok := LookupMediatype(" Text/Turtle ; charset=utf-8")
	require.True(t, ok)
	assert.Equal(t, Turtle, m)
	assert.Equal(t, "Notation-3", MediatypeLabel("text/n3"))
	assert.Equal(t, "image/png", MediatypeLabel("image/png"))

	_, ok = LookupMediatype("yaml")
	assert.False(t, ok)
}

func TestAlternateHref(t *testing.T) {
	tests := []struct {
		name string
		self string
		want string
	}{
		{"plain path", "/collections", "/collections?_mediatype=ttl&_profile=dggs"},
		{"keeps query", "/object?uri=x", "/object?_mediatype=ttl&_profile=dggs&uri=x"},
		{"replaces selection", "/?_view=dcat&_format=html", "/?_mediatype=ttl&_profile=dggs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AlternateHref(tt.self, "dggs", "ttl"))
		})
	}
}

func TestPreferredMediatype(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Mediatype
	}{
		{"no accept", Request{}, HTML},
		{"json accept", Request{Accept: "application/json"}, JSON},
		{"override", Request{Accept: "text/html", Mediatype: "ttl"}, Turtle},
		{"bad override", Request{Accept: "application/n-triples", Mediatype: "image/png"}, NTriples},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreferredMediatype(tt.req))
		})
	}
}
