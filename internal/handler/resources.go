package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tb16pix/internal/conneg"
	"tb16pix/internal/domain"
	"tb16pix/internal/representation"
	"tb16pix/internal/resolver"
	"tb16pix/internal/view"
)

// Dataset serves the landing page
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	res, err := h.builder.Dataset(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, res)
}

// Collections lists the grids of the data graph
func (h *Handler) Collections(w http.ResponseWriter, r *http.Request) {
	res, err := h.builder.Collections(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, res)
}

// Collection describes one grid
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	level, err := domain.ParseCollectionLevel(chi.URLParam(r, "level"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.builder.Collection(level)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, res)
}

// Items pages through the cells of a grid
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	level, err := domain.ParseCollectionLevel(chi.URLParam(r, "level"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	offset, err := intParam(q, "offset")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := intParam(q, "limit")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.builder.Items(level, offset, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, res)
}

// Item serves one cell of a grid, or the root zone for the root token
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	level, err := domain.ParseCollectionLevel(chi.URLParam(r, "level"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := domain.ParseZoneID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if id.IsRoot() {
		h.respond(w, r, h.builder.Earth())
		return
	}
	if id.Level() != level {
		h.writeError(w, r, domain.NewError(domain.KindUnknownURI,
			fmt.Sprintf("Cell %s is not part of %s", id, domain.CollectionToken(level))))
		return
	}
	res, err := h.builder.Cell(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, res)
}

// Object resolves a TB16Pix URI supplied as ?uri=
func (h *Handler) Object(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	_, present := q["uri"]
	resolution, err := h.resolver.Resolve(q.Get("uri"), present)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if resolution.Action == resolver.ActionRedirect {
		http.Redirect(w, r, withOverrides(resolution.Location, q), http.StatusFound)
		return
	}

	var res *representation.Resource
	switch resolution.Kind {
	case resolver.KindDataset:
		res, err = h.builder.Dataset(r.Context())
	case resolver.KindRootZone:
		res = h.builder.Earth()
	case resolver.KindZone:
		res, err = h.builder.Zone(resolution.Zone)
	default:
		err = domain.NewError(domain.KindInternalDataFailure,
			fmt.Sprintf("no renderer for %s", resolution.Kind))
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, res)
}

// conformanceClasses are the OGC API classes this API implements
var conformanceClasses = []view.ConformanceClass{
	{URI: "http://www.opengis.net/spec/ogcapi-features-1/1.0/conf/core", Label: "OGC API - Features: Core"},
	{URI: "http://www.opengis.net/spec/ogcapi-features-1/1.0/conf/html", Label: "OGC API - Features: HTML"},
}

// Conformance lists the conformance classes as JSON or HTML
func (h *Handler) Conformance(w http.ResponseWriter, r *http.Request) {
	m := conneg.PreferredMediatype(conneg.RequestFrom(r))
	if !m.IsHTML() {
		uris := make([]string, 0, len(conformanceClasses))
		for _, c := range conformanceClasses {
			uris = append(uris, c.URI)
		}
		h.writeJSON(w, r, map[string][]string{"conformsTo": uris}, http.StatusOK)
		return
	}
	h.writePage(w, r, "conformance.html", view.Page{
		Title:     "Conformance",
		Self:      r.URL.RequestURI(),
		Mediatype: conneg.HTML,
		Data:      conformanceClasses,
	}, http.StatusOK)
}

// withOverrides carries the negotiation parameters of the request onto a
// redirect location
func withOverrides(location string, q url.Values) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	target := u.Query()
	for _, name := range []string{
		conneg.ParamProfile, conneg.ParamProfileAlias,
		conneg.ParamMediatype, conneg.ParamMediatypeAlias,
	} {
		if v := q.Get(name); v != "" {
			target.Set(name, v)
		}
	}
	u.RawQuery = target.Encode()
	return u.String()
}

func intParam(q url.Values, name string) (int64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, domain.NewError(domain.KindMissingParameter,
			fmt.Sprintf("The parameter %s must be a non-negative integer", name))
	}
	return n, nil
}
