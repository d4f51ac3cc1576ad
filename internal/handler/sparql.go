package handler

import (
	"net/http"
	"strconv"

	"tb16pix/internal/domain"
	"tb16pix/internal/sparql"
)

// SPARQL forwards a query to the triple store and relays the answer
func (h *Handler) SPARQL(w http.ResponseWriter, r *http.Request) {
	if h.proxy == nil {
		h.writeError(w, r, domain.NewError(domain.KindUpstreamQueryFailure, "No SPARQL endpoint is configured"))
		return
	}

	query, err := sparql.QueryFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.proxy.Query(r.Context(), query, r.Header.Get("Accept"))
	if err != nil {
		h.observeSPARQL(domain.KindOf(err).String())
		h.writeError(w, r, err)
		return
	}
	h.observeSPARQL(strconv.Itoa(res.Status))

	if res.ContentType != "" {
		w.Header().Set("Content-Type", res.ContentType)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Body)))
	w.WriteHeader(res.Status)
	_, _ = w.Write(res.Body)
}

func (h *Handler) observeSPARQL(outcome string) {
	if h.metrics != nil {
		h.metrics.SPARQLQuery(outcome)
	}
}
