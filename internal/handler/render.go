package handler

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"tb16pix/internal/codec"
	"tb16pix/internal/conneg"
	"tb16pix/internal/ctxlog"
	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/representation"
	"tb16pix/internal/view"
	"tb16pix/internal/vocab"
)

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// respond negotiates, builds and writes a resource
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, res *representation.Resource) {
	sel, err := conneg.Negotiate(res.Capabilities, conneg.RequestFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	v, ok := res.View(sel.Profile.Token)
	if !ok {
		h.writeError(w, r, domain.NewError(domain.KindInternalDataFailure,
			fmt.Sprintf("the %s profile has no view of %s", sel.Profile.Token, res.URI)))
		return
	}

	self := r.URL.RequestURI()
	var body bytes.Buffer
	if sel.Mediatype.IsHTML() {
		err = h.renderer.Render(&body, v.Template, view.Page{
			Title:      res.Label,
			Self:       self,
			Profile:    sel.Profile,
			Mediatype:  sel.Mediatype,
			Alternates: conneg.Alternates(res.Capabilities),
			Data:       v.Context,
		})
	} else {
		err = exportStatements(&body, sel.Mediatype, v.Statements)
	}
	if err != nil {
		h.writeError(w, r, domain.WrapError(domain.KindInternalDataFailure,
			"The representation could not be produced", err))
		return
	}

	for name, values := range sel.Headers(res.Capabilities, self) {
		w.Header()[name] = values
	}
	etag := entityTag(body.Bytes())
	w.Header().Set("ETag", etag)
	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		ctxlog.FromContext(r.Context()).Debug("write response", "error", err)
	}
}

func exportStatements(buf *bytes.Buffer, m conneg.Mediatype, statements []graph.Triple) error {
	exp, err := codec.ExporterFor(m.Syntax)
	if err != nil {
		return err
	}
	return exp.Export(statements, buf)
}

// entityTag is a strong validator over the exact response bytes
func entityTag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// writePage renders a page without negotiation
func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, name string, page view.Page, status int) {
	var body bytes.Buffer
	if err := h.renderer.Render(&body, name, page); err != nil {
		h.writeError(w, r, domain.WrapError(domain.KindInternalDataFailure, "The page could not be rendered", err))
		return
	}
	w.Header().Set("Content-Type", conneg.HTML.ContentType)
	w.WriteHeader(status)
	_, _ = body.WriteTo(w)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("failed to encode JSON", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeError writes one complete error response in the preferred mediatype
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := domain.AsError(err)
	status := e.Status()
	message := e.Message
	if message == "" {
		message = e.Title
	}

	logger := ctxlog.FromContext(r.Context())
	if domain.IsClientError(e) {
		logger.Info("request rejected", "kind", e.Kind.String(), "status", status, "message", message)
	} else {
		logger.Error("request failed", "kind", e.Kind.String(), "status", status, "error", err)
	}

	if e.Kind == domain.KindRateLimited {
		w.Header().Set("Retry-After", "1")
	}
	w.Header().Set("Vary", "Accept")

	req := conneg.RequestFrom(r)
	if e.Kind == domain.KindInvalidMediatype {
		// The rejected override cannot carry its own rejection
		req.Mediatype = ""
	}
	m := conneg.PreferredMediatype(req)
	resp := ErrorResponse{Title: e.Title, Status: status, Message: message}

	switch {
	case m.IsHTML() && h.renderer != nil:
		var body bytes.Buffer
		rerr := h.renderer.Render(&body, "error.html", view.Page{
			Title:     e.Title,
			Self:      r.URL.RequestURI(),
			Mediatype: m,
			Data:      view.ErrorContext{Title: e.Title, Status: status, Message: message},
		})
		if rerr == nil {
			w.Header().Set("Content-Type", conneg.HTML.ContentType)
			w.WriteHeader(status)
			_, _ = body.WriteTo(w)
			return
		}
		logger.Error("failed to render error page", "error", rerr)

	case m.IsRDF() && m.Type != conneg.JSON.Type:
		var body bytes.Buffer
		if rerr := exportStatements(&body, m, errorStatements(resp)); rerr == nil {
			w.Header().Set("Content-Type", m.ContentType)
			w.WriteHeader(status)
			_, _ = body.WriteTo(w)
			return
		}
	}

	h.writeJSON(w, r, resp, status)
}

// errorStatements describes an error with the W3C HTTP vocabulary
func errorStatements(resp ErrorResponse) []graph.Triple {
	subj := graph.Blank("error")
	return []graph.Triple{
		graph.T(subj, graph.IRI(vocab.RDFType), graph.IRI(vocab.HTTPResponse)),
		graph.T(subj, graph.IRI(vocab.HTTPStatusCodeValue), graph.TypedLiteral(strconv.Itoa(resp.Status), vocab.XSD+"int")),
		graph.T(subj, graph.IRI(vocab.RDFSLabel), graph.Literal(resp.Title)),
		graph.T(subj, graph.IRI(vocab.RDFSComment), graph.Literal(resp.Message)),
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, domain.NewError(domain.KindUnknownURI,
		fmt.Sprintf("There is no resource at %s", r.URL.Path)))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET")
	h.writeJSON(w, r, ErrorResponse{
		Title:   "Method not allowed",
		Status:  http.StatusMethodNotAllowed,
		Message: fmt.Sprintf("%s is not supported for %s", r.Method, r.URL.Path),
	}, http.StatusMethodNotAllowed)
}
