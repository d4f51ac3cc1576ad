package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tb16pix/internal/metrics"
	"tb16pix/internal/representation"
	"tb16pix/internal/resolver"
	"tb16pix/internal/service"
	"tb16pix/internal/sparql"
	"tb16pix/internal/view"
)

// Renderer renders HTML pages
type Renderer interface {
	Render(w io.Writer, name string, page view.Page) error
}

// SPARQLProxy forwards queries to the triple store
type SPARQLProxy interface {
	Query(ctx context.Context, query, accept string) (*sparql.Result, error)
}

// GraphStatus reports the state of the background graph
type GraphStatus interface {
	Status() service.Status
}

// Options wires a handler's collaborators. Proxy, Graph and Metrics may be nil.
type Options struct {
	Builder  *representation.Builder
	Resolver *resolver.Resolver
	Renderer Renderer
	Proxy    SPARQLProxy
	Graph    GraphStatus
	Events   http.Handler
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Handler serves the API
type Handler struct {
	builder  *representation.Builder
	resolver *resolver.Resolver
	renderer Renderer
	proxy    SPARQLProxy
	graph    GraphStatus
	events   http.Handler
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a handler
func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		builder:  opts.Builder,
		resolver: opts.Resolver,
		renderer: opts.Renderer,
		proxy:    opts.Proxy,
		graph:    opts.Graph,
		events:   opts.Events,
		metrics:  opts.Metrics,
		logger:   logger,
	}
}

// Routes returns the router with middleware applied
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(h))
	r.Use(RequestID(h.logger))
	r.Use(CORS)
	r.Use(Logger)
	if h.metrics != nil {
		r.Use(Metrics(h.metrics))
	}

	r.Get("/", h.Dataset)
	r.Get("/conformance", h.Conformance)
	r.Get("/collections", h.Collections)
	r.Get("/collections/{level}", h.Collection)
	r.Get("/collections/{level}/items", h.Items)
	r.Get("/collections/{level}/items/{id}", h.Item)
	r.Get("/object", h.Object)

	for _, path := range []string{"/sparql", "/endpoint"} {
		r.Get(path, h.SPARQL)
		r.Post(path, h.SPARQL)
	}

	r.Get("/healthz", h.Health)
	if h.events != nil {
		r.Get("/events", h.events.ServeHTTP)
	}
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler())
	}

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)
	return r
}
