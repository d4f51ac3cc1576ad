// Package sparql forwards SPARQL queries to the dataset's remote triple
// store. Each query is a single synchronous attempt bounded by a timeout;
// failures are reported to the caller and never retried.
package sparql

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tb16pix/internal/domain"
)

// Defaults
const (
	DefaultTimeout = 60 * time.Second
	DefaultAccept  = "application/sparql-results+json"
	maxResponse    = 32 << 20
)

// Config configures the upstream endpoint
type Config struct {
	Endpoint  string
	Username  string
	Password  string
	Timeout   time.Duration
	RateLimit float64 // queries per second; 0 disables limiting
	Burst     int
}

// Result is a complete upstream response
type Result struct {
	Status      int
	ContentType string
	Body        []byte
}

// Proxy forwards queries to the configured endpoint
type Proxy struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a proxy
func New(cfg Config, logger *slog.Logger) *Proxy {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Proxy{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return p
}

// Configured reports whether an endpoint is set
func (p *Proxy) Configured() bool {
	return p.cfg.Endpoint != ""
}

// Query posts query to the endpoint as application/sparql-query. Upstream
// client errors (4xx) are returned as results; transport failures, timeouts
// and upstream server errors are UpstreamQueryFailure.
func (p *Proxy) Query(ctx context.Context, query, accept string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewError(domain.KindMissingParameter,
			"You must supply a SPARQL query with the parameter ?query= or as the request body")
	}
	if !p.Configured() {
		return nil, domain.NewError(domain.KindUpstreamQueryFailure, "No SPARQL endpoint is configured")
	}
	if p.limiter != nil && !p.limiter.Allow() {
		return nil, domain.NewError(domain.KindRateLimited, "Too many SPARQL queries, try again shortly")
	}
	if accept == "" || accept == "*/*" {
		accept = DefaultAccept
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, strings.NewReader(query))
	if err != nil {
		return nil, domain.WrapError(domain.KindUpstreamQueryFailure, "Invalid SPARQL endpoint", err)
	}
	req.Header.Set("Content-Type", "application/sparql-query")
	req.Header.Set("Accept", accept)
	if p.cfg.Username != "" && p.cfg.Password != "" {
		req.SetBasicAuth(p.cfg.Username, p.cfg.Password)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("sparql query failed", "endpoint", p.cfg.Endpoint, "error", err, "duration", time.Since(start))
		msg := "The SPARQL endpoint could not be reached"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("The SPARQL endpoint did not answer within %s", p.cfg.Timeout)
		}
		return nil, domain.WrapError(domain.KindUpstreamQueryFailure, msg, err)
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	if _, err := io.Copy(&body, io.LimitReader(resp.Body, maxResponse)); err != nil {
		return nil, domain.WrapError(domain.KindUpstreamQueryFailure, "The SPARQL response could not be read", err)
	}

	p.logger.Debug("sparql query", "status", resp.StatusCode, "bytes", body.Len(), "duration", time.Since(start))

	if resp.StatusCode >= 500 {
		return nil, domain.NewError(domain.KindUpstreamQueryFailure,
			fmt.Sprintf("The SPARQL endpoint answered %d", resp.StatusCode))
	}
	return &Result{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body.Bytes(),
	}, nil
}

// QueryFromRequest extracts the query of a SPARQL protocol request: the
// query parameter for GET and form posts, or the body of a direct post
func QueryFromRequest(r *http.Request) (string, error) {
	if r.Method == http.MethodPost {
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "application/sparql-query") {
			data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
			if err != nil {
				return "", fmt.Errorf("failed to read query: %w", err)
			}
			return string(data), nil
		}
		if err := r.ParseForm(); err != nil {
			return "", domain.WrapError(domain.KindMissingParameter, "The request form could not be parsed", err)
		}
		return r.PostForm.Get("query"), nil
	}
	return r.URL.Query().Get("query"), nil
}
