package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/loader"
	"tb16pix/internal/repository"
)

// State is the lifecycle state of the background graph
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "failed"
	}
}

// Status is a point-in-time description of the provider
type Status struct {
	State       string    `json:"state"`
	Triples     int       `json:"triples"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	FromCache   bool      `json:"from_cache"`
	LoadedAt    time.Time `json:"loaded_at,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// GraphProvider lazily builds and shares the background data graph
type GraphProvider struct {
	dataDir string
	cache   repository.TripleCache
	bus     *EventBus
	logger  *slog.Logger

	group singleflight.Group

	mu          sync.RWMutex
	state       State
	graph       *graph.Graph
	generation  uint64
	fingerprint string
	fromCache   bool
	loadedAt    time.Time
	lastErr     error
}

// NewGraphProvider creates a provider over a data directory. cache may be nil.
func NewGraphProvider(dataDir string, cache repository.TripleCache, bus *EventBus, logger *slog.Logger) *GraphProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphProvider{
		dataDir: dataDir,
		cache:   cache,
		bus:     bus,
		logger:  logger,
	}
}

// Graph returns the ready graph, loading it first if necessary
func (p *GraphProvider) Graph(ctx context.Context) (*graph.Graph, error) {
	p.mu.RLock()
	if p.state == StateReady {
		g := p.graph
		p.mu.RUnlock()
		return g, nil
	}
	p.mu.RUnlock()

	// The shared load must not die with whichever request started it
	loadCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan("graph", func() (interface{}, error) {
		return p.load(loadCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*graph.Graph), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *GraphProvider) load(ctx context.Context) (*graph.Graph, error) {
	p.mu.Lock()
	if p.state == StateReady {
		g := p.graph
		p.mu.Unlock()
		return g, nil
	}
	p.state = StateLoading
	gen := p.generation
	p.mu.Unlock()

	p.bus.Publish(Event{Type: EventGraphLoading, Payload: map[string]string{"data_dir": p.dataDir}})
	start := time.Now()

	triples, fingerprint, fromCache, err := p.readTriples(ctx)
	if err != nil {
		p.mu.Lock()
		if p.generation == gen {
			p.state = StateFailed
			p.lastErr = err
		}
		p.mu.Unlock()
		p.logger.Error("graph load failed", "data_dir", p.dataDir, "error", err)
		p.bus.Publish(Event{Type: EventGraphFailed, Payload: map[string]string{"error": err.Error()}})
		return nil, domain.WrapError(domain.KindInternalDataFailure, "The data graph could not be loaded", err)
	}

	g := graph.New(triples)

	p.mu.Lock()
	// An invalidation during the load leaves the provider uninitialized
	if p.generation == gen {
		p.state = StateReady
		p.graph = g
		p.fingerprint = fingerprint
		p.fromCache = fromCache
		p.loadedAt = time.Now()
		p.lastErr = nil
	}
	p.mu.Unlock()

	p.logger.Info("graph loaded",
		"triples", g.Len(),
		"from_cache", fromCache,
		"fingerprint", fingerprint,
		"duration", time.Since(start))
	p.bus.Publish(Event{Type: EventGraphReady, Payload: map[string]interface{}{
		"triples":    g.Len(),
		"from_cache": fromCache,
		"duration":   time.Since(start).Seconds(),
	}})
	return g, nil
}

func (p *GraphProvider) readTriples(ctx context.Context) ([]graph.Triple, string, bool, error) {
	fingerprint, err := loader.Fingerprint(p.dataDir)
	if err != nil {
		return nil, "", false, err
	}

	if p.cache != nil {
		info, ok, err := p.cache.Info(ctx)
		if err != nil {
			p.logger.Warn("triple cache unreadable, parsing data files", "error", err)
		} else if ok && info.Fingerprint == fingerprint {
			triples, err := p.cache.Triples(ctx)
			if err == nil {
				return triples, fingerprint, true, nil
			}
			p.logger.Warn("triple cache read failed, parsing data files", "error", err)
		}
	}

	snap, err := loader.LoadDir(p.dataDir)
	if err != nil {
		return nil, "", false, err
	}

	if p.cache != nil {
		if err := p.cache.Replace(ctx, snap.Fingerprint, snap.Triples); err != nil {
			p.logger.Warn("failed to write triple cache", "error", err)
		}
	}
	return snap.Triples, snap.Fingerprint, false, nil
}

// Invalidate drops the shared graph; the next request rebuilds it
func (p *GraphProvider) Invalidate(reason string) {
	p.mu.Lock()
	p.generation++
	p.state = StateUninitialized
	p.graph = nil
	p.mu.Unlock()

	p.logger.Info("graph invalidated", "reason", reason)
	p.bus.Publish(Event{Type: EventGraphInvalidated, Payload: map[string]string{"reason": reason}})
}

// Expire clears the on-disk cache and invalidates the graph
func (p *GraphProvider) Expire(ctx context.Context) error {
	if p.cache != nil {
		if err := p.cache.Clear(ctx); err != nil {
			return err
		}
	}
	p.Invalidate("cache expired")
	return nil
}

// State returns the current lifecycle state
func (p *GraphProvider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Status describes the provider for health reporting
func (p *GraphProvider) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	st := Status{
		State:       p.state.String(),
		Triples:     p.graph.Len(),
		Fingerprint: p.fingerprint,
		FromCache:   p.fromCache,
		LoadedAt:    p.loadedAt,
	}
	if p.lastErr != nil {
		st.Error = p.lastErr.Error()
	}
	return st
}
