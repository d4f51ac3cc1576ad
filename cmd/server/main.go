package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tb16pix/internal/config"
	"tb16pix/internal/domain"
	"tb16pix/internal/handler"
	"tb16pix/internal/hub"
	"tb16pix/internal/loader"
	"tb16pix/internal/metrics"
	"tb16pix/internal/repository"
	"tb16pix/internal/repository/sqlite"
	"tb16pix/internal/representation"
	"tb16pix/internal/resolver"
	"tb16pix/internal/service"
	"tb16pix/internal/sparql"
	"tb16pix/internal/topology"
	"tb16pix/internal/view"
	"tb16pix/internal/vocab"
	"tb16pix/internal/watcher"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", path, "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting TB16Pix server", "config", path, "summary", cfg.Summary())

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// On-disk triple cache; the server still works without it
	var cache repository.TripleCache
	repo, err := sqlite.New(cfg.Data.CacheFile)
	if err != nil {
		logger.Warn("triple cache unavailable, data files are parsed on every load",
			"path", cfg.Data.CacheFile, "error", err)
	} else {
		defer repo.Close()
		cache = repo
	}

	m := metrics.New()
	bus := service.NewEventBus()
	events := make(chan service.Event, 100)
	bus.Subscribe(events)
	go observeEvents(events, m, logger)

	stream := hub.New(logger)
	go stream.Run(ctx)
	streamed := make(chan service.Event, 100)
	bus.Subscribe(streamed)
	go func() {
		for event := range streamed {
			stream.Broadcast(string(event.Type), event.Payload)
		}
	}()

	provider := service.NewGraphProvider(cfg.Data.Dir, cache, bus, logger)

	go func() {
		if _, err := provider.Graph(ctx); err != nil {
			logger.Error("initial graph load failed", "error", err)
		}
	}()

	if cfg.Data.Watch {
		w := watcher.New(cfg.Data.Dir, loader.Patterns, func(path string) {
			provider.Invalidate("data file changed: " + path)
		}).WithLogger(logger)
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("data watcher stopped", "error", err)
			}
		}()
	}

	if cfg.Data.CacheHours > 0 {
		scheduler, err := service.NewExpiryScheduler(provider, cfg.CacheExpiry(), logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	bases := vocab.NewBases(cfg.Dataset.URI)
	renderer, err := view.New(view.Options{DatasetURI: bases.Dataset, LocalURIs: cfg.LocalURIs})
	if err != nil {
		return err
	}

	opts := handler.Options{
		Builder:  representation.NewBuilder(bases, domain.NewNavigator(topology.New()), service.NewCatalog(provider)),
		Resolver: resolver.New(bases),
		Renderer: renderer,
		Graph:    provider,
		Events:   stream,
		Metrics:  m,
		Logger:   logger,
	}
	if cfg.SPARQL.Endpoint != "" {
		opts.Proxy = sparql.New(sparql.Config{
			Endpoint:  cfg.SPARQL.Endpoint,
			Username:  cfg.SPARQL.Username,
			Password:  cfg.SPARQL.Password,
			Timeout:   cfg.SPARQL.Timeout.Duration(),
			RateLimit: cfg.SPARQL.RateLimit,
			Burst:     cfg.SPARQL.Burst,
		}, logger)
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.New(opts).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  cfg.Server.ReadTimeout.Duration() * 6,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// observeEvents logs graph lifecycle events and mirrors them into metrics
func observeEvents(events <-chan service.Event, m *metrics.Metrics, logger *slog.Logger) {
	for event := range events {
		switch event.Type {
		case service.EventGraphReady:
			payload, _ := event.Payload.(map[string]interface{})
			triples, _ := payload["triples"].(int)
			fromCache, _ := payload["from_cache"].(bool)
			m.GraphLoaded(triples, fromCache)
		case service.EventGraphFailed:
			m.GraphFailed()
		case service.EventGraphInvalidated:
			m.GraphInvalidated()
		}
		logger.Debug("graph event", "type", event.Type, "payload", event.Payload)
	}
}
