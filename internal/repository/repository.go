package repository

import (
	"context"
	"time"

	"tb16pix/internal/graph"
)

// CacheInfo describes the snapshot held by a triple cache
type CacheInfo struct {
	Fingerprint string
	Triples     int
	BuiltAt     time.Time
}

// TripleCache persists the parsed data graph between process restarts
type TripleCache interface {
	// Info returns the cached snapshot description; ok is false when empty
	Info(ctx context.Context) (info CacheInfo, ok bool, err error)

	// Triples returns every cached triple in insertion order
	Triples(ctx context.Context) ([]graph.Triple, error)

	// Replace atomically swaps the cached snapshot
	Replace(ctx context.Context, fingerprint string, triples []graph.Triple) error

	// Clear drops the cached snapshot so the next load rebuilds it
	Clear(ctx context.Context) error

	// Close releases resources
	Close() error
}
