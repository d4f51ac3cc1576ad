// Package service owns the process-scoped state of the TB16Pix API.
//
// # Graph Provider
//
// GraphProvider holds the background RDF data graph behind an explicit
// state machine:
//
//	uninitialized -> loading -> ready
//	                    \-> failed
//
// The first request that needs the graph triggers the load; concurrent
// callers share that single load through a singleflight group. A ready
// graph is read-only and shared without locking by its readers.
// Invalidate returns the provider to uninitialized so the next request
// rebuilds; Expire additionally drops the on-disk cache.
//
// Loading consults the triple cache first. When the fingerprint of the data
// files matches the cached snapshot the triples are read from the cache;
// otherwise the Turtle files are parsed and the cache is replaced.
//
// # Catalog
//
// Catalog derives the grid collections from the graph: every subject typed
// dggs:Resolution, with its rdfs:label, sorted.
//
// # Event System
//
// State transitions are published on the EventBus for logging, metrics and
// the server-sent event stream.
package service
