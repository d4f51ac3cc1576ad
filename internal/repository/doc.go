// Package repository defines the storage interface for the on-disk triple
// cache.
//
// The background data graph is parsed from Turtle files once and then kept
// in a cache keyed by the fingerprint of the data files, so a restart with
// unchanged data skips parsing. The cache is replaced wholesale whenever the
// fingerprint differs; it never holds a partial snapshot.
//
// # SQLite Implementation
//
// The sqlite subpackage stores one row per triple plus a metadata table with
// the fingerprint and build time. Replace runs in a single transaction.
//
// # Testing
//
// The sqlite implementation is tested against in-memory databases.
package repository
