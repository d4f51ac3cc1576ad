// Package domain defines the core types of the TB16Pix Discrete Global Grid.
//
// This package contains the identifier algebra for hierarchical grid
// addresses and the error classification shared by every layer.
//
// # Zone Identifiers
//
// ZoneID is a closed variant: the whole-Earth root zone, or a face letter
// (N, O, P, Q, R, S) followed by a path of digits 0-8. ParseZoneID is the only
// way to obtain a face zone from text, so an invalid identifier fails at the
// boundary instead of deep inside rendering.
//
// # Navigation
//
// Navigator derives the parent, children and neighbours of a zone. Parent and
// children are pure string algebra. Neighbours are delegated to an injected
// GridTopology, which owns the face-boundary wraparound rules; the navigator
// checks and orders what the topology returns.
//
// # Grids
//
// A grid (or resolution) is every zone at one level. GridSize and ZoneAt page
// through a grid in lexicographic order without materialising it.
//
// # Errors
//
// Error carries an ErrorKind that maps 1:1 onto an HTTP status and a
// human-readable title. The sentinel values (ErrUnknownURI, ...) work with
// errors.Is.
//
// # Design Principles
//
// - Immutable value types
// - No I/O, no shared state; every function is safe for concurrent use
package domain
