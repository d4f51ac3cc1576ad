// Package loader reads the dataset's RDF data files (Turtle, N3, N-Triples,
// JSON-LD or RDF/XML, chosen by extension) and fingerprints
// them so the on-disk triple cache can tell when it is stale.
package loader
