package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gridsTTL = `@prefix dggs: <https://w3id.org/dggs/abstract/ont/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

<https://w3id.org/dggs/tb16pix/grid/level0> a dggs:Resolution ;
    rdfs:label "Grid level0" .
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grids.ttl", gridsTTL)
	writeFile(t, dir, "notes.txt", "ignored")

	snap, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, snap.Files, 1)
	assert.Len(t, snap.Triples, 2)
	assert.Len(t, snap.Fingerprint, 64)
}

func TestLoadDir_MixedSyntaxes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grids.ttl", gridsTTL)
	writeFile(t, dir, "cells.nt",
		"<https://w3id.org/dggs/tb16pix/cell/N> <http://www.w3.org/2000/01/rdf-schema#label> \"Cell N\" .\n")
	writeFile(t, dir, "zones.rdf", `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
  <rdf:Description rdf:about="https://w3id.org/dggs/tb16pix/zone/N">
    <rdfs:label>Zone N</rdfs:label>
  </rdf:Description>
</rdf:RDF>
`)

	snap, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, snap.Files, 3)
	assert.Len(t, snap.Triples, 4)

	var labels []string
	for _, tr := range snap.Triples {
		if tr.Predicate.Value == "http://www.w3.org/2000/01/rdf-schema#label" {
			labels = append(labels, tr.Object.Value)
		}
	}
	assert.ElementsMatch(t, []string{"Grid level0", "Cell N", "Zone N"}, labels)
}

func TestLoadFile_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "x")
	_, err := LoadFile(filepath.Join(dir, "notes.txt"))
	assert.Error(t, err)
}

func TestLoadDir_Empty(t *testing.T) {
	snap, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, snap.Triples)
	assert.NotEmpty(t, snap.Fingerprint)
}

func TestLoadDir_InvalidTurtle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.ttl", "<a> <b> .")
	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.ttl")
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grids.ttl", gridsTTL)

	first, err := Fingerprint(dir)
	require.NoError(t, err)
	again, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	writeFile(t, dir, "grids.ttl", gridsTTL+"\n")
	changed, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)

	writeFile(t, dir, "more.ttl", "")
	added, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.NotEqual(t, changed, added)
}
