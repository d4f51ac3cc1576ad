package loader

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/blake2b"

	"tb16pix/internal/codec"
	"tb16pix/internal/graph"
)

// Patterns select the data files inside the data directory, one per
// importable RDF syntax
var Patterns = []string{"*.ttl", "*.n3", "*.nt", "*.jsonld", "*.rdf"}

// Snapshot is the parsed content of a data directory
type Snapshot struct {
	Files       []string
	Fingerprint string
	Triples     []graph.Triple
}

// Files lists the data files of dir in name order
func Files(dir string) ([]string, error) {
	var files []string
	for _, pattern := range Patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list data files: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// Fingerprint hashes the names and contents of every data file in dir.
// Any change to the data set yields a different fingerprint.
func Fingerprint(dir string) (string, error) {
	files, err := Files(dir)
	if err != nil {
		return "", err
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	for _, path := range files {
		fmt.Fprintf(h, "%s\x00", filepath.Base(path))
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// LoadDir parses every data file in dir
func LoadDir(dir string) (*Snapshot, error) {
	files, err := Files(dir)
	if err != nil {
		return nil, err
	}
	fingerprint, err := Fingerprint(dir)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Files: files, Fingerprint: fingerprint}
	for _, path := range files {
		triples, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		snap.Triples = append(snap.Triples, triples...)
	}
	return snap, nil
}

// LoadFile parses a single data file in the syntax named by its extension
func LoadFile(path string) ([]graph.Triple, error) {
	syntax, ok := codec.SyntaxForFile(path)
	if !ok {
		return nil, fmt.Errorf("%s: unknown RDF syntax", filepath.Base(path))
	}
	importer, err := codec.ImporterFor(syntax)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	triples, err := importer.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return triples, nil
}
