package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/piprate/json-gold/ld"

	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// JSONLDCodec handles JSON-LD. Triples pass through the JSON-LD processor
// as N-Quads in both directions; exports are compacted against the
// namespace prefixes.
type JSONLDCodec struct {
	proc *ld.JsonLdProcessor
}

// NewJSONLDCodec creates a new JSON-LD codec
func NewJSONLDCodec() *JSONLDCodec {
	return &JSONLDCodec{proc: ld.NewJsonLdProcessor()}
}

// Format returns the codec syntax
func (c *JSONLDCodec) Format() Syntax {
	return SyntaxJSONLD
}

// Export exports triples as compacted JSON-LD
func (c *JSONLDCodec) Export(triples []graph.Triple, w io.Writer) error {
	var nquads bytes.Buffer
	if err := NewNTriplesCodec().Export(triples, &nquads); err != nil {
		return err
	}

	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	expanded, err := c.proc.FromRDF(nquads.String(), opts)
	if err != nil {
		return fmt.Errorf("failed to build JSON-LD: %w", err)
	}

	context := make(map[string]interface{}, len(vocab.Prefixes))
	for prefix, ns := range vocab.Prefixes {
		context[prefix] = ns
	}
	compacted, err := c.proc.Compact(expanded, map[string]interface{}{"@context": context}, ld.NewJsonLdOptions(""))
	if err != nil {
		return fmt.Errorf("failed to compact JSON-LD: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(compacted); err != nil {
		return fmt.Errorf("failed to encode JSON-LD: %w", err)
	}
	return nil
}

// Parse reads a JSON-LD document into triples
func (c *JSONLDCodec) Parse(r io.Reader) ([]graph.Triple, error) {
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON-LD: %w", err)
	}

	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	out, err := c.proc.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to convert JSON-LD: %w", err)
	}
	nquads, ok := out.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected JSON-LD conversion result %T", out)
	}
	return NewNTriplesCodec().Parse(bytes.NewBufferString(nquads))
}
