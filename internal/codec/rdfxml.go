package codec

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/knakk/rdf"

	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// RDFXMLCodec handles RDF/XML. Export writes one rdf:Description per
// subject; Parse uses the RDF/XML decoder of knakk/rdf, which has no encoder.
type RDFXMLCodec struct{}

// NewRDFXMLCodec creates a new RDF/XML codec
func NewRDFXMLCodec() *RDFXMLCodec {
	return &RDFXMLCodec{}
}

// Format returns the codec syntax
func (c *RDFXMLCodec) Format() Syntax {
	return SyntaxRDFXML
}

// Parse reads every triple from an RDF/XML document
func (c *RDFXMLCodec) Parse(r io.Reader) ([]graph.Triple, error) {
	return decodeAll(rdf.NewTripleDecoder(r, rdf.RDFXML), SyntaxRDFXML)
}

// Export writes triples grouped by subject in first-seen order
func (c *RDFXMLCodec) Export(triples []graph.Triple, w io.Writer) error {
	ns := newNamespaces()
	var order []graph.Term
	bySubject := make(map[graph.Term][]graph.Triple)
	for _, tr := range triples {
		if tr.Subject.IsLiteral() || !tr.Predicate.IsIRI() {
			return fmt.Errorf("failed to encode RDF/XML: invalid triple %s", tr)
		}
		if _, _, err := ns.qualify(tr.Predicate.Value); err != nil {
			return fmt.Errorf("failed to encode RDF/XML: %w", err)
		}
		if _, ok := bySubject[tr.Subject]; !ok {
			order = append(order, tr.Subject)
		}
		bySubject[tr.Subject] = append(bySubject[tr.Subject], tr)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(xml.Header)
	bw.WriteString("<rdf:RDF")
	for _, prefix := range ns.prefixes() {
		fmt.Fprintf(bw, "\n  xmlns:%s=\"%s\"", prefix, escape(ns.byPrefix[prefix]))
	}
	bw.WriteString(">\n")

	for _, subj := range order {
		if subj.IsBlank() {
			fmt.Fprintf(bw, "  <rdf:Description rdf:nodeID=\"%s\">\n", escape(subj.Value))
		} else {
			fmt.Fprintf(bw, "  <rdf:Description rdf:about=\"%s\">\n", escape(subj.Value))
		}
		for _, tr := range bySubject[subj] {
			prefix, local, _ := ns.qualify(tr.Predicate.Value)
			name := prefix + ":" + local
			obj := tr.Object
			switch {
			case obj.IsIRI():
				fmt.Fprintf(bw, "    <%s rdf:resource=\"%s\"/>\n", name, escape(obj.Value))
			case obj.IsBlank():
				fmt.Fprintf(bw, "    <%s rdf:nodeID=\"%s\"/>\n", name, escape(obj.Value))
			case obj.Lang != "":
				fmt.Fprintf(bw, "    <%s xml:lang=\"%s\">%s</%s>\n", name, escape(obj.Lang), escape(obj.Value), name)
			case obj.Datatype != "":
				fmt.Fprintf(bw, "    <%s rdf:datatype=\"%s\">%s</%s>\n", name, escape(obj.Datatype), escape(obj.Value), name)
			default:
				fmt.Fprintf(bw, "    <%s>%s</%s>\n", name, escape(obj.Value), name)
			}
		}
		bw.WriteString("  </rdf:Description>\n")
	}
	bw.WriteString("</rdf:RDF>\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write RDF/XML: %w", err)
	}
	return nil
}

func escape(s string) string {
	var sb strings.Builder
	// xml.EscapeText only fails when the writer fails
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// namespaces assigns XML prefixes to predicate namespaces
type namespaces struct {
	byPrefix map[string]string
	byIRI    map[string]string
	next     int
}

func newNamespaces() *namespaces {
	n := &namespaces{
		byPrefix: map[string]string{"rdf": vocab.RDF},
		byIRI:    map[string]string{vocab.RDF: "rdf"},
	}
	return n
}

// qualify splits an IRI into (prefix, local name), registering the namespace
func (n *namespaces) qualify(iri string) (string, string, error) {
	i := strings.LastIndexAny(iri, "#/")
	if i < 0 || i == len(iri)-1 {
		return "", "", fmt.Errorf("predicate %q has no local name", iri)
	}
	nsIRI, local := iri[:i+1], iri[i+1:]
	if !isNCName(local) {
		return "", "", fmt.Errorf("predicate %q has no valid local name", iri)
	}
	if prefix, ok := n.byIRI[nsIRI]; ok {
		return prefix, local, nil
	}

	prefix := ""
	for p, known := range vocab.Prefixes {
		if known == nsIRI {
			prefix = p
			break
		}
	}
	if prefix == "" {
		prefix = fmt.Sprintf("ns%d", n.next)
		n.next++
	}
	n.byPrefix[prefix] = nsIRI
	n.byIRI[nsIRI] = prefix
	return prefix, local, nil
}

func (n *namespaces) prefixes() []string {
	out := make([]string, 0, len(n.byPrefix))
	for p := range n.byPrefix {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func isNCName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r > 0x7f:
		case i > 0 && (r == '-' || r == '.' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return s != ""
}
