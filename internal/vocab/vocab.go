// Package vocab provides the namespace and IRI constants used in TB16Pix
// representations, and the URI bases of the dataset itself.
package vocab

import "sort"

// Standard namespaces
const (
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	XSD     = "http://www.w3.org/2001/XMLSchema#"
	DCTerms = "http://purl.org/dc/terms/"
	DCAT    = "http://www.w3.org/ns/dcat#"
	GEO     = "http://www.opengis.net/ont/geosparql#"
	GEOX    = "https://linked.data.gov.au/def/geox#"
	DGGS    = "https://w3id.org/dggs/abstract/ont/"
	PROF    = "http://www.w3.org/ns/dx/prof/"
	ALTR    = "http://www.w3.org/ns/dx/conneg/altr#"
	HTTP    = "http://www.w3.org/2011/http#"
)

// RDF and RDFS terms
const (
	RDFType      = RDF + "type"
	RDFSLabel    = RDFS + "label"
	RDFSComment  = RDFS + "comment"
	RDFSMember   = RDFS + "member"
	RDFSResource = RDFS + "Resource"
)

// Dublin Core and DCAT terms
const (
	DCTitle       = DCTerms + "title"
	DCDescription = DCTerms + "description"
	DCIsPartOf    = DCTerms + "isPartOf"
	DCHasPart     = DCTerms + "hasPart"
	DCFormat      = DCTerms + "format"
	DCConformsTo  = DCTerms + "conformsTo"

	DCATDataset      = DCAT + "Dataset"
	DCATDistribution = DCAT + "distribution"
	DCATAccessURL    = DCAT + "accessURL"
)

// GeoSPARQL topology and geometry terms
const (
	GeoSfWithin           = GEO + "sfWithin"
	GeoSfContains         = GEO + "sfContains"
	GeoSfTouches          = GEO + "sfTouches"
	GeoHasDefaultGeometry = GEO + "hasDefaultGeometry"

	GeoxAsDGGS       = GEOX + "asDGGS"
	GeoxDGGSLiteral  = GEOX + "dggsLiteral"
	GeoxIsGeometryOf = GEOX + "isGeometryOf"
)

// DGGS abstract model terms
const (
	DGGSZone                     = DGGS + "Zone"
	DGGSCell                     = DGGS + "Cell"
	DGGSResolution               = DGGS + "Resolution"
	DGGSDiscreteGlobalGrid       = DGGS + "DiscreteGlobalGridSystem"
	DGGSNeighbour                = DGGS + "neighbour"
	DGGSDirection                = DGGS + "direction"
	DGGSDirectionalisedNeighbour = DGGS + "directionalisedNeighbour"
)

// Profile and alternate-representation terms
const (
	ProfProfile        = PROF + "Profile"
	ProfToken          = PROF + "hasToken"
	AltrRepresentation = ALTR + "Representation"
	AltrHasRepr        = ALTR + "hasRepresentation"
	AltrHasDefaultRepr = ALTR + "hasDefaultRepresentation"
)

// HTTP vocabulary for error descriptions
const (
	HTTPResponse        = HTTP + "Response"
	HTTPStatusCodeValue = HTTP + "statusCodeValue"
)

// Prefixes maps the preferred prefix for each namespace, used by serializers
var Prefixes = map[string]string{
	"rdf":     RDF,
	"rdfs":    RDFS,
	"xsd":     XSD,
	"dcterms": DCTerms,
	"dcat":    DCAT,
	"geo":     GEO,
	"geox":    GEOX,
	"dggs":    DGGS,
	"prof":    PROF,
	"altr":    ALTR,
}

// PrefixNames returns the prefixes in sorted order
func PrefixNames() []string {
	names := make([]string, 0, len(Prefixes))
	for name := range Prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
