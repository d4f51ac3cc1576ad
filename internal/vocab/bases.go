package vocab

import "strings"

// DefaultDatasetURI is the persistent identifier of the TB16Pix dataset
const DefaultDatasetURI = "https://w3id.org/dggs/tb16pix"

// Bases holds the URI spaces minted by the dataset
type Bases struct {
	Dataset string // dataset root, no trailing slash
	Zone    string // zone base, trailing slash
	Cell    string // cell base, trailing slash
	Grid    string // grid-collection-set base, trailing slash
}

// NewBases derives every URI space from the dataset root
func NewBases(dataset string) Bases {
	dataset = strings.TrimRight(dataset, "/")
	return Bases{
		Dataset: dataset,
		Zone:    dataset + "/zone/",
		Cell:    dataset + "/cell/",
		Grid:    dataset + "/grid/",
	}
}

// DefaultBases returns the bases of the published dataset
func DefaultBases() Bases {
	return NewBases(DefaultDatasetURI)
}

// ZoneURI returns the URI of a zone token, including the root token
func (b Bases) ZoneURI(token string) string {
	return b.Zone + token
}

// CellURI returns the URI of the cell bound to a zone token
func (b Bases) CellURI(token string) string {
	return b.Cell + token
}

// GridURI returns the URI of a grid collection token, e.g. "level3"
func (b Bases) GridURI(token string) string {
	return b.Grid + token
}

// DirectionURI returns the URI naming a planar direction, e.g. ".../Up"
func (b Bases) DirectionURI(title string) string {
	return b.Dataset + "/" + title
}

// DGGSLiteral returns the lexical form of a geox:dggsLiteral for a cell
func (b Bases) DGGSLiteral(token string) string {
	return "<" + b.Dataset + "> " + token
}
