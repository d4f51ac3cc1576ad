// Package resolver classifies an externally supplied URI into a concrete
// TB16Pix resource and decides whether to render it in place or redirect to
// its canonical API route. Resolution is a pure function of the URI.
package resolver

import (
	"fmt"
	"net/url"
	"strings"

	"tb16pix/internal/domain"
	"tb16pix/internal/vocab"
)

// Kind is the class of a resolved resource
type Kind int

const (
	KindDataset Kind = iota
	KindRootZone
	KindZone
	KindCollections
	KindCollection
	KindItems
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindDataset:
		return "dataset"
	case KindRootZone:
		return "root-zone"
	case KindZone:
		return "zone"
	case KindCollections:
		return "collections"
	case KindCollection:
		return "collection"
	case KindItems:
		return "items"
	default:
		return "item"
	}
}

// Action says what the caller does with a resolution
type Action int

const (
	ActionRender Action = iota
	ActionRedirect
)

// Resolution is the outcome of resolving a URI
type Resolution struct {
	Kind     Kind
	Action   Action
	Zone     domain.ZoneID // set for zone and root-zone renders
	Location string        // local API path for redirects
}

// Resolver applies the classification rules for one set of URI bases
type Resolver struct {
	bases vocab.Bases
}

// New creates a resolver over the given URI bases
func New(bases vocab.Bases) *Resolver {
	return &Resolver{bases: bases}
}

// Resolve classifies uri. present is false when the request carried no uri
// parameter at all. Rules are tried in order and the first match wins.
func (r *Resolver) Resolve(uri string, present bool) (Resolution, error) {
	if !present {
		return Resolution{}, domain.NewError(domain.KindMissingParameter,
			"You must supply a TB16Pix URI with the parameter ?uri= for this endpoint")
	}
	if uri == "" {
		return Resolution{}, unknown()
	}

	b := r.bases
	switch {
	case uri == b.Dataset:
		return Resolution{Kind: KindDataset, Action: ActionRender}, nil

	case uri == b.ZoneURI(domain.RootToken):
		return Resolution{Kind: KindRootZone, Action: ActionRender, Zone: domain.Root}, nil

	case uri == b.Grid:
		return redirect(KindCollections, "/collections"), nil

	case strings.HasSuffix(uri, "/cell/"):
		// .../grid/{level}/cell/
		segs := strings.Split(uri, "/")
		if len(segs) < 3 {
			return Resolution{}, unknown()
		}
		return redirect(KindItems, "/collections/"+url.PathEscape(segs[len(segs)-3])+"/items"), nil

	case strings.HasPrefix(uri, b.Grid):
		trimmed := strings.TrimRight(stripQuery(uri), "/")
		if trimmed+"/" == b.Grid {
			return redirect(KindCollections, "/collections"), nil
		}
		return redirect(KindCollection, "/collections/"+url.PathEscape(lastSegment(trimmed))), nil

	case strings.HasPrefix(uri, b.Zone):
		id, err := domain.ParseZoneID(stripQuery(lastSegment(uri)))
		if err != nil {
			return Resolution{}, err
		}
		if id.IsRoot() {
			return Resolution{Kind: KindRootZone, Action: ActionRender, Zone: id}, nil
		}
		return Resolution{Kind: KindZone, Action: ActionRender, Zone: id}, nil

	case strings.HasPrefix(uri, b.Cell):
		id, err := domain.ParseZoneID(stripQuery(lastSegment(uri)))
		if err != nil {
			return Resolution{}, err
		}
		// The item level is the token length less the face letter, so the
		// root token lands on level4 where the item route renders the Earth
		token := id.String()
		return redirect(KindItem, fmt.Sprintf("/collections/%s/items/%s",
			domain.CollectionToken(domain.Level(len(token)-1)), url.PathEscape(token))), nil

	default:
		return Resolution{}, unknown()
	}
}

func redirect(kind Kind, location string) Resolution {
	return Resolution{Kind: kind, Action: ActionRedirect, Location: location}
}

func unknown() error {
	return domain.NewError(domain.KindUnknownURI,
		"The URI you supplied is not recognised within the TB16Pix dataset")
}

func lastSegment(uri string) string {
	return uri[strings.LastIndex(uri, "/")+1:]
}

func stripQuery(s string) string {
	if i := strings.IndexByte(s, '?'); i >= 0 {
		return s[:i]
	}
	return s
}
