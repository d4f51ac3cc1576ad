package conneg

// Profile is a named view of a resource
type Profile struct {
	Token      string
	URI        string
	Label      string
	Comment    string
	Mediatypes []Mediatype
	Default    Mediatype
}

// Supports reports whether the profile lists the mediatype
func (p Profile) Supports(m Mediatype) bool {
	for _, have := range p.Mediatypes {
		if have.Type == m.Type {
			return true
		}
	}
	return false
}

// AltToken is the reserved token of the alternates listing
const AltToken = "alt"

var (
	// ProfileDCAT describes the dataset as a DCAT catalogue entry
	ProfileDCAT = Profile{
		Token:      "dcat",
		URI:        "https://www.w3.org/TR/vocab-dcat/",
		Label:      "DCAT",
		Comment:    "Dataset description according to the Data Catalog Vocabulary.",
		Mediatypes: Mediatypes,
		Default:    HTML,
	}

	// ProfileDGGS describes resources with the abstract DGGS ontology
	ProfileDGGS = Profile{
		Token:      "dggs",
		URI:        "https://w3id.org/dggs/abstract",
		Label:      "DGGS Ontology",
		Comment:    "Zones, cells and grids according to the abstract Discrete Global Grid System ontology.",
		Mediatypes: Mediatypes,
		Default:    HTML,
	}

	// ProfileMembers lists the members of a container
	ProfileMembers = Profile{
		Token:      "mem",
		URI:        "https://w3id.org/profile/mem",
		Label:      "Members",
		Comment:    "A listing of the members of a container.",
		Mediatypes: []Mediatype{HTML, JSON, Turtle, JSONLD},
		Default:    HTML,
	}

	// ProfileAlternates lists every profile and mediatype of a resource
	ProfileAlternates = Profile{
		Token:      AltToken,
		URI:        "http://www.w3.org/ns/dx/conneg/altr",
		Label:      "Alternates",
		Comment:    "The representations available for this resource, by profile and mediatype.",
		Mediatypes: Mediatypes,
		Default:    HTML,
	}
)

// Capabilities are the profiles a resource supports, in display order
type Capabilities struct {
	Profiles []Profile
	Default  string
}

// NewCapabilities builds capabilities whose default is the first profile
func NewCapabilities(profiles ...Profile) Capabilities {
	caps := Capabilities{Profiles: profiles}
	if len(profiles) > 0 {
		caps.Default = profiles[0].Token
	}
	return caps
}

// Lookup finds a supported profile by token
func (c Capabilities) Lookup(token string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Token == token {
			return p, true
		}
	}
	return Profile{}, false
}

// LookupURI finds a supported profile by URI
func (c Capabilities) LookupURI(uri string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.URI == uri {
			return p, true
		}
	}
	return Profile{}, false
}

// DefaultProfile returns the default profile, or the first one listed
func (c Capabilities) DefaultProfile() Profile {
	if p, ok := c.Lookup(c.Default); ok {
		return p
	}
	if len(c.Profiles) > 0 {
		return c.Profiles[0]
	}
	return ProfileAlternates
}
