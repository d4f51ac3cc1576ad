package conneg

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/munnerz/goautoneg"

	"tb16pix/internal/domain"
)

// Query parameter names and their aliases
const (
	ParamProfile        = "_profile"
	ParamProfileAlias   = "_view"
	ParamMediatype      = "_mediatype"
	ParamMediatypeAlias = "_format"
)

// Request carries the negotiation inputs of one HTTP request
type Request struct {
	Accept        string
	AcceptProfile string
	Profile       string
	Mediatype     string
}

// RequestFrom extracts negotiation inputs; the primary parameter names win
// over their aliases
func RequestFrom(r *http.Request) Request {
	q := r.URL.Query()
	return Request{
		Accept:        r.Header.Get("Accept"),
		AcceptProfile: r.Header.Get("Accept-Profile"),
		Profile:       firstParam(q, ParamProfile, ParamProfileAlias),
		Mediatype:     firstParam(q, ParamMediatype, ParamMediatypeAlias),
	}
}

func firstParam(q url.Values, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

// Selection is the negotiated outcome
type Selection struct {
	Profile    Profile
	Mediatype  Mediatype
	Alternates bool
}

// Negotiate picks the profile and mediatype for a resource
func Negotiate(caps Capabilities, req Request) (Selection, error) {
	profile, err := selectProfile(caps, req)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Profile: profile, Alternates: profile.Token == AltToken}

	if req.Mediatype != "" {
		m, ok := LookupMediatype(req.Mediatype)
		if !ok || !profile.Supports(m) {
			return Selection{}, domain.NewError(domain.KindInvalidMediatype, fmt.Sprintf(
				"The mediatype %q is not available for the %q profile. Available mediatypes are: %s",
				req.Mediatype, profile.Token, mediatypeList(profile)))
		}
		sel.Mediatype = m
		return sel, nil
	}

	sel.Mediatype = matchAccept(profile, req.Accept)
	return sel, nil
}

func selectProfile(caps Capabilities, req Request) (Profile, error) {
	if req.Profile != "" {
		if req.Profile == AltToken {
			return ProfileAlternates, nil
		}
		if p, ok := caps.Lookup(req.Profile); ok {
			return p, nil
		}
		return Profile{}, domain.NewError(domain.KindInvalidProfile, fmt.Sprintf(
			"The profile %q is not available for this resource. Available profiles are: %s",
			req.Profile, profileList(caps)))
	}
	if p, ok := matchAcceptProfile(caps, req.AcceptProfile); ok {
		return p, nil
	}
	return caps.DefaultProfile(), nil
}

// matchAcceptProfile reads "<uri>;q=0.9, <uri>" and returns the best known
// profile. Unknown profiles in the header are not an error.
func matchAcceptProfile(caps Capabilities, header string) (Profile, bool) {
	if header == "" {
		return Profile{}, false
	}
	type candidate struct {
		uri string
		q   float64
	}
	var candidates []candidate
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		uri := strings.Trim(strings.TrimSpace(fields[0]), "<>")
		q := 1.0
		for _, f := range fields[1:] {
			f = strings.TrimSpace(f)
			if strings.HasPrefix(f, "q=") {
				fmt.Sscanf(f[2:], "%g", &q)
			}
		}
		if uri != "" && q > 0 {
			candidates = append(candidates, candidate{uri, q})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].q > candidates[j].q
	})
	for _, c := range candidates {
		if p, ok := caps.LookupURI(c.uri); ok {
			return p, true
		}
		if p, ok := caps.Lookup(c.uri); ok {
			return p, true
		}
		if c.uri == ProfileAlternates.URI {
			return ProfileAlternates, true
		}
	}
	return Profile{}, false
}

// matchAccept returns the profile mediatype best matching the Accept header.
// An absent header, */*, or no acceptable match yields the profile default.
func matchAccept(profile Profile, header string) Mediatype {
	if strings.TrimSpace(header) == "" {
		return profile.Default
	}

	ranges := goautoneg.ParseAccept(header)
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Q > ranges[j].Q
	})

	excluded := make(map[string]bool)
	for _, r := range ranges {
		if r.Q == 0 && r.Type != "*" && r.SubType != "*" {
			excluded[r.Type+"/"+r.SubType] = true
		}
	}

	for _, r := range ranges {
		if r.Q <= 0 {
			continue
		}
		switch {
		case r.Type == "*":
			if !excluded[profile.Default.Type] {
				return profile.Default
			}
			for _, m := range profile.Mediatypes {
				if !excluded[m.Type] {
					return m
				}
			}
		case r.SubType == "*":
			for _, m := range profile.Mediatypes {
				if strings.HasPrefix(m.Type, r.Type+"/") && !excluded[m.Type] {
					return m
				}
			}
		default:
			if m, ok := LookupMediatype(r.Type + "/" + r.SubType); ok && profile.Supports(m) {
				return m
			}
		}
	}
	return profile.Default
}

func profileList(caps Capabilities) string {
	tokens := make([]string, 0, len(caps.Profiles)+1)
	for _, p := range caps.Profiles {
		tokens = append(tokens, p.Token)
	}
	tokens = append(tokens, AltToken)
	return strings.Join(tokens, ", ")
}

func mediatypeList(p Profile) string {
	types := make([]string, 0, len(p.Mediatypes))
	for _, m := range p.Mediatypes {
		types = append(types, m.Type)
	}
	return strings.Join(types, ", ")
}

// Headers returns the response headers describing the selection. self is
// the request path used to build alternate links.
func (s Selection) Headers(caps Capabilities, self string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", s.Mediatype.ContentType)
	h.Set("Vary", "Accept, Accept-Profile")
	h.Set("Content-Profile", "<"+s.Profile.URI+">")

	links := []string{fmt.Sprintf(`<%s>; rel="profile"`, s.Profile.URI)}
	for _, p := range caps.Profiles {
		for _, m := range p.Mediatypes {
			links = append(links, fmt.Sprintf(`<%s>; rel="alternate"; type="%s"; profile="%s"`,
				AlternateHref(self, p.Token, m.Token), m.Type, p.URI))
		}
	}
	h.Set("Link", strings.Join(links, ", "))
	return h
}

// AlternateHref adds the profile and mediatype parameters to self, keeping
// any query it already carries
func AlternateHref(self, profile, mediatype string) string {
	u, err := url.Parse(self)
	if err != nil {
		return self
	}
	q := u.Query()
	q.Del(ParamProfileAlias)
	q.Del(ParamMediatypeAlias)
	q.Set(ParamProfile, profile)
	q.Set(ParamMediatype, mediatype)
	u.RawQuery = q.Encode()
	return u.String()
}

// Alternate is one row of the alternates listing
type Alternate struct {
	Profile    Profile
	Mediatypes []Mediatype
	IsDefault  bool
}

// Alternates enumerates the profiles of a resource with their mediatypes
func Alternates(caps Capabilities) []Alternate {
	def := caps.DefaultProfile().Token
	out := make([]Alternate, 0, len(caps.Profiles)+1)
	for _, p := range caps.Profiles {
		out = append(out, Alternate{Profile: p, Mediatypes: p.Mediatypes, IsDefault: p.Token == def})
	}
	out = append(out, Alternate{Profile: ProfileAlternates, Mediatypes: ProfileAlternates.Mediatypes})
	return out
}

// PreferredMediatype picks a mediatype for a response that has no profile,
// such as an error. Invalid overrides fall back to the Accept header.
func PreferredMediatype(req Request) Mediatype {
	if req.Mediatype != "" {
		if m, ok := LookupMediatype(req.Mediatype); ok {
			return m
		}
	}
	return matchAccept(ProfileAlternates, req.Accept)
}
