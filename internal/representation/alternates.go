package representation

import (
	"tb16pix/internal/conneg"
	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// AlternatesContext is the HTML context of the alternates listing
type AlternatesContext struct {
	URI        string
	Label      string
	Alternates []conneg.Alternate
}

func (r *Resource) alternates() View {
	alts := conneg.Alternates(r.Capabilities)
	subj := graph.IRI(r.URI)

	var st statements
	for _, alt := range alts {
		repr := graph.Blank("alt-" + alt.Profile.Token)
		st.typed(repr, vocab.AltrRepresentation)
		st.add(repr, vocab.DCConformsTo, graph.IRI(alt.Profile.URI))
		st.add(repr, vocab.ProfToken, graph.Literal(alt.Profile.Token))
		for _, m := range alt.Mediatypes {
			st.add(repr, vocab.DCFormat, graph.Literal(m.Type))
		}
		if alt.IsDefault {
			st.add(subj, vocab.AltrHasDefaultRepr, repr)
		}
		st.add(subj, vocab.AltrHasRepr, repr)
	}

	return View{
		Template:   "alternates.html",
		Statements: st,
		Context:    AlternatesContext{URI: r.URI, Label: r.Label, Alternates: alts},
	}
}
