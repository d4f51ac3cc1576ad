package representation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tb16pix/internal/conneg"
	"tb16pix/internal/domain"
	"tb16pix/internal/graph"
	"tb16pix/internal/vocab"
)

// fixedTopology answers every zone with four same-level neighbours on face O
type fixedTopology struct{}

func (fixedTopology) Neighbours(id domain.ZoneID) ([]domain.Neighbour, error) {
	digits := make([]int, id.Level())
	out := make([]domain.Neighbour, 0, 4)
	for _, dir := range []domain.Direction{domain.DirectionUp, domain.DirectionRight, domain.DirectionLeft, domain.DirectionDown} {
		z, err := domain.NewZoneID('O', digits...)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Neighbour{Direction: dir, Zone: z})
	}
	return out, nil
}

type staticCollections struct {
	collections []domain.Collection
	err         error
}

func (s staticCollections) Collections(context.Context) ([]domain.Collection, error) {
	return s.collections, s.err
}

const base = "https://w3id.org/dggs/tb16pix"

func newBuilder(lister CollectionLister) *Builder {
	return NewBuilder(vocab.DefaultBases(), domain.NewNavigator(fixedTopology{}), lister)
}

func objects(st []graph.Triple, subj, pred string) []string {
	var out []string
	for _, tr := range st {
		if tr.Subject == graph.IRI(subj) && tr.Predicate.Value == pred {
			out = append(out, tr.Object.Value)
		}
	}
	return out
}

func TestZone(t *testing.T) {
	res, err := newBuilder(nil).Zone(domain.MustParseZoneID("P12"))
	require.NoError(t, err)
	assert.Equal(t, base+"/zone/P12", res.URI)
	assert.Equal(t, "Zone P12", res.Label)

	view, ok := res.View("dggs")
	require.True(t, ok)
	assert.Equal(t, "zone.html", view.Template)

	subj := base + "/zone/P12"
	st := view.Statements
	assert.Equal(t, []string{vocab.DGGSZone}, objects(st, subj, vocab.RDFType))
	assert.Equal(t, []string{"Zone P12"}, objects(st, subj, vocab.RDFSLabel))
	assert.Equal(t, []string{base + "/zone/P1"}, objects(st, subj, vocab.GeoSfWithin))
	assert.Len(t, objects(st, subj, vocab.GeoSfContains), domain.ChildBranching)
	assert.Len(t, objects(st, subj, vocab.GeoSfTouches), 4)
	assert.Equal(t, []string{base + "/cell/P12"}, objects(st, subj, vocab.GeoHasDefaultGeometry))
	assert.Equal(t, []string{"nb-down", "nb-left", "nb-right", "nb-up"},
		objects(st, subj, vocab.DGGSDirectionalisedNeighbour))

	var directions []string
	for _, tr := range st {
		if tr.Subject.IsBlank() && tr.Predicate.Value == vocab.DGGSDirection {
			directions = append(directions, tr.Object.Value)
		}
	}
	assert.Equal(t, []string{base + "/Down", base + "/Left", base + "/Right", base + "/Up"}, directions)

	hc, ok := view.Context.(ZoneContext)
	require.True(t, ok)
	require.NotNil(t, hc.Parent)
	assert.Equal(t, "Zone P1", hc.Parent.Label)
	assert.Len(t, hc.Children, 8)
	assert.Equal(t, "Down", hc.Neighbours[0].Direction)
}

func TestZone_Level0ParentIsEarth(t *testing.T) {
	res, err := newBuilder(nil).Zone(domain.MustParseZoneID("S"))
	require.NoError(t, err)
	view, _ := res.View("dggs")
	assert.Equal(t, []string{base + "/zone/Earth"}, objects(view.Statements, base+"/zone/S", vocab.GeoSfWithin))
}

func TestZone_DeepestHasNoChildren(t *testing.T) {
	res, err := newBuilder(nil).Zone(domain.MustParseZoneID("N012345678"))
	require.NoError(t, err)
	view, _ := res.View("dggs")
	assert.Empty(t, objects(view.Statements, base+"/zone/N012345678", vocab.GeoSfContains))
}

func TestEarth(t *testing.T) {
	b := newBuilder(nil)
	res := b.Earth()
	view, ok := res.View("dggs")
	require.True(t, ok)
	assert.Equal(t, "earth.html", view.Template)

	subj := base + "/zone/Earth"
	assert.Equal(t, []string{"Zone Earth"}, objects(view.Statements, subj, vocab.RDFSLabel))
	var faces []string
	for _, f := range domain.Faces {
		faces = append(faces, base+"/zone/"+string(f))
	}
	assert.Equal(t, faces, objects(view.Statements, subj, vocab.GeoSfContains))
	assert.Empty(t, objects(view.Statements, subj, vocab.GeoSfWithin))

	viaZone, err := b.Zone(domain.Root)
	require.NoError(t, err)
	assert.Equal(t, res.URI, viaZone.URI)
}

func TestCell(t *testing.T) {
	res, err := newBuilder(nil).Cell(domain.MustParseZoneID("Q21"))
	require.NoError(t, err)
	view, ok := res.View("dggs")
	require.True(t, ok)

	subj := base + "/cell/Q21"
	st := view.Statements
	assert.Equal(t, []string{vocab.DGGSCell}, objects(st, subj, vocab.RDFType))
	assert.Equal(t, []string{"Cell Q21"}, objects(st, subj, vocab.RDFSLabel))
	assert.Equal(t, []string{base + "/grid/level2"}, objects(st, subj, vocab.DCIsPartOf))
	assert.Equal(t, []string{base + "/zone/Q21"}, objects(st, subj, vocab.GeoxIsGeometryOf))

	for _, tr := range st {
		if tr.Predicate.Value == vocab.GeoxAsDGGS {
			assert.Equal(t, "<https://w3id.org/dggs/tb16pix> Q21", tr.Object.Value)
			assert.Equal(t, vocab.GeoxDGGSLiteral, tr.Object.Datatype)
		}
	}

	_, err = newBuilder(nil).Cell(domain.Root)
	assert.Error(t, err)
}

func TestDataset(t *testing.T) {
	lister := staticCollections{collections: []domain.Collection{
		{URI: base + "/grid/level0", Label: "Grid level0"},
		{URI: base + "/grid/level1", Label: "Grid level1"},
	}}
	res, err := newBuilder(lister).Dataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dcat", res.Capabilities.Default)

	dcat, ok := res.View("dcat")
	require.True(t, ok)
	assert.Equal(t, []string{vocab.DCATDataset}, objects(dcat.Statements, base, vocab.RDFType))
	assert.Equal(t, []string{DatasetLabel}, objects(dcat.Statements, base, vocab.DCTitle))
	assert.Len(t, objects(dcat.Statements, base, vocab.DCATDistribution), 2)
	assert.Equal(t, []string{base + "/grid/level0", base + "/grid/level1"}, objects(dcat.Statements, base, vocab.DCHasPart))

	dggs, ok := res.View("dggs")
	require.True(t, ok)
	assert.Contains(t, objects(dggs.Statements, base, vocab.DCHasPart), base+"/zone/Earth")

	_, ok = res.View("mem")
	assert.False(t, ok)
}

func TestDataset_CollectionFailure(t *testing.T) {
	boom := domain.NewError(domain.KindInternalDataFailure, "graph not ready")
	_, err := newBuilder(staticCollections{err: boom}).Dataset(context.Background())
	assert.True(t, errors.Is(err, domain.ErrInternalDataFailure))

	_, err = newBuilder(nil).Collections(context.Background())
	assert.Error(t, err)
}

func TestCollection(t *testing.T) {
	res, err := newBuilder(nil).Collection(3)
	require.NoError(t, err)
	assert.Equal(t, base+"/grid/level3", res.URI)
	view, _ := res.View("dggs")
	hc := view.Context.(CollectionContext)
	assert.Equal(t, int64(6*729), hc.Size)
	assert.Equal(t, "level3", hc.Token)

	_, err = newBuilder(nil).Collection(12)
	assert.ErrorIs(t, err, domain.ErrInvalidCollectionLevel)
}

func TestItems_Paging(t *testing.T) {
	tests := []struct {
		name          string
		level         domain.Level
		offset, limit int64
		members       int
		first         string
		prev, next    bool
	}{
		{"defaults", 2, 0, 0, 100, "Cell N00", false, true},
		{"middle", 1, 10, 10, 10, "Cell O1", true, true},
		{"last", 1, 50, 10, 4, "Cell S5", true, false},
		{"clamped", 0, 0, 5000, 6, "Cell N", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newBuilder(nil).Items(tt.level, tt.offset, tt.limit)
			require.NoError(t, err)
			view, ok := res.View("mem")
			require.True(t, ok)
			hc := view.Context.(ContainerContext)
			require.Len(t, hc.Members, tt.members)
			assert.Equal(t, tt.first, hc.Members[0].Label)
			assert.Equal(t, tt.prev, hc.Prev != "")
			assert.Equal(t, tt.next, hc.Next != "")
			assert.Len(t, objects(view.Statements, hc.URI, vocab.RDFSMember), tt.members)
		})
	}
}

func TestAlternates(t *testing.T) {
	res, err := newBuilder(nil).Zone(domain.MustParseZoneID("R"))
	require.NoError(t, err)

	view, ok := res.View(conneg.AltToken)
	require.True(t, ok)
	assert.Equal(t, "alternates.html", view.Template)

	hc := view.Context.(AlternatesContext)
	require.Len(t, hc.Alternates, 2)
	assert.Equal(t, "dggs", hc.Alternates[0].Profile.Token)
	assert.Equal(t, []string{"alt-dggs"}, objects(view.Statements, res.URI, vocab.AltrHasDefaultRepr))
	assert.Len(t, objects(view.Statements, res.URI, vocab.AltrHasRepr), 2)
}
