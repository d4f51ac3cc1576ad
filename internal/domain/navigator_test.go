package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTopology answers with the same zone in every direction, in reverse
// label order so that sorting is observable
type fakeTopology struct {
	answer func(id ZoneID) []Neighbour
	err    error
}

func (f fakeTopology) Neighbours(id ZoneID) ([]Neighbour, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.answer != nil {
		return f.answer(id), nil
	}
	return []Neighbour{
		{Direction: DirectionUp, Zone: id},
		{Direction: DirectionRight, Zone: id},
		{Direction: DirectionLeft, Zone: id},
		{Direction: DirectionDown, Zone: id},
	}, nil
}

func TestNavigator_Parent(t *testing.T) {
	nav := NewNavigator(fakeTopology{})

	_, ok := nav.Parent(Root)
	assert.False(t, ok, "root has no parent")

	p, ok := nav.Parent(MustParseZoneID("N"))
	require.True(t, ok)
	assert.True(t, p.IsRoot())

	p, ok = nav.Parent(MustParseZoneID("R012"))
	require.True(t, ok)
	assert.Equal(t, "R01", p.String())

	_, ok = nav.Parent(ZoneID{})
	assert.False(t, ok)
}

func TestNavigator_ChildrenOfRoot(t *testing.T) {
	nav := NewNavigator(fakeTopology{})

	var got []string
	for _, c := range nav.Children(Root) {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{"N", "O", "P", "Q", "R", "S"}, got)
}

func TestNavigator_ChildrenCount(t *testing.T) {
	nav := NewNavigator(fakeTopology{})

	tests := []struct {
		id   string
		want int
	}{
		{"N", 8},
		{"O1", 8},
		{"P12345678", 8},
		{"Q123456780", 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Len(t, nav.Children(MustParseZoneID(tt.id)), tt.want)
		})
	}
}

func TestNavigator_ParentOfChildren(t *testing.T) {
	nav := NewNavigator(fakeTopology{})

	// every valid non-root zone from level 0 to 8 on a sample of paths
	samples := []string{"N", "O8", "P01", "Q876", "R0123", "S88888888"}
	for _, s := range samples {
		z := MustParseZoneID(s)
		for i, c := range nav.Children(z) {
			p, ok := nav.Parent(c)
			require.True(t, ok)
			assert.Equal(t, z, p, "parent(children(%s)[%d])", s, i)
			assert.Equal(t, z.Level()+1, c.Level())
		}
	}

	for _, c := range nav.Children(Root) {
		p, ok := nav.Parent(c)
		require.True(t, ok)
		assert.True(t, p.IsRoot())
	}
}

func TestNavigator_ChildrenAreOrdered(t *testing.T) {
	nav := NewNavigator(fakeTopology{})
	children := nav.Children(MustParseZoneID("R3"))
	for i, c := range children {
		assert.Equal(t, []int{3, i}, c.Digits())
	}
}

func TestNavigator_Neighbours(t *testing.T) {
	nav := NewNavigator(fakeTopology{})

	t.Run("root has none", func(t *testing.T) {
		nbs, err := nav.Neighbours(Root)
		require.NoError(t, err)
		assert.Empty(t, nbs)
	})

	t.Run("sorted by direction", func(t *testing.T) {
		nbs, err := nav.Neighbours(MustParseZoneID("P4"))
		require.NoError(t, err)
		require.Len(t, nbs, 4)
		assert.Equal(t, []Direction{DirectionDown, DirectionLeft, DirectionRight, DirectionUp},
			[]Direction{nbs[0].Direction, nbs[1].Direction, nbs[2].Direction, nbs[3].Direction})
	})

	t.Run("topology error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		nav := NewNavigator(fakeTopology{err: boom})
		_, err := nav.Neighbours(MustParseZoneID("P4"))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("level mismatch is an internal failure", func(t *testing.T) {
		nav := NewNavigator(fakeTopology{answer: func(id ZoneID) []Neighbour {
			return []Neighbour{
				{Direction: DirectionDown, Zone: MustParseZoneID("P")},
				{Direction: DirectionLeft, Zone: id},
				{Direction: DirectionRight, Zone: id},
				{Direction: DirectionUp, Zone: id},
			}
		}})
		_, err := nav.Neighbours(MustParseZoneID("P4"))
		assert.ErrorIs(t, err, ErrInternalDataFailure)
	})

	t.Run("wrong count is an internal failure", func(t *testing.T) {
		nav := NewNavigator(fakeTopology{answer: func(id ZoneID) []Neighbour {
			return []Neighbour{{Direction: DirectionDown, Zone: id}}
		}})
		_, err := nav.Neighbours(MustParseZoneID("P4"))
		assert.ErrorIs(t, err, ErrInternalDataFailure)
	})

	t.Run("missing topology", func(t *testing.T) {
		_, err := NewNavigator(nil).Neighbours(MustParseZoneID("N"))
		assert.ErrorIs(t, err, ErrInternalDataFailure)
	})
}

func TestDirection_Title(t *testing.T) {
	assert.Equal(t, "Up", DirectionUp.Title())
	assert.Equal(t, "Right", DirectionRight.Title())
	assert.Equal(t, "", Direction("").Title())
}
