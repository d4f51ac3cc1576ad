package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tb16pix/internal/domain"
)

func neighbourMap(t *testing.T, id string) map[domain.Direction]string {
	t.Helper()
	nbs, err := New().Neighbours(domain.MustParseZoneID(id))
	require.NoError(t, err)
	out := make(map[domain.Direction]string, len(nbs))
	for _, nb := range nbs {
		out[nb.Direction] = nb.Zone.String()
	}
	return out
}

func TestNeighbours_Faces(t *testing.T) {
	tests := []struct {
		id   string
		want map[domain.Direction]string
	}{
		{"N", map[domain.Direction]string{"up": "Q", "down": "O", "left": "R", "right": "P"}},
		{"O", map[domain.Direction]string{"up": "N", "down": "S", "left": "R", "right": "P"}},
		{"P", map[domain.Direction]string{"up": "N", "down": "S", "left": "O", "right": "Q"}},
		{"R", map[domain.Direction]string{"up": "N", "down": "S", "left": "Q", "right": "O"}},
		{"S", map[domain.Direction]string{"up": "O", "down": "Q", "left": "R", "right": "P"}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, neighbourMap(t, tt.id))
		})
	}
}

func TestNeighbours_InsideFace(t *testing.T) {
	got := neighbourMap(t, "O4")
	assert.Equal(t, map[domain.Direction]string{"up": "O1", "down": "O7", "left": "O3", "right": "O5"}, got)
}

func TestNeighbours_AcrossFaces(t *testing.T) {
	tests := []struct {
		id   string
		dir  domain.Direction
		want string
	}{
		{"O0", domain.DirectionUp, "N6"},
		{"O6", domain.DirectionDown, "S0"},
		{"O3", domain.DirectionLeft, "R5"},
		{"R5", domain.DirectionRight, "O3"},
		{"P0", domain.DirectionUp, "N8"},
		{"P2", domain.DirectionUp, "N2"},
		{"Q0", domain.DirectionUp, "N2"},
		{"R0", domain.DirectionUp, "N0"},
		{"P6", domain.DirectionDown, "S2"},
		{"Q8", domain.DirectionDown, "S6"},
		{"R8", domain.DirectionDown, "S0"},
	}
	for _, tt := range tests {
		t.Run(tt.id+"-"+string(tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, neighbourMap(t, tt.id)[tt.dir])
		})
	}
}

func TestNeighbours_Symmetric(t *testing.T) {
	topo := New()
	for level := domain.Level(0); level <= 2; level++ {
		for i := int64(0); i < domain.GridSize(level); i++ {
			z, err := domain.ZoneAt(level, i)
			require.NoError(t, err)

			nbs, err := topo.Neighbours(z)
			require.NoError(t, err)
			require.Len(t, nbs, 4)

			for _, nb := range nbs {
				assert.Equal(t, z.Level(), nb.Zone.Level())
				assert.NotEqual(t, z, nb.Zone)

				back, err := topo.Neighbours(nb.Zone)
				require.NoError(t, err)
				found := false
				for _, b := range back {
					if b.Zone == z {
						found = true
					}
				}
				assert.True(t, found, "%s is a neighbour of %s but not vice versa", nb.Zone, z)
			}
		}
	}
}

func TestNeighbours_DeepestLevel(t *testing.T) {
	nbs, err := New().Neighbours(domain.MustParseZoneID("Q888888888"))
	require.NoError(t, err)
	for _, nb := range nbs {
		assert.Equal(t, domain.Level(9), nb.Zone.Level())
	}
}

func TestNeighbours_RootRejected(t *testing.T) {
	_, err := New().Neighbours(domain.Root)
	assert.Error(t, err)
}

func TestNeighbours_NavigatorContract(t *testing.T) {
	nav := domain.NewNavigator(New())
	nbs, err := nav.Neighbours(domain.MustParseZoneID("R12"))
	require.NoError(t, err)
	require.Len(t, nbs, 4)
	for i := 1; i < len(nbs); i++ {
		assert.Less(t, nbs[i-1].Direction, nbs[i].Direction)
	}
}
