package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ChildBranching is the number of children derived for a non-root zone.
// The address grammar admits digit 8, but hierarchy navigation and
// containment claims enumerate digits 0..7 only.
const ChildBranching = 8

// Direction labels a neighbour relation
type Direction string

const (
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
)

// Directions lists every direction in label order
var Directions = []Direction{DirectionDown, DirectionLeft, DirectionRight, DirectionUp}

// Title returns the capitalised label used in direction URIs
func (d Direction) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Neighbour is an adjacent zone at the same level, tagged with its direction
type Neighbour struct {
	Direction Direction `json:"direction"`
	Zone      ZoneID    `json:"zone"`
}

// GridTopology computes same-level adjacency, including wraparound across
// face boundaries. Implementations must be safe for concurrent use.
type GridTopology interface {
	Neighbours(id ZoneID) ([]Neighbour, error)
}

// Navigator derives hierarchical relations between zones
type Navigator struct {
	topology GridTopology
}

// NewNavigator creates a navigator over the given topology
func NewNavigator(topology GridTopology) *Navigator {
	return &Navigator{topology: topology}
}

// Parent returns the enclosing zone. The root has no parent.
func (n *Navigator) Parent(id ZoneID) (ZoneID, bool) {
	if id.IsRoot() || !id.IsValid() {
		return ZoneID{}, false
	}
	if id.Level() == 0 {
		return Root, true
	}
	return ZoneID{face: id.face, digits: id.digits[:len(id.digits)-1]}, true
}

// Children returns the sub-zones in canonical order: the six faces for the
// root, digits 0..7 appended otherwise, and none at MaxLevel.
func (n *Navigator) Children(id ZoneID) []ZoneID {
	if id.IsRoot() {
		children := make([]ZoneID, 0, len(Faces))
		for _, f := range Faces {
			children = append(children, ZoneID{face: f})
		}
		return children
	}
	if !id.IsValid() || id.Level() >= MaxLevel {
		return []ZoneID{}
	}
	children := make([]ZoneID, 0, ChildBranching)
	for d := 0; d < ChildBranching; d++ {
		children = append(children, id.child(d))
	}
	return children
}

// Neighbours returns the four same-level neighbours sorted by direction
// label. The root has none.
func (n *Navigator) Neighbours(id ZoneID) ([]Neighbour, error) {
	if id.IsRoot() {
		return []Neighbour{}, nil
	}
	if !id.IsValid() {
		return nil, NewError(KindInvalidIdentifier, "zone identifier is not valid")
	}
	if n.topology == nil {
		return nil, NewError(KindInternalDataFailure, "no grid topology configured")
	}

	found, err := n.topology.Neighbours(id)
	if err != nil {
		return nil, fmt.Errorf("neighbours of %s: %w", id, err)
	}
	if len(found) != len(Directions) {
		return nil, NewError(KindInternalDataFailure,
			fmt.Sprintf("topology returned %d neighbours for %s, want %d", len(found), id, len(Directions)))
	}

	out := make([]Neighbour, len(found))
	copy(out, found)
	for _, nb := range out {
		if nb.Zone.Level() != id.Level() {
			return nil, NewError(KindInternalDataFailure,
				fmt.Sprintf("topology returned %s as neighbour of %s at a different level", nb.Zone, id))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Direction < out[j].Direction
	})
	return out, nil
}
