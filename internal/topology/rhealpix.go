// Package topology provides the grid-topology capability for the TB16Pix
// rHEALPix grid (N_side = 3, north and south squares attached to face O).
//
// The six faces are laid out in the rHEALPix plane as
//
//	N
//	O P Q R
//	S
//
// Each face is divided into 3x3 sub-squares per level, numbered row-major
// from the top-left (digit 0) to the bottom-right (digit 8). Adjacency is
// computed on integer (row, col) coordinates; moving off a face re-enters the
// neighbouring face with the rotation implied by the layout above. No
// geodesic computation happens here.
package topology

import (
	"fmt"

	"tb16pix/internal/domain"
)

const side = 3

// RHEALPix answers neighbour queries on the planar rHEALPix layout
type RHEALPix struct{}

// New creates the topology
func New() *RHEALPix {
	return &RHEALPix{}
}

// cell is a zone in face coordinates; n is the grid width at the zone's level
type cell struct {
	face     byte
	row, col int
	n        int
}

// Neighbours returns the up, down, left and right neighbours of id
func (t *RHEALPix) Neighbours(id domain.ZoneID) ([]domain.Neighbour, error) {
	if id.IsRoot() || !id.IsValid() {
		return nil, fmt.Errorf("no neighbours defined for %q", id.String())
	}

	c := toCell(id)
	out := make([]domain.Neighbour, 0, 4)
	for _, dir := range domain.Directions {
		nb := step(c, dir)
		z, err := fromCell(nb, id.Level())
		if err != nil {
			return nil, fmt.Errorf("neighbour %s of %s: %w", dir, id, err)
		}
		out = append(out, domain.Neighbour{Direction: dir, Zone: z})
	}
	return out, nil
}

func toCell(id domain.ZoneID) cell {
	c := cell{face: id.Face(), n: 1}
	for _, d := range id.Digits() {
		c.row = c.row*side + d/side
		c.col = c.col*side + d%side
		c.n *= side
	}
	return c
}

func fromCell(c cell, level domain.Level) (domain.ZoneID, error) {
	digits := make([]int, level)
	row, col := c.row, c.col
	for i := int(level) - 1; i >= 0; i-- {
		digits[i] = (row%side)*side + col%side
		row /= side
		col /= side
	}
	return domain.NewZoneID(c.face, digits...)
}

// equatorial faces in west-to-east order
var equator = []byte{'O', 'P', 'Q', 'R'}

func equatorIndex(face byte) int {
	for i, f := range equator {
		if f == face {
			return i
		}
	}
	return -1
}

func step(c cell, dir domain.Direction) cell {
	last := c.n - 1
	switch dir {
	case domain.DirectionUp:
		if c.row > 0 {
			return cell{c.face, c.row - 1, c.col, c.n}
		}
		return crossUp(c)
	case domain.DirectionDown:
		if c.row < last {
			return cell{c.face, c.row + 1, c.col, c.n}
		}
		return crossDown(c)
	case domain.DirectionLeft:
		if c.col > 0 {
			return cell{c.face, c.row, c.col - 1, c.n}
		}
		return crossLeft(c)
	default:
		if c.col < last {
			return cell{c.face, c.row, c.col + 1, c.n}
		}
		return crossRight(c)
	}
}

func crossUp(c cell) cell {
	last := c.n - 1
	switch c.face {
	case 'N':
		// top edge of N borders the top edge of Q
		return cell{'Q', 0, last - c.col, c.n}
	case 'S':
		return cell{'O', last, c.col, c.n}
	case 'O':
		return cell{'N', last, c.col, c.n}
	case 'P':
		return cell{'N', last - c.col, last, c.n}
	case 'Q':
		return cell{'N', 0, last - c.col, c.n}
	default: // R
		return cell{'N', c.col, 0, c.n}
	}
}

func crossDown(c cell) cell {
	last := c.n - 1
	switch c.face {
	case 'N':
		return cell{'O', 0, c.col, c.n}
	case 'S':
		// bottom edge of S borders the bottom edge of Q
		return cell{'Q', last, last - c.col, c.n}
	case 'O':
		return cell{'S', 0, c.col, c.n}
	case 'P':
		return cell{'S', c.col, last, c.n}
	case 'Q':
		return cell{'S', last, last - c.col, c.n}
	default: // R
		return cell{'S', last - c.col, 0, c.n}
	}
}

func crossLeft(c cell) cell {
	last := c.n - 1
	switch c.face {
	case 'N':
		return cell{'R', 0, c.row, c.n}
	case 'S':
		return cell{'R', last, last - c.row, c.n}
	default:
		i := equatorIndex(c.face)
		return cell{equator[(i+3)%4], c.row, last, c.n}
	}
}

func crossRight(c cell) cell {
	last := c.n - 1
	switch c.face {
	case 'N':
		return cell{'P', 0, last - c.row, c.n}
	case 'S':
		return cell{'P', last, c.row, c.n}
	default:
		i := equatorIndex(c.face)
		return cell{equator[(i+1)%4], c.row, 0, c.n}
	}
}
