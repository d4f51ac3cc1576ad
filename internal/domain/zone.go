package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RootToken is the identifier of the whole-Earth zone
const RootToken = "Earth"

// Faces lists the six top-level face letters in canonical order
var Faces = [...]byte{'N', 'O', 'P', 'Q', 'R', 'S'}

// MaxLevel is the deepest resolution served by the grid
const MaxLevel = 9

// Level is the hierarchical resolution of a zone
type Level int

// RootLevel is the sentinel level of the root zone
const RootLevel Level = -1

// String returns "Earth" for the root level and the decimal level otherwise
func (l Level) String() string {
	if l == RootLevel {
		return RootToken
	}
	return strconv.Itoa(int(l))
}

// ZoneID identifies a zone: either the root, or a face letter followed by
// an ordered digit path. The zero value is not a valid identifier.
type ZoneID struct {
	root   bool
	face   byte
	digits string
}

// Root is the whole-Earth zone
var Root = ZoneID{root: true}

// ParseZoneID parses the textual form Earth | [NOPQRS][0-8]*
func ParseZoneID(text string) (ZoneID, error) {
	if text == RootToken {
		return Root, nil
	}
	if text == "" {
		return ZoneID{}, NewError(KindInvalidIdentifier, "zone identifier is empty")
	}
	if !isFace(text[0]) {
		return ZoneID{}, NewError(KindInvalidIdentifier,
			fmt.Sprintf("zone identifier %q must start with one of N, O, P, Q, R, S", text))
	}
	digits := text[1:]
	if len(digits) > MaxLevel {
		return ZoneID{}, NewError(KindInvalidIdentifier,
			fmt.Sprintf("zone identifier %q is deeper than level %d", text, MaxLevel))
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '8' {
			return ZoneID{}, NewError(KindInvalidIdentifier,
				fmt.Sprintf("zone identifier %q contains %q; digits must be 0-8", text, digits[i]))
		}
	}
	return ZoneID{face: text[0], digits: digits}, nil
}

// MustParseZoneID is ParseZoneID for known-good literals
func MustParseZoneID(text string) ZoneID {
	id, err := ParseZoneID(text)
	if err != nil {
		panic(err)
	}
	return id
}

// NewZoneID builds a face zone from its face letter and digit path
func NewZoneID(face byte, digits ...int) (ZoneID, error) {
	var sb strings.Builder
	sb.WriteByte(face)
	for _, d := range digits {
		if d < 0 || d > 8 {
			return ZoneID{}, NewError(KindInvalidIdentifier, fmt.Sprintf("digit %d out of range 0-8", d))
		}
		sb.WriteByte(byte('0' + d))
	}
	return ParseZoneID(sb.String())
}

// IsRoot reports whether the identifier is the whole-Earth zone
func (z ZoneID) IsRoot() bool {
	return z.root
}

// IsValid reports whether the identifier was produced by the codec
func (z ZoneID) IsValid() bool {
	return z.root || isFace(z.face)
}

// Face returns the face letter, or 0 for the root
func (z ZoneID) Face() byte {
	return z.face
}

// Digits returns a copy of the digit path
func (z ZoneID) Digits() []int {
	out := make([]int, len(z.digits))
	for i := 0; i < len(z.digits); i++ {
		out[i] = int(z.digits[i] - '0')
	}
	return out
}

// Level returns RootLevel for the root and the digit count otherwise
func (z ZoneID) Level() Level {
	if z.root {
		return RootLevel
	}
	return Level(len(z.digits))
}

// String encodes the identifier; it is the inverse of ParseZoneID
func (z ZoneID) String() string {
	if z.root {
		return RootToken
	}
	if z.face == 0 {
		return ""
	}
	return string(z.face) + z.digits
}

// MarshalText implements encoding.TextMarshaler
func (z ZoneID) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (z *ZoneID) UnmarshalText(text []byte) error {
	id, err := ParseZoneID(string(text))
	if err != nil {
		return err
	}
	*z = id
	return nil
}

// child appends one digit; callers guarantee the depth bound
func (z ZoneID) child(d int) ZoneID {
	return ZoneID{face: z.face, digits: z.digits + string(rune('0'+d))}
}

func isFace(b byte) bool {
	for _, f := range Faces {
		if b == f {
			return true
		}
	}
	return false
}
