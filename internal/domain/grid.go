package domain

import (
	"fmt"
	"strings"
)

// CollectionToken returns the canonical collection id for a level, e.g. "level3"
func CollectionToken(level Level) string {
	return fmt.Sprintf("level%d", level)
}

// ParseCollectionLevel reads the level from a collection id. Any token whose
// final character is a digit is accepted ("level3", "resolution-3", "3").
func ParseCollectionLevel(token string) (Level, error) {
	if token == "" || token[len(token)-1] < '0' || token[len(token)-1] > '9' {
		return 0, InvalidCollectionLevel()
	}
	return Level(token[len(token)-1] - '0'), nil
}

// InvalidCollectionLevel returns the error listing every valid collection id
func InvalidCollectionLevel() *Error {
	valid := make([]string, 0, MaxLevel+1)
	for l := Level(0); l <= MaxLevel; l++ {
		valid = append(valid, "'"+CollectionToken(l)+"'")
	}
	return NewError(KindInvalidCollectionLevel, "The Collection ID must be one of "+strings.Join(valid, ", "))
}

// GridSize returns the number of zones at a level: six faces times 9^level
func GridSize(level Level) int64 {
	if level < 0 || level > MaxLevel {
		return 0
	}
	size := int64(len(Faces))
	for i := Level(0); i < level; i++ {
		size *= 9
	}
	return size
}

// ZoneAt returns the index-th zone of a level in lexicographic order
func ZoneAt(level Level, index int64) (ZoneID, error) {
	size := GridSize(level)
	if size == 0 {
		return ZoneID{}, NewError(KindInvalidCollectionLevel, fmt.Sprintf("level %d is outside 0-%d", level, MaxLevel))
	}
	if index < 0 || index >= size {
		return ZoneID{}, NewError(KindInvalidIdentifier, fmt.Sprintf("index %d is outside the grid of %d zones", index, size))
	}

	perFace := size / int64(len(Faces))
	face := Faces[index/perFace]
	rest := index % perFace

	digits := make([]byte, level)
	for i := int(level) - 1; i >= 0; i-- {
		digits[i] = byte('0' + rest%9)
		rest /= 9
	}
	return ZoneID{face: face, digits: string(digits)}, nil
}

// GridPage returns up to limit zones of a level starting at offset
func GridPage(level Level, offset, limit int64) ([]ZoneID, error) {
	size := GridSize(level)
	if size == 0 {
		return nil, NewError(KindInvalidCollectionLevel, fmt.Sprintf("level %d is outside 0-%d", level, MaxLevel))
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + limit
	if end > size {
		end = size
	}
	zones := make([]ZoneID, 0, max(end-offset, 0))
	for i := offset; i < end; i++ {
		z, err := ZoneAt(level, i)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// Collection is one grid of the dataset as published in the data graph
type Collection struct {
	URI   string `json:"uri"`
	Label string `json:"label"`
}

// Token returns the collection id, the final segment of its URI
func (c Collection) Token() string {
	return c.URI[strings.LastIndex(c.URI, "/")+1:]
}
