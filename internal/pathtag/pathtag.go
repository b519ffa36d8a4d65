package pathtag

import (
	"strconv"
	"strings"
)

// Tag names used in path segments.
const (
	IMDB = "imdb"
	TVDB = "tvdb"
	TMDB = "tmdb"
)

const separator = " - "

// ID is one external identifier candidate for a catalog path.
type ID struct {
	Name    string
	Value   string
	Present bool
}

// String builds a present identifier.
func String(name, value string) ID {
	return ID{Name: name, Value: value, Present: true}
}

// OptionalString builds an identifier from a nullable string field.
func OptionalString(name string, value *string) ID {
	if value == nil {
		return ID{Name: name}
	}
	return String(name, *value)
}

// OptionalInt builds an identifier from a nullable numeric field.
func OptionalInt(name string, value *int64) ID {
	if value == nil {
		return ID{Name: name}
	}
	return String(name, strconv.FormatInt(*value, 10))
}

// Segment renders the bracketed tag, e.g. {imdb-tt1234567}.
func (id ID) Segment() string {
	return "{" + id.Name + "-" + id.Value + "}"
}

// FoundIn reports whether the identifier value occurs anywhere in path.
// Absent identifiers are never found. The check is a raw substring search,
// so digits that happen to appear elsewhere in the path also match.
func (id ID) FoundIn(path string) bool {
	return id.Present && strings.Contains(path, id.Value)
}

// Normalize appends a tag segment for every present identifier that is not
// already contained in original. Segments keep the order of ids. When nothing
// needs to be added the original path is returned unchanged.
func Normalize(original string, ids ...ID) string {
	segments := make([]string, 0, len(ids))
	for _, id := range ids {
		if !id.Present || id.FoundIn(original) {
			continue
		}
		segments = append(segments, id.Segment())
	}
	if len(segments) == 0 {
		return original
	}
	trimmed := strings.TrimSuffix(original, "/")
	return trimmed + separator + strings.Join(segments, separator)
}
