package reconcile

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"arrtag/internal/arr"
	"arrtag/internal/pathtag"
)

// Backend names used in logs and reports.
const (
	BackendSeries = "series"
	BackendMovies = "movies"
)

// Entry is the backend-neutral view of a catalog record.
type Entry struct {
	ID    int64
	Title string
	Year  int
	Path  string
}

// Backend describes how the scanner reads and edits one catalog. T is the
// listed record type and P the update payload.
type Backend[T, P any] struct {
	Name  string
	Label string

	List   func(ctx context.Context) ([]T, error)
	Update func(ctx context.Context, id int64, payload P) (*arr.Response, error)

	Describe func(T) Entry
	// IDs lists the identifiers in tag order, IMDB first.
	IDs func(T) []pathtag.ID
	// NeedsTag decides whether the entry is considered for a path change.
	NeedsTag func(T) bool
	// Payload echoes the record back with the new path.
	Payload func(item T, newPath string) P

	// VerboseFailures adds the rejected payload and response body to the
	// logs when an update fails.
	VerboseFailures bool
}

// SeriesBackend reconciles Sonarr series folders with IMDB and TVDB tags.
func SeriesBackend(client *arr.Client) Backend[arr.Series, arr.SeriesUpdate] {
	return Backend[arr.Series, arr.SeriesUpdate]{
		Name:   BackendSeries,
		Label:  "Sonarr series",
		List:   client.ListSeries,
		Update: client.UpdateSeries,
		Describe: func(s arr.Series) Entry {
			return Entry{ID: s.ID, Title: s.Title, Year: s.Year, Path: s.Path}
		},
		IDs:      seriesIDs,
		NeedsTag: seriesNeedsTag,
		Payload: func(s arr.Series, newPath string) arr.SeriesUpdate {
			return s.UpdateWithPath(newPath)
		},
		VerboseFailures: true,
	}
}

// MovieBackend reconciles Radarr movie folders with IMDB and TMDB tags.
func MovieBackend(client *arr.Client) Backend[arr.Movie, arr.MovieUpdate] {
	return Backend[arr.Movie, arr.MovieUpdate]{
		Name:   BackendMovies,
		Label:  "Radarr movies",
		List:   client.ListMovies,
		Update: client.UpdateMovie,
		Describe: func(m arr.Movie) Entry {
			return Entry{ID: m.ID, Title: m.Title, Year: m.Year, Path: m.Path}
		},
		IDs:      movieIDs,
		NeedsTag: movieNeedsTag,
		Payload: func(m arr.Movie, newPath string) arr.MovieUpdate {
			return m.UpdateWithPath(newPath)
		},
	}
}

func seriesIDs(s arr.Series) []pathtag.ID {
	return []pathtag.ID{
		pathtag.OptionalString(pathtag.IMDB, s.IMDBID),
		pathtag.OptionalInt(pathtag.TVDB, s.TVDBID),
	}
}

func movieIDs(m arr.Movie) []pathtag.ID {
	return []pathtag.ID{
		pathtag.OptionalString(pathtag.IMDB, m.IMDBID),
		pathtag.OptionalInt(pathtag.TMDB, m.TMDBID),
	}
}

// seriesNeedsTag fires when neither id appears in the path, or when the
// series still lives under a generic "tvshows" folder.
func seriesNeedsTag(s arr.Series) bool {
	ids := seriesIDs(s)
	imdb, tvdb := ids[0], ids[1]
	if !imdb.FoundIn(s.Path) && !tvdb.FoundIn(s.Path) {
		return true
	}
	return strings.Contains(cases.Lower(language.Und).String(s.Path), "tvshows")
}

// movieNeedsTag fires when neither id appears in the path, or when either id
// is missing from the record.
func movieNeedsTag(m arr.Movie) bool {
	ids := movieIDs(m)
	imdb, tmdb := ids[0], ids[1]
	if !imdb.FoundIn(m.Path) && !tmdb.FoundIn(m.Path) {
		return true
	}
	return !tmdb.Present || !imdb.Present
}
