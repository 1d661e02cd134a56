package types

import "strings"

const (
	defaultTitle    = "Unknown Title"
	defaultOverview = "No overview available"
	unknownYear     = "Unknown"

	// Overviews longer than this many characters are truncated and marked
	// with an ellipsis.
	overviewLimit = 200
)

// RawMovie is the subset of a TMDB search result the app consumes. JSON
// nulls decode to zero values, so normalization only has to fill defaults.
type RawMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// Movie is a normalized search hit. Every field carries a total default;
// raw nulls from the provider never reach callers.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterURL   string  `json:"poster_url,omitempty"`
	ReleaseYear string  `json:"release_year"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// NewMovie normalizes a raw TMDB record. posterURL may be empty when the
// image configuration could not be resolved; that degrades the field rather
// than failing the record.
func NewMovie(raw RawMovie, posterURL string) Movie {
	title := raw.Title
	if title == "" {
		title = defaultTitle
	}

	return Movie{
		ID:          raw.ID,
		Title:       title,
		Overview:    normalizeOverview(raw.Overview),
		PosterURL:   posterURL,
		ReleaseYear: releaseYear(raw.ReleaseDate),
		VoteAverage: raw.VoteAverage,
		VoteCount:   raw.VoteCount,
	}
}

func normalizeOverview(overview string) string {
	if overview == "" {
		return defaultOverview
	}
	runes := []rune(overview)
	if len(runes) > overviewLimit {
		return string(runes[:overviewLimit]) + "..."
	}
	return overview
}

// releaseYear extracts the leading year from a "YYYY-MM-DD" release date.
func releaseYear(date string) string {
	if date == "" {
		return unknownYear
	}
	year, _, _ := strings.Cut(date, "-")
	if year == "" {
		return unknownYear
	}
	return year
}

// SearchResponse carries one page of normalized search hits.
type SearchResponse struct {
	Query        string  `json:"query"`
	Movies       []Movie `json:"movies"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}
