package domain

type MovieSource string

const (
	SourceCatalog MovieSource = "catalog"
	SourceCustom  MovieSource = "custom"
)

// Movie is a catalog or user-authored title. Field names follow the
// backend wire format.
type Movie struct {
	ID             string      `json:"id"`
	OmdbID         string      `json:"omdbId,omitempty"`
	Title          string      `json:"title"`
	Year           int         `json:"year"`
	RuntimeMinutes int         `json:"runtimeMinutes"`
	Genre          []string    `json:"genre"`
	Director       []string    `json:"director"`
	Poster         string      `json:"poster,omitempty"`
	Source         MovieSource `json:"source"`
}

// CreateMovieData is the input shape for adding or editing a user movie.
type CreateMovieData struct {
	Title          string   `json:"title"`
	Year           int      `json:"year"`
	RuntimeMinutes int      `json:"runtimeMinutes"`
	Genre          []string `json:"genre"`
	Director       []string `json:"director"`
	Poster         string   `json:"poster,omitempty"`
}
