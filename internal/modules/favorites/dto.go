package favorites

import "moviedeck/internal/domain"

type ToggleRequest struct {
	IsFavorite bool `json:"isFavorite"`
}

// State is a point-in-time snapshot of the favorites slice. FavoriteMovieIDs
// is the source of truth for membership; FavoriteMovies is a hydrated cache
// that may lag behind it until the next fetch.
type State struct {
	FavoriteMovieIDs  []string
	FavoriteMovies    []domain.Movie
	Loading           bool
	Error             string
	ShowFavoritesOnly bool
}
