package usermovies

import "moviedeck/internal/domain"

// State is a point-in-time snapshot of the user-movie slice. Add, edit and
// delete carry independent busy flags so the UI can show separate
// indicators.
type State struct {
	UserMovies []domain.Movie
	Loading    bool
	Adding     bool
	Editing    bool
	Deleting   bool
	Error      string
}
