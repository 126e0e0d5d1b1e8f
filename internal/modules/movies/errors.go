package movies

import "errors"

// ErrNoMoviesFound rejects a search whose response carried zero items. An
// empty result list is deliberately an error condition, not a valid empty
// page.
var ErrNoMoviesFound = errors.New("No movies found")
