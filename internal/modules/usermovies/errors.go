package usermovies

import "errors"

// ErrDuplicateTitle rejects an add or edit whose title already exists in any
// of the three movie collections. Raised client-side, before any network
// call.
var ErrDuplicateTitle = errors.New("A movie with the same name already exists.")
