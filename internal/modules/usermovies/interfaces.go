package usermovies

import (
	"context"

	"moviedeck/internal/domain"
)

// Backend is the set of client methods the user-movie service uses.
type Backend interface {
	GetJSON(ctx context.Context, endpoint string, out any) error
	PostJSON(ctx context.Context, endpoint string, payload any, out any) error
	PutJSON(ctx context.Context, endpoint string, payload any, out any) error
	DeleteJSON(ctx context.Context, endpoint string, out any) error
}

// MovieSource supplies a read-only snapshot of another collection for the
// duplicate-title scan.
type MovieSource interface {
	Movies() []domain.Movie
}

// SyncListener receives the completions other modules need to keep their own
// copy of a movie consistent.
type SyncListener interface {
	MovieUpdated(movie domain.Movie)
	MovieRemoved(movieID string)
}
