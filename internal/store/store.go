// Package store composes the four state slices over one backend client and
// one local state store, and wires the cross-slice couplings: user-movie
// edit/delete completions patch the search results, and logout clears
// favorites along with the session.
package store

import (
	"context"
	"log/slog"

	"moviedeck/internal/modules/auth"
	"moviedeck/internal/modules/favorites"
	"moviedeck/internal/modules/movies"
	"moviedeck/internal/modules/usermovies"
	"moviedeck/internal/storage"
)

// Backend is the full client surface the slices need. *api.Client satisfies
// it.
type Backend interface {
	GetJSON(ctx context.Context, endpoint string, out any) error
	PostJSON(ctx context.Context, endpoint string, payload any, out any) error
	PutJSON(ctx context.Context, endpoint string, payload any, out any) error
	DeleteJSON(ctx context.Context, endpoint string, out any) error
}

type Store struct {
	Auth       *auth.Service
	Movies     *movies.Service
	UserMovies *usermovies.Service
	Favorites  *favorites.Service
}

func New(backend Backend, local storage.Store, log *slog.Logger) *Store {
	authSvc := auth.NewService(backend, local, log)
	movieSvc := movies.NewService(backend, log)
	favSvc := favorites.NewService(backend, local, log)

	// The duplicate-title scan inspects search results and fetched
	// favorites alongside the user's own list.
	userSvc := usermovies.NewService(backend, log, movieSvc, favSvc)
	userSvc.AddSyncListener(movieSvc)

	return &Store{
		Auth:       authSvc,
		Movies:     movieSvc,
		UserMovies: userSvc,
		Favorites:  favSvc,
	}
}

// Logout clears the session and everything owned by it. The auth slice only
// clears itself; coordinating the rest is the store's job.
func (s *Store) Logout() {
	s.Auth.Logout()
	s.Favorites.ClearFavorites()
	s.UserMovies.ClearUserMovies()
}
