package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"moviedeck/internal/domain"
	"moviedeck/internal/storage"
)

// Service owns the favorited movie IDs and the hydrated favorite records.
// The ID set is mirrored to local storage on every mutation so it survives
// restarts even before the user re-authenticates.
type Service struct {
	backend Backend
	local   storage.Store
	log     *slog.Logger

	mu                sync.RWMutex
	favoriteMovieIDs  []string
	favoriteMovies    []domain.Movie
	loading           bool
	err               string
	showFavoritesOnly bool
}

// NewService seeds the ID set from local storage.
func NewService(backend Backend, local storage.Store, log *slog.Logger) *Service {
	return &Service{
		backend:          backend,
		local:            local,
		log:              log,
		favoriteMovieIDs: local.FavoriteIDs(),
	}
}

func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		FavoriteMovieIDs:  append([]string(nil), s.favoriteMovieIDs...),
		FavoriteMovies:    append([]domain.Movie(nil), s.favoriteMovies...),
		Loading:           s.loading,
		Error:             s.err,
		ShowFavoritesOnly: s.showFavoritesOnly,
	}
}

// Movies returns a snapshot of the hydrated favorite records. Satisfies the
// user-movie module's duplicate-scan source.
func (s *Service) Movies() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Movie(nil), s.favoriteMovies...)
}

// IsFavorite reports membership against the ID set, the source of truth.
func (s *Service) IsFavorite(movieID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(movieID) >= 0
}

// Toggle flips the favorite state of a movie. The desired state is computed
// from current membership and sent to the backend; on success the toggle is
// applied locally. Removing drops both the ID and the hydrated record; adding
// records the ID only, leaving hydration to the next fetch.
func (s *Service) Toggle(ctx context.Context, userID, movieID string) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	isFavorite := s.indexOf(movieID) >= 0
	s.mu.Unlock()

	endpoint := fmt.Sprintf("/users/%s/movies/%s/favorite", userID, movieID)
	if err := s.backend.PutJSON(ctx, endpoint, ToggleRequest{IsFavorite: !isFavorite}, nil); err != nil {
		s.reject(err.Error())
		return err
	}

	s.mu.Lock()
	s.loading = false
	if i := s.indexOf(movieID); i >= 0 {
		s.favoriteMovieIDs = append(s.favoriteMovieIDs[:i], s.favoriteMovieIDs[i+1:]...)
		kept := s.favoriteMovies[:0]
		for _, m := range s.favoriteMovies {
			if m.ID != movieID {
				kept = append(kept, m)
			}
		}
		s.favoriteMovies = kept
	} else {
		s.favoriteMovieIDs = append(s.favoriteMovieIDs, movieID)
	}
	ids := append([]string(nil), s.favoriteMovieIDs...)
	s.mu.Unlock()

	s.persist(ids)
	return nil
}

// Fetch replaces both the ID set and the hydrated cache from the backend's
// authoritative favorites list.
func (s *Service) Fetch(ctx context.Context, userID string) ([]domain.Movie, error) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	var favoriteMovies []domain.Movie
	endpoint := fmt.Sprintf("/users/%s/movies?favorites=true", userID)
	if err := s.backend.GetJSON(ctx, endpoint, &favoriteMovies); err != nil {
		s.reject(err.Error())
		return nil, err
	}

	ids := make([]string, 0, len(favoriteMovies))
	for _, m := range favoriteMovies {
		ids = append(ids, m.ID)
	}

	s.mu.Lock()
	s.loading = false
	s.favoriteMovies = favoriteMovies
	s.favoriteMovieIDs = ids
	s.mu.Unlock()

	s.persist(append([]string(nil), ids...))
	return append([]domain.Movie(nil), favoriteMovies...), nil
}

func (s *Service) ToggleShowFavoritesOnly() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showFavoritesOnly = !s.showFavoritesOnly
}

func (s *Service) SetShowFavoritesOnly(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showFavoritesOnly = v
}

// ClearFavorites empties both collections, turns the favorites-only view off
// and removes the persisted ID set. Called on logout: favorites are
// meaningless without an owner.
func (s *Service) ClearFavorites() {
	s.mu.Lock()
	s.favoriteMovieIDs = nil
	s.favoriteMovies = nil
	s.showFavoritesOnly = false
	s.mu.Unlock()

	if err := s.local.DeleteFavoriteIDs(); err != nil {
		s.log.Warn("failed to remove persisted favorite ids", "error", err)
	}
}

func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *Service) indexOf(movieID string) int {
	for i, id := range s.favoriteMovieIDs {
		if id == movieID {
			return i
		}
	}
	return -1
}

func (s *Service) reject(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = msg
}

func (s *Service) persist(ids []string) {
	if err := s.local.SetFavoriteIDs(ids); err != nil {
		s.log.Warn("failed to persist favorite ids", "error", err)
	}
}
