package usermovies

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"moviedeck/internal/domain"
)

// Service owns the list of movies the current user has authored. Adds and
// edits are guarded by a duplicate-title scan over all three movie
// collections combined; successful edits and deletes are broadcast to sync
// listeners so duplicated records stay consistent.
type Service struct {
	backend   Backend
	sources   []MovieSource
	listeners []SyncListener
	log       *slog.Logger

	mu         sync.RWMutex
	userMovies []domain.Movie
	loading    bool
	adding     bool
	editing    bool
	deleting   bool
	err        string
}

// NewService builds the service. sources are the other collections the
// duplicate-title scan inspects (search results, fetched favorites).
func NewService(backend Backend, log *slog.Logger, sources ...MovieSource) *Service {
	return &Service{backend: backend, log: log, sources: sources}
}

// AddSyncListener registers a listener for edit/delete completions.
func (s *Service) AddSyncListener(l SyncListener) {
	s.listeners = append(s.listeners, l)
}

func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		UserMovies: append([]domain.Movie(nil), s.userMovies...),
		Loading:    s.loading,
		Adding:     s.adding,
		Editing:    s.editing,
		Deleting:   s.deleting,
		Error:      s.err,
	}
}

// Movies returns a snapshot of the user-authored list.
func (s *Service) Movies() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Movie(nil), s.userMovies...)
}

// Add creates a user movie. A title already present in any collection fails
// with ErrDuplicateTitle without contacting the backend.
func (s *Service) Add(ctx context.Context, userID string, data domain.CreateMovieData) (*domain.Movie, error) {
	s.setFlag(&s.adding, true)

	if s.titleExists(data.Title, "") {
		s.fail(&s.adding, ErrDuplicateTitle.Error())
		return nil, ErrDuplicateTitle
	}

	var created domain.Movie
	endpoint := fmt.Sprintf("/users/%s/movies", userID)
	if err := s.backend.PostJSON(ctx, endpoint, data, &created); err != nil {
		s.fail(&s.adding, err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.adding = false
	s.userMovies = append(s.userMovies, created)
	s.mu.Unlock()
	return &created, nil
}

// Edit updates a user movie. The duplicate scan excludes the movie being
// edited. On success the updated record replaces the stored one and sync
// listeners are notified.
func (s *Service) Edit(ctx context.Context, userID, movieID string, data domain.CreateMovieData) (*domain.Movie, error) {
	s.setFlag(&s.editing, true)

	if s.titleExists(data.Title, movieID) {
		s.fail(&s.editing, ErrDuplicateTitle.Error())
		return nil, ErrDuplicateTitle
	}

	var updated domain.Movie
	endpoint := fmt.Sprintf("/users/%s/movies/%s", userID, movieID)
	if err := s.backend.PutJSON(ctx, endpoint, data, &updated); err != nil {
		s.fail(&s.editing, err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.editing = false
	for i := range s.userMovies {
		if s.userMovies[i].ID == movieID {
			s.userMovies[i] = updated
		}
	}
	s.mu.Unlock()

	for _, l := range s.listeners {
		l.MovieUpdated(updated)
	}
	return &updated, nil
}

// Delete removes a user movie and notifies sync listeners.
func (s *Service) Delete(ctx context.Context, userID, movieID string) error {
	s.setFlag(&s.deleting, true)

	endpoint := fmt.Sprintf("/users/%s/movies/%s", userID, movieID)
	if err := s.backend.DeleteJSON(ctx, endpoint, nil); err != nil {
		s.fail(&s.deleting, err.Error())
		return err
	}

	s.mu.Lock()
	s.deleting = false
	kept := s.userMovies[:0]
	for _, m := range s.userMovies {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	s.userMovies = kept
	s.mu.Unlock()

	for _, l := range s.listeners {
		l.MovieRemoved(movieID)
	}
	return nil
}

// Fetch replaces the list with the user's movies, keeping only entries
// tagged custom in case the endpoint returns a mixed set.
func (s *Service) Fetch(ctx context.Context, userID string) ([]domain.Movie, error) {
	s.setFlag(&s.loading, true)

	var all []domain.Movie
	endpoint := fmt.Sprintf("/users/%s/movies", userID)
	if err := s.backend.GetJSON(ctx, endpoint, &all); err != nil {
		s.fail(&s.loading, err.Error())
		return nil, err
	}

	custom := make([]domain.Movie, 0, len(all))
	for _, m := range all {
		if m.Source == domain.SourceCustom {
			custom = append(custom, m)
		}
	}

	s.mu.Lock()
	s.loading = false
	s.userMovies = custom
	s.mu.Unlock()
	return append([]domain.Movie(nil), custom...), nil
}

func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *Service) ClearUserMovies() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userMovies = nil
}

// titleExists scans the union of the user list and every registered source
// for a case-insensitive, whitespace-trimmed title match, skipping
// excludeID when editing.
func (s *Service) titleExists(title, excludeID string) bool {
	want := normalizeTitle(title)

	for _, m := range s.Movies() {
		if m.ID != excludeID && normalizeTitle(m.Title) == want {
			return true
		}
	}
	for _, src := range s.sources {
		for _, m := range src.Movies() {
			if m.ID != excludeID && normalizeTitle(m.Title) == want {
				return true
			}
		}
	}
	return false
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func (s *Service) setFlag(flag *bool, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*flag = v
	s.err = ""
}

func (s *Service) fail(flag *bool, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*flag = false
	s.err = msg
}
