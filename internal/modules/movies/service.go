package movies

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"moviedeck/internal/domain"
)

// Service owns the current catalog search results, the query string and the
// result metadata.
type Service struct {
	backend Backend
	log     *slog.Logger

	mu           sync.RWMutex
	movies       []domain.Movie
	loading      bool
	err          string
	searchQuery  string
	totalResults int
	currentPage  int
}

func NewService(backend Backend, log *slog.Logger) *Service {
	return &Service{backend: backend, log: log, currentPage: 1}
}

func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Movies:       append([]domain.Movie(nil), s.movies...),
		Loading:      s.loading,
		Error:        s.err,
		SearchQuery:  s.searchQuery,
		TotalResults: s.totalResults,
		CurrentPage:  s.currentPage,
	}
}

// Movies returns a snapshot of the current result list. Satisfies the
// user-movie module's duplicate-scan source.
func (s *Service) Movies() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Movie(nil), s.movies...)
}

// Search posts the trimmed query to the catalog. Page 1 replaces the result
// list, later pages append. The total is derived from the returned item
// count, not a server-declared figure.
func (s *Service) Search(ctx context.Context, query string, page int) ([]domain.Movie, error) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	var res SearchResponse
	err := s.backend.PostJSON(ctx, "/movies/search", SearchRequest{Query: strings.TrimSpace(query)}, &res)
	if err == nil && len(res.Items) == 0 {
		err = ErrNoMoviesFound
	}
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = err.Error()
		if s.currentPage == 1 {
			s.movies = nil
		}
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if page == 1 {
		s.movies = res.Items
	} else {
		s.movies = append(s.movies, res.Items...)
	}
	s.totalResults = len(res.Items)
	s.currentPage = page
	s.searchQuery = query
	return append([]domain.Movie(nil), res.Items...), nil
}

func (s *Service) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// ClearMovies resets the list, total, page and error together.
func (s *Service) ClearMovies() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = nil
	s.totalResults = 0
	s.currentPage = 1
	s.err = ""
}

func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// MovieUpdated patches the in-place copy of a movie that was edited through
// the user-movie module, so a title appearing in both lists stays consistent
// without a refetch.
func (s *Service) MovieUpdated(movie domain.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.movies {
		if s.movies[i].ID == movie.ID {
			s.movies[i] = movie
		}
	}
}

// MovieRemoved drops a movie deleted through the user-movie module from the
// result list.
func (s *Service) MovieRemoved(movieID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.movies[:0]
	for _, m := range s.movies {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	s.movies = kept
}
