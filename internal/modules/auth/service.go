package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"moviedeck/internal/domain"
	"moviedeck/internal/storage"
)

// Service owns the current user identity, bearer token and authentication
// status. Token and identity are set or cleared together; a stored token
// without a verified identity is resolved by VerifyToken.
type Service struct {
	backend Backend
	local   storage.Store
	log     *slog.Logger

	mu              sync.RWMutex
	user            *domain.User
	token           string
	isAuthenticated bool
	loading         bool
	err             string
}

// NewService seeds the token from local storage: a persisted token counts as
// authenticated until a verification round-trip says otherwise.
func NewService(backend Backend, local storage.Store, log *slog.Logger) *Service {
	s := &Service{backend: backend, local: local, log: log}
	if token, ok := local.Token(); ok && token != "" {
		s.token = token
		s.isAuthenticated = true
	}
	return s
}

func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{
		Token:           s.token,
		IsAuthenticated: s.isAuthenticated,
		Loading:         s.loading,
		Error:           s.err,
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Register creates an account and signs the new user in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	s.begin()

	var res AuthResponse
	if err := s.backend.PostJSON(ctx, "/auth/register", req, &res); err != nil {
		s.failAuth(err.Error())
		return nil, err
	}
	s.completeAuth(res)
	return res.User, nil
}

// Login authenticates with a username or email.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	s.begin()

	var res AuthResponse
	if err := s.backend.PostJSON(ctx, "/auth/login", req, &res); err != nil {
		s.failAuth(err.Error())
		return nil, err
	}
	s.completeAuth(res)
	return res.User, nil
}

// VerifyToken validates the held token against the backend, re-deriving the
// identity on cold start. Any failure clears the whole session, including
// the persisted token.
func (s *Service) VerifyToken(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	token := s.token
	s.loading = true
	s.mu.Unlock()

	if token == "" {
		s.rejectVerify(ErrNoToken.Error())
		return nil, ErrNoToken
	}

	var res TokenVerifyResponse
	if err := s.backend.PostJSON(ctx, "/auth/verify", nil, &res); err != nil {
		s.rejectVerify(err.Error())
		return nil, err
	}
	if !res.Valid {
		err := error(ErrTokenInvalid)
		if res.Error != "" {
			err = errors.New(res.Error)
		}
		s.rejectVerify(err.Error())
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if res.User != nil {
		s.user = res.User
	}
	s.isAuthenticated = true
	s.err = ""
	var u *domain.User
	if s.user != nil {
		copied := *s.user
		u = &copied
	}
	return u, nil
}

// Logout clears identity, token and error, and removes the persisted token.
// Favorites are cleared by the store, not here.
func (s *Service) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.isAuthenticated = false
	s.err = ""
	s.mu.Unlock()

	if err := s.local.DeleteToken(); err != nil {
		s.log.Warn("failed to remove persisted token", "error", err)
	}
}

func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *Service) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

// failAuth records a rejected register/login: the authenticated flag drops
// but any previously known identity is left untouched.
func (s *Service) failAuth(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = msg
	s.isAuthenticated = false
}

func (s *Service) completeAuth(res AuthResponse) {
	s.mu.Lock()
	s.loading = false
	s.user = res.User
	s.token = res.Token
	s.isAuthenticated = true
	s.err = ""
	s.mu.Unlock()

	if err := s.local.SetToken(res.Token); err != nil {
		s.log.Warn("failed to persist token", "error", err)
	}
}

func (s *Service) rejectVerify(msg string) {
	s.mu.Lock()
	s.loading = false
	s.user = nil
	s.token = ""
	s.isAuthenticated = false
	s.err = msg
	s.mu.Unlock()

	if err := s.local.DeleteToken(); err != nil {
		s.log.Warn("failed to remove persisted token", "error", err)
	}
}
