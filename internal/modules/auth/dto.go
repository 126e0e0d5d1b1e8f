package auth

import "moviedeck/internal/domain"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type LoginRequest struct {
	// Login is a username or an email.
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn string       `json:"expiresIn"`
}

type TokenVerifyResponse struct {
	Valid bool         `json:"valid"`
	User  *domain.User `json:"user,omitempty"`
	Error string       `json:"error,omitempty"`
}

// State is a point-in-time snapshot of the auth slice.
type State struct {
	User            *domain.User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
}
