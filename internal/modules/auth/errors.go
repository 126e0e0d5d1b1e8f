package auth

import "errors"

var (
	// ErrNoToken fails a verification attempted without a stored token.
	ErrNoToken = errors.New("No token found")
	// ErrTokenInvalid rejects a token the backend refused to validate.
	ErrTokenInvalid = errors.New("Token is invalid")
)
