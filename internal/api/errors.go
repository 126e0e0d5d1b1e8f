package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a server-rejected response: the backend answered with a non-2xx
// status. Message carries the body's "error" field when present.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

// UnreachableError is a transport-level failure: the backend could not be
// reached at all.
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("Failed to connect to backend API. Please make sure the server is running on %s", e.BaseURL)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// IsUnreachable reports whether err is a transport-level failure.
func IsUnreachable(err error) bool {
	var ue *UnreachableError
	return errors.As(err, &ue)
}

// HandleResponse closes the body, decoding it into out on success or turning
// a non-2xx response into an *Error. A nil out discards the body.
func HandleResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorFromResponse derives the most descriptive message available: the
// body's "error" field, then an HTTP-status message, then a generic one when
// the body itself is unreadable.
func errorFromResponse(resp *http.Response) *Error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: "Network error"}
	}
	if body.Error != "" {
		return &Error{StatusCode: resp.StatusCode, Message: body.Error}
	}
	return &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)}
}
