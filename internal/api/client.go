package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TokenSource yields the bearer token for authenticated requests, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Client issues JSON requests against the backend REST API, attaching the
// bearer token from the token source whenever one is present.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, payload any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, payload)
}

func (c *Client) Put(ctx context.Context, endpoint string, payload any) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, endpoint, payload)
}

func (c *Client) Delete(ctx context.Context, endpoint string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

// GetJSON performs a GET and decodes the response through HandleResponse.
func (c *Client) GetJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	return HandleResponse(resp, out)
}

// PostJSON performs a POST and decodes the response through HandleResponse.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload any, out any) error {
	resp, err := c.Post(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	return HandleResponse(resp, out)
}

// PutJSON performs a PUT and decodes the response through HandleResponse.
func (c *Client) PutJSON(ctx context.Context, endpoint string, payload any, out any) error {
	resp, err := c.Put(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	return HandleResponse(resp, out)
}

// DeleteJSON performs a DELETE and decodes the response through HandleResponse.
func (c *Client) DeleteJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.Delete(ctx, endpoint)
	if err != nil {
		return err
	}
	return HandleResponse(resp, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "endpoint", endpoint, "error", err)
		return nil, &UnreachableError{BaseURL: c.baseURL, Err: err}
	}
	return resp, nil
}
