package movies

import "context"

// Backend is the single client method the search service uses.
type Backend interface {
	PostJSON(ctx context.Context, endpoint string, payload any, out any) error
}
