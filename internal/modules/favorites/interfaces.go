package favorites

import "context"

// Backend is the set of client methods the favorites service uses.
type Backend interface {
	GetJSON(ctx context.Context, endpoint string, out any) error
	PutJSON(ctx context.Context, endpoint string, payload any, out any) error
}
