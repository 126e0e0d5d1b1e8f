// Package storage is the persisted local state of the client: the bearer
// token and the favorite-movie ID list survive restarts, everything else is
// refetched.
package storage

import "encoding/json"

const (
	keyToken       = "token"
	keyFavoriteIDs = "favoriteMovieIds"
)

// Store is the local key-value state. Reads never fail: a missing or
// unreadable value reads as absent.
type Store interface {
	// Token returns the persisted bearer token, if any.
	Token() (string, bool)
	SetToken(token string) error
	DeleteToken() error

	// FavoriteIDs returns the persisted favorite-movie ID list, empty when
	// absent.
	FavoriteIDs() []string
	SetFavoriteIDs(ids []string) error
	DeleteFavoriteIDs() error
}

// The ID list is stored as a JSON array string under a single key, matching
// the original persisted format.

func encodeIDs(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

func decodeIDs(raw string) []string {
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}
