// Package store provides the durable key-value storage every state store
// persists into. Values are strings (JSON for structured state), keys are
// disjoint per store: no two stores read or write the same key.
package store

import "errors"

// Durable storage keys. Each is an independent slot owned by exactly one
// state store.
const (
	KeyToken       = "token"
	KeyUser        = "user"
	KeyIsLoggedIn  = "isLoggedIn"
	KeyArtist      = "artist"
	KeyPlaylist    = "playlist"
	KeyRecent      = "recent"
	KeyVerifyEmail = "verifyEmail"
)

var (
	// ErrNotFound means the key has never been written (or was deleted).
	ErrNotFound = errors.New("store: key not found")

	// ErrCorrupt means a value exists but could not be decoded. Callers
	// decide whether to fall back to empty state or surface it.
	ErrCorrupt = errors.New("store: corrupt value")
)

// Store is the durable key-value contract. Implementations: File (default,
// the single-machine profile), Redis (shared profile), Memory (tests).
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
