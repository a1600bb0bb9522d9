// Package list implements the durable, de-duplicated, ordered song
// collections: the playlist and the recently-played history. Both share
// one implementation; a policy picks the dedupe and trimming rules.
package list

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"soundest/logger"
	"soundest/model"
	"soundest/store"
)

// Policy selects how a list handles re-added ids and growth.
type Policy int

const (
	// KeepFirst ignores an Add whose id is already present; the entry
	// keeps its original position. No size cap. Playlist semantics.
	KeepFirst Policy = iota
	// MostRecentFirst moves a re-added id to the front and trims the
	// list to its cap. Recently-played semantics.
	MostRecentFirst
)

const recentCap = 10

// List is a persisted ordered set of song references keyed by id. Every
// mutation rewrites the full list under the store's key; rehydration
// happens at construction.
type List struct {
	storage store.Store
	key     string
	policy  Policy
	cap     int
	entries []model.SongRef
}

// NewPlaylist creates the playlist store: insertion order kept, no
// duplicates, no cap.
func NewPlaylist(storage store.Store) *List {
	return rehydrate(&List{storage: storage, key: store.KeyPlaylist, policy: KeepFirst})
}

// NewRecent creates the recently-played store: most recent first, capped
// at the last ten distinct songs.
func NewRecent(storage store.Store) *List {
	return rehydrate(&List{storage: storage, key: store.KeyRecent, policy: MostRecentFirst, cap: recentCap})
}

// rehydrate loads the persisted list. Absent means never used; corrupt
// is logged and treated as empty. The list is a cache of preferences,
// not a system of record worth refusing to start over.
func rehydrate(l *List) *List {
	raw, err := l.storage.Get(l.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("failed to read persisted list",
				logger.String("key", l.key), logger.ErrorField(err))
		}
		return l
	}
	var entries []model.SongRef
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("persisted list is corrupt, starting empty",
			logger.String("key", l.key), logger.ErrorField(err))
		return l
	}
	l.entries = entries
	return l
}

// Add inserts an entry according to the list's policy and persists the
// result.
func (l *List) Add(entry model.SongRef) error {
	switch l.policy {
	case MostRecentFirst:
		l.entries = slices.DeleteFunc(l.entries, func(e model.SongRef) bool {
			return e.ID == entry.ID
		})
		l.entries = append([]model.SongRef{entry}, l.entries...)
		if l.cap > 0 && len(l.entries) > l.cap {
			l.entries = l.entries[:l.cap]
		}
	default:
		exists := slices.ContainsFunc(l.entries, func(e model.SongRef) bool {
			return e.ID == entry.ID
		})
		if exists {
			return nil
		}
		l.entries = append(l.entries, entry)
	}
	return l.persist()
}

// Remove deletes the entry with the given id; no-op when absent.
func (l *List) Remove(id string) error {
	before := len(l.entries)
	l.entries = slices.DeleteFunc(l.entries, func(e model.SongRef) bool {
		return e.ID == id
	})
	if len(l.entries) == before {
		return nil
	}
	return l.persist()
}

// All returns the entries in order.
func (l *List) All() []model.SongRef {
	return append([]model.SongRef(nil), l.entries...)
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// Contains reports whether an entry with the given id is present.
func (l *List) Contains(id string) bool {
	return slices.ContainsFunc(l.entries, func(e model.SongRef) bool {
		return e.ID == id
	})
}

// Rehydrate re-reads the persisted list, folding in changes another
// process made to the shared profile.
func (l *List) Rehydrate() {
	l.entries = nil
	rehydrate(l)
}

// persist rewrites the full list under the store key.
func (l *List) persist() error {
	raw, err := json.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal list %s: %w", l.key, err)
	}
	if err := l.storage.Set(l.key, string(raw)); err != nil {
		return fmt.Errorf("failed to persist list %s: %w", l.key, err)
	}
	return nil
}
