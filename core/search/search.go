// Package search holds the latest search results, discarding responses
// from superseded requests.
package search

import (
	"sync"
	"sync/atomic"

	"soundest/model"
)

// Results keeps the songs from the most recent completed search. Each
// outgoing request takes a token from Begin; Apply only accepts the
// response whose token is still the latest, so a slow earlier request
// cannot clobber a newer one.
type Results struct {
	mu     sync.Mutex
	latest atomic.Int64
	songs  []model.Song
}

// New creates an empty results holder.
func New() *Results {
	return &Results{}
}

// Begin issues the token for a new request, superseding all earlier ones.
func (r *Results) Begin() int64 {
	return r.latest.Add(1)
}

// Apply installs songs as the current results if token is still the
// latest. It reports whether the response was accepted; a stale response
// mutates nothing.
func (r *Results) Apply(token int64, songs []model.Song) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token != r.latest.Load() {
		return false
	}
	r.songs = append([]model.Song(nil), songs...)
	return true
}

// Songs returns the current results in order.
func (r *Results) Songs() []model.Song {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Song(nil), r.songs...)
}

// Clear drops the results and invalidates any in-flight request.
func (r *Results) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest.Add(1)
	r.songs = nil
}
