// Package player owns playback state: the queue of songs, the media
// device abstraction, and the controller binding the two together.
package player

import "soundest/model"

// Queue is the single source of truth for what is playing and what comes
// next. It holds an ordered song list and the index of the current song;
// navigation wraps around at both ends. All operations are total.
//
// The queue is edited wholesale: Replace swaps the entire list, Next and
// Previous move the index. There is no mid-queue insert or remove.
type Queue struct {
	songs   []model.Song
	current int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Replace swaps in a new song list and starts at startIndex. An empty
// list empties the queue. Out-of-range indices are clamped into the
// valid range rather than rejected, so "play from item N" after the
// source list shrank still lands on a real song.
func (q *Queue) Replace(songs []model.Song, startIndex int) {
	if len(songs) == 0 {
		q.songs = nil
		q.current = 0
		return
	}
	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex >= len(songs) {
		startIndex = len(songs) - 1
	}
	q.songs = append([]model.Song(nil), songs...)
	q.current = startIndex
}

// SetSingle replaces the queue with just the given song. Re-triggering
// the song already playing (same audio URL) is a no-op so the track does
// not restart.
func (q *Queue) SetSingle(song model.Song) {
	if cur, ok := q.Current(); ok && cur.AudioURL == song.AudioURL {
		return
	}
	q.Replace([]model.Song{song}, 0)
}

// Current returns the song in play, or ok=false when the queue is empty.
func (q *Queue) Current() (model.Song, bool) {
	if len(q.songs) == 0 {
		return model.Song{}, false
	}
	return q.songs[q.current], true
}

// Next advances to the following song, wrapping to the start after the
// last one. No-op on an empty queue.
func (q *Queue) Next() {
	if len(q.songs) == 0 {
		return
	}
	q.current = (q.current + 1) % len(q.songs)
}

// Previous steps back to the prior song, wrapping to the end before the
// first one. No-op on an empty queue.
func (q *Queue) Previous() {
	if len(q.songs) == 0 {
		return
	}
	if q.current == 0 {
		q.current = len(q.songs) - 1
	} else {
		q.current--
	}
}

// Len returns the number of queued songs.
func (q *Queue) Len() int {
	return len(q.songs)
}

// Index returns the current position; meaningful only when Len() > 0.
func (q *Queue) Index() int {
	return q.current
}

// Songs returns a copy of the queued list in order.
func (q *Queue) Songs() []model.Song {
	return append([]model.Song(nil), q.songs...)
}
