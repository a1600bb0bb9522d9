package model

// Song represents a playable item from the Soundest catalogue.
// AudioURL is the only field required for playback; the rest is display
// metadata.
type Song struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	ImageURL string `json:"image"`
	AudioURL string `json:"audio"`
}

// Ref converts a Song into the reference form held by the playlist and
// recently-played stores.
func (s Song) Ref() SongRef {
	return SongRef{
		ID:        s.ID,
		Title:     s.Title,
		Artist:    s.Artist,
		ImageURL:  s.ImageURL,
		SourceURL: s.AudioURL,
	}
}

// SongRef is a song reference held in the playlist or recently-played
// collections, keyed by ID.
type SongRef struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	ImageURL  string `json:"image"`
	SourceURL string `json:"url"`
}

// Song converts a stored reference back into a playable Song.
func (r SongRef) Song() Song {
	return Song{
		ID:       r.ID,
		Title:    r.Title,
		Artist:   r.Artist,
		ImageURL: r.ImageURL,
		AudioURL: r.SourceURL,
	}
}
