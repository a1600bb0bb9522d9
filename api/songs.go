package api

import (
	"context"
	"fmt"
	"net/url"

	"soundest/model"
)

// Category names a mood/genre listing the backend serves.
type Category string

const (
	CategoryTrending Category = "trend-songs"
	CategoryLove     Category = "love-songs"
	CategoryRap      Category = "rapsong"
	CategoryParty    Category = "party"
	CategoryChill    Category = "chill"
	CategoryRelax    Category = "relax"
	CategoryFeelGood Category = "feelgood"
	CategoryRomance  Category = "romance"
	CategoryPodcast  Category = "podcast"
)

// Categories lists every browsable category.
func Categories() []Category {
	return []Category{
		CategoryTrending, CategoryLove, CategoryRap, CategoryParty,
		CategoryChill, CategoryRelax, CategoryFeelGood, CategoryRomance,
		CategoryPodcast,
	}
}

// songPayload tolerates the backend's two id spellings.
type songPayload struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Image   string `json:"image"`
	Audio   string `json:"audio"`
}

func (p songPayload) song() model.Song {
	id := p.ID
	if id == "" {
		id = p.MongoID
	}
	return model.Song{
		ID:       id,
		Title:    p.Title,
		Artist:   p.Artist,
		ImageURL: p.Image,
		AudioURL: p.Audio,
	}
}

func toSongs(payloads []songPayload) []model.Song {
	songs := make([]model.Song, 0, len(payloads))
	for _, p := range payloads {
		songs = append(songs, p.song())
	}
	return songs
}

// Songs fetches a category listing.
func (c *Client) Songs(ctx context.Context, category Category) ([]model.Song, error) {
	var payloads []songPayload
	fallback := fmt.Sprintf("Could not load %s songs", category)
	if err := c.getJSON(ctx, "/api/songs/"+string(category), fallback, &payloads); err != nil {
		return nil, err
	}
	return toSongs(payloads), nil
}

// AllSongs fetches the full catalogue.
func (c *Client) AllSongs(ctx context.Context) ([]model.Song, error) {
	var payloads []songPayload
	if err := c.getJSON(ctx, "/api/songs", "Could not load songs", &payloads); err != nil {
		return nil, err
	}
	return toSongs(payloads), nil
}

// Search queries the catalogue by title or artist.
func (c *Client) Search(ctx context.Context, query string) ([]model.Song, error) {
	var payloads []songPayload
	path := "/api/songs/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, "Search failed", &payloads); err != nil {
		return nil, err
	}
	return toSongs(payloads), nil
}
