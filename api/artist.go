package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"soundest/model"
)

// ArtistLoginResult is the artist login response. On a 403 the account
// authenticated but awaits approval; the caller surfaces that as
// information, not a credential failure.
type ArtistLoginResult struct {
	Artist  model.Artist `json:"artist"`
	Message string       `json:"message"`
}

// LoginArtist authenticates an artist account.
func (c *Client) LoginArtist(ctx context.Context, email, password string) (ArtistLoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var result ArtistLoginResult
	err := c.postJSON(ctx, "/api/artist/login", payload, "Artist login failed", &result)
	return result, err
}

// RegisterArtist submits an artist application; accounts start
// unapproved.
func (c *Client) RegisterArtist(ctx context.Context, name, email, password string) (string, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var result struct {
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/artist/register", payload, "Artist registration failed", &result)
	return result.Message, err
}

// ArtistSongs fetches an artist's published catalogue.
func (c *Client) ArtistSongs(ctx context.Context, artistID string) ([]model.Song, error) {
	var payloads []songPayload
	if err := c.getJSON(ctx, "/api/artist/artist/"+artistID, "Could not load artist songs", &payloads); err != nil {
		return nil, err
	}
	return toSongs(payloads), nil
}

// Upload describes a song upload: metadata plus the audio stream and an
// optional cover image.
type Upload struct {
	Title      string
	Artist     string
	AudioName  string
	Audio      io.Reader
	ImageName  string
	Image      io.Reader // optional
}

// UploadSong publishes a song through the backend's multipart endpoint.
func (c *Client) UploadSong(ctx context.Context, up Upload) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("title", up.Title); err != nil {
		return "", fmt.Errorf("failed to write title field: %w", err)
	}
	if err := writer.WriteField("artist", up.Artist); err != nil {
		return "", fmt.Errorf("failed to write artist field: %w", err)
	}

	audioPart, err := writer.CreateFormFile("audio", up.AudioName)
	if err != nil {
		return "", fmt.Errorf("failed to create audio part: %w", err)
	}
	if _, err := io.Copy(audioPart, up.Audio); err != nil {
		return "", fmt.Errorf("failed to copy audio: %w", err)
	}

	if up.Image != nil {
		imagePart, err := writer.CreateFormFile("image", up.ImageName)
		if err != nil {
			return "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(imagePart, up.Image); err != nil {
			return "", fmt.Errorf("failed to copy image: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	var result struct {
		Message string `json:"message"`
	}
	err = c.do(ctx, http.MethodPost, "/api/songs/upload", &body,
		writer.FormDataContentType(), "Upload failed", &result)
	return result.Message, err
}
