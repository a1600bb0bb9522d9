// Package api is the REST client for the Soundest backend. It treats the
// wire as an opaque request/response boundary: success or failure plus
// optional message, token and data fields.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error is an application-level rejection: the server answered, but with
// a failure status. Message carries the server's explanation when the
// body had one, otherwise the caller's fallback.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// IsStatus reports whether err is an API rejection with the given code.
func IsStatus(err error, code int) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.StatusCode == code
}

// Client calls the Soundest backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// tokenFunc supplies the bearer token for authenticated endpoints;
	// empty means anonymous.
	tokenFunc func() string
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetBaseURL overrides the backend base URL.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTokenFunc installs the auth token supplier.
func (c *Client) SetTokenFunc(fn func() string) {
	c.tokenFunc = fn
}

// do sends a request and decodes the JSON response into out (when out is
// non-nil). Transport failures are wrapped; non-2xx responses become
// *Error with the body's message when present, otherwise fallback.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, fallback string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokenFunc != nil {
		if token := c.tokenFunc(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: extractMessage(raw, fallback)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// getJSON issues a GET and decodes into out.
func (c *Client) getJSON(ctx context.Context, path, fallback string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", fallback, out)
}

// postJSON issues a POST with a JSON body and decodes into out.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, fallback string, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(raw), "application/json", fallback, out)
}

// patchJSON issues a PATCH with a JSON body.
func (c *Client) patchJSON(ctx context.Context, path string, payload interface{}, fallback string, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPatch, path, bytes.NewReader(raw), "application/json", fallback, out)
}

// delete issues a DELETE.
func (c *Client) delete(ctx context.Context, path, fallback string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", fallback, nil)
}

// extractMessage pulls the server's message field out of an error body.
func extractMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fallback
}
