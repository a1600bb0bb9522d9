package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func bytesReader(s string) io.Reader { return strings.NewReader(s) }

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second)
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/api/auth/login" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["email"] != "ada@example.com" {
				t.Errorf("unexpected email %s", body["email"])
			}
			json.NewEncoder(w).Encode(map[string]string{
				"token":    "jwt-token",
				"username": "ada",
				"email":    "ada@example.com",
			})
		})

		result, err := c.Login(context.Background(), "ada@example.com", "password123")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if result.Token != "jwt-token" || result.User().Username != "ada" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("RejectionCarriesServerMessage", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "wrong password"})
		})

		_, err := c.Login(context.Background(), "ada@example.com", "nope")
		apiErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("expected *Error, got %T", err)
		}
		if apiErr.StatusCode != 401 || apiErr.Message != "wrong password" {
			t.Errorf("unexpected error %+v", apiErr)
		}
	})

	t.Run("RejectionFallsBackWithoutMessage", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("not json"))
		})

		_, err := c.Login(context.Background(), "ada@example.com", "nope")
		apiErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("expected *Error, got %T", err)
		}
		if apiErr.Message != "Invalid email or password" {
			t.Errorf("expected the fallback message, got %q", apiErr.Message)
		}
	})

	t.Run("TransportFailureIsNotAPIError", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", time.Second)
		_, err := c.Login(context.Background(), "ada@example.com", "password123")
		if err == nil {
			t.Fatal("expected a transport error")
		}
		if _, ok := err.(*Error); ok {
			t.Error("a transport failure must not masquerade as an API rejection")
		}
	})
}

func TestArtistLogin(t *testing.T) {
	t.Run("PendingApprovalIs403", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "Your account is pending approval."})
		})

		_, err := c.LoginArtist(context.Background(), "band@example.com", "password123")
		if !IsStatus(err, http.StatusForbidden) {
			t.Fatalf("expected a 403 API error, got %v", err)
		}
	})

	t.Run("ApprovedArtist", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"artist": map[string]interface{}{
					"name": "band", "email": "band@example.com", "isartist": true,
				},
			})
		})

		result, err := c.LoginArtist(context.Background(), "band@example.com", "password123")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !result.Artist.Approved || result.Artist.Name != "band" {
			t.Errorf("unexpected artist %+v", result.Artist)
		}
	})
}

func TestSongs(t *testing.T) {
	catalogue := `[
		{"_id":"m1","title":"First","artist":"A","image":"i1","audio":"u1"},
		{"id":"p2","title":"Second","artist":"B","image":"i2","audio":"u2"}
	]`

	t.Run("CategoryListing", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/songs/love-songs" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(catalogue))
		})

		songs, err := c.Songs(context.Background(), CategoryLove)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
		// Both id spellings resolve.
		if songs[0].ID != "m1" || songs[1].ID != "p2" {
			t.Errorf("id resolution failed: %s, %s", songs[0].ID, songs[1].ID)
		}
	})

	t.Run("SearchEscapesQuery", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("q"); got != "love & war" {
				t.Errorf("query not escaped round-trip: %q", got)
			}
			w.Write([]byte("[]"))
		})

		if _, err := c.Search(context.Background(), "love & war"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})
}

func TestAuthHeader(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer token, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"username": "ada", "email": "a@b.com"})
	})
	c.SetTokenFunc(func() string { return "tok-1" })

	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAdminDashboard(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/users":
			w.Write([]byte(`[{"_id":"u1"},{"_id":"u2"}]`))
		case "/api/admin/artists":
			w.Write([]byte(`[{"_id":"a1","isartist":true},{"_id":"a2","isartist":false}]`))
		case "/api/admin/contacts":
			w.Write([]byte(`[{"_id":"c1"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	dash, err := c.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if dash.Users != 2 || dash.Artists != 2 || dash.Pending != 1 || dash.Contacts != 1 {
		t.Errorf("unexpected dashboard %+v", dash)
	}
}

func TestUploadSong(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("title"); got != "Demo" {
			t.Errorf("expected title Demo, got %q", got)
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Fatalf("missing audio part: %v", err)
		}
		defer file.Close()
		if header.Filename != "demo.mp3" {
			t.Errorf("unexpected file name %s", header.Filename)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "uploaded"})
	})

	msg, err := c.UploadSong(context.Background(), Upload{
		Title:     "Demo",
		Artist:    "band",
		AudioName: "demo.mp3",
		Audio:     bytesReader("fake mp3 bytes"),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if msg != "uploaded" {
		t.Errorf("expected the server message, got %q", msg)
	}
}
