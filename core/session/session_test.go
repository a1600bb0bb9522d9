package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"soundest/model"
	"soundest/store"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "ada", "exp": expiresAt.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func TestSession(t *testing.T) {
	user := model.User{Username: "ada", Email: "ada@example.com"}

	t.Run("LoginPersistsAndRestores", func(t *testing.T) {
		storage := store.NewMemory()
		s := New(storage)

		if err := s.Login(user, signedToken(t, time.Now().Add(time.Hour))); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if !s.IsLoggedIn() {
			t.Error("logged-in flag must be set after login")
		}

		restored := New(storage)
		restored.Restore()
		identity := restored.Current()
		if identity.Kind != model.IdentityUser {
			t.Fatalf("expected user identity, got %s", identity.Kind)
		}
		if identity.User.Username != "ada" {
			t.Errorf("expected ada, got %s", identity.User.Username)
		}
	})

	t.Run("LoginWithoutTokenMutatesNothing", func(t *testing.T) {
		storage := store.NewMemory()
		s := New(storage)

		if err := s.Login(user, ""); err == nil {
			t.Fatal("expected an error for a tokenless login response")
		}
		if !s.Current().IsNone() {
			t.Error("identity must stay None after a rejected login")
		}
		if _, err := storage.Get(store.KeyUser); !errors.Is(err, store.ErrNotFound) {
			t.Error("nothing may be persisted for a rejected login")
		}
	})

	t.Run("LogoutClearsNamedKeysNoResurrection", func(t *testing.T) {
		storage := store.NewMemory()
		s := New(storage)
		if err := s.Login(user, signedToken(t, time.Now().Add(time.Hour))); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		err := s.Logout(store.KeyToken, store.KeyUser, store.KeyIsLoggedIn)
		if err != nil {
			t.Fatalf("logout failed: %v", err)
		}

		s.Restore()
		if !s.Current().IsNone() {
			t.Error("restore after a full logout must yield None")
		}
		if s.IsLoggedIn() {
			t.Error("logged-in flag must be gone")
		}
	})

	t.Run("LogoutLeavesUnnamedKeys", func(t *testing.T) {
		storage := store.NewMemory()
		s := New(storage)
		if err := s.Login(user, signedToken(t, time.Now().Add(time.Hour))); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		// The caller forgot the user snapshot; it stays behind and a
		// later restore resurrects the session. Documented sharp edge.
		if err := s.Logout(store.KeyToken, store.KeyIsLoggedIn); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		s.Restore()
		if s.Current().IsNone() {
			t.Error("a forgotten snapshot key is expected to resurrect the identity")
		}
	})

	t.Run("ExpiredTokenBlocksRestore", func(t *testing.T) {
		storage := store.NewMemory()
		s := New(storage)
		if err := s.Login(user, signedToken(t, time.Now().Add(-time.Hour))); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		restored := New(storage)
		restored.Restore()
		if !restored.Current().IsNone() {
			t.Error("an expired persisted token must not restore a session")
		}
	})

	t.Run("CorruptSnapshotRestoresNone", func(t *testing.T) {
		storage := store.NewMemory()
		storage.Set(store.KeyUser, "{not json")

		s := New(storage)
		s.Restore()
		if !s.Current().IsNone() {
			t.Error("a corrupt snapshot must restore to None")
		}
	})

	t.Run("ArtistPendingApproval", func(t *testing.T) {
		storage := store.NewMemory()
		s := New(storage)

		err := s.LoginArtist(model.Artist{Name: "band", Email: "b@x.com", Approved: false})
		if !errors.Is(err, ErrPendingApproval) {
			t.Fatalf("expected ErrPendingApproval, got %v", err)
		}
		if !s.Current().IsNone() {
			t.Error("a pending artist must not become the identity")
		}
		if _, err := storage.Get(store.KeyArtist); !errors.Is(err, store.ErrNotFound) {
			t.Error("a pending artist must not be persisted")
		}
	})

	t.Run("ApprovedArtistRoundTrip", func(t *testing.T) {
		storage := store.NewMemory()
		s := New(storage)

		artist := model.Artist{Name: "band", Email: "b@x.com", Approved: true}
		if err := s.LoginArtist(artist); err != nil {
			t.Fatalf("artist login failed: %v", err)
		}

		restored := New(storage)
		restored.Restore()
		identity := restored.Current()
		if identity.Kind != model.IdentityArtist {
			t.Fatalf("expected artist identity, got %s", identity.Kind)
		}
		if identity.Artist.Name != "band" {
			t.Errorf("expected band, got %s", identity.Artist.Name)
		}
	})

	t.Run("PendingVerification", func(t *testing.T) {
		storage := store.NewMemory()
		s := New(storage)

		if _, ok := s.PendingVerification(); ok {
			t.Error("no verification should be pending initially")
		}
		if err := s.SetPendingVerification("ada@example.com"); err != nil {
			t.Fatal(err)
		}
		email, ok := s.PendingVerification()
		if !ok || email != "ada@example.com" {
			t.Errorf("expected pending ada@example.com, got %q ok=%t", email, ok)
		}
		if err := s.ClearPendingVerification(); err != nil {
			t.Fatal(err)
		}
		if _, ok := s.PendingVerification(); ok {
			t.Error("pending verification must clear")
		}
	})
}
