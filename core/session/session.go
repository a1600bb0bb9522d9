// Package session tracks who is logged in and persists that identity
// across runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"soundest/logger"
	"soundest/model"
	"soundest/store"
)

// ErrPendingApproval is returned when an artist authenticates correctly
// but the account has not been approved yet. It is informational, not a
// credential failure, and no identity is persisted.
var ErrPendingApproval = errors.New("artist account is pending approval")

// Session owns the authenticated identity. It restores from durable
// storage at startup without any network call, trusting the persisted
// snapshot, and clears a caller-chosen set of keys on logout.
type Session struct {
	storage  store.Store
	identity model.Identity
}

// New creates a session store over the given storage. Call Restore to
// adopt any persisted identity.
func New(storage store.Store) *Session {
	return &Session{storage: storage, identity: model.Nobody()}
}

// Restore reads the persisted user (or artist) snapshot and adopts it
// when structurally valid. A persisted token that has already expired
// rejects the snapshot: the server would refuse it anyway, so showing a
// logged-in state would only mislead.
func (s *Session) Restore() {
	if user, ok := s.restoreUser(); ok {
		s.identity = model.UserIdentity(user)
		logger.Debug("session restored", logger.String("username", user.Username))
		return
	}
	if artist, ok := s.restoreArtist(); ok {
		s.identity = model.ArtistIdentity(artist)
		logger.Debug("artist session restored", logger.String("name", artist.Name))
		return
	}
	s.identity = model.Nobody()
}

func (s *Session) restoreUser() (model.User, bool) {
	raw, err := s.storage.Get(store.KeyUser)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("failed to read persisted user", logger.ErrorField(err))
		}
		return model.User{}, false
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warn("persisted user snapshot is corrupt", logger.ErrorField(err))
		return model.User{}, false
	}
	if user.Username == "" {
		return model.User{}, false
	}
	if s.tokenExpired() {
		logger.Info("persisted token expired, not restoring session")
		return model.User{}, false
	}
	return user, true
}

func (s *Session) restoreArtist() (model.Artist, bool) {
	raw, err := s.storage.Get(store.KeyArtist)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("failed to read persisted artist", logger.ErrorField(err))
		}
		return model.Artist{}, false
	}
	var artist model.Artist
	if err := json.Unmarshal([]byte(raw), &artist); err != nil {
		logger.Warn("persisted artist snapshot is corrupt", logger.ErrorField(err))
		return model.Artist{}, false
	}
	if artist.Name == "" || !artist.Approved {
		return model.Artist{}, false
	}
	return artist, true
}

// tokenExpired parses the persisted JWT claims without verifying the
// signature (the client has no key; the server verifies) and reports
// whether the expiry has passed. A missing or unparsable token is not
// treated as expired; only a definite exp in the past blocks restore.
func (s *Session) tokenExpired() bool {
	raw, err := s.storage.Get(store.KeyToken)
	if err != nil || raw == "" {
		return false
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login adopts a user identity from a successful authentication
// response, persisting the token, the identity snapshot, and the
// logged-in flag. An incomplete response (empty token or username)
// mutates nothing.
func (s *Session) Login(user model.User, token string) error {
	if token == "" {
		return fmt.Errorf("login response carried no token")
	}
	if user.Username == "" {
		return fmt.Errorf("login response carried no username")
	}

	snapshot, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user snapshot: %w", err)
	}
	if err := s.storage.Set(store.KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.storage.Set(store.KeyUser, string(snapshot)); err != nil {
		return fmt.Errorf("failed to persist user snapshot: %w", err)
	}
	if err := s.storage.Set(store.KeyIsLoggedIn, "true"); err != nil {
		return fmt.Errorf("failed to persist login flag: %w", err)
	}

	s.identity = model.UserIdentity(user)
	logger.Info("logged in", logger.String("username", user.Username))
	return nil
}

// LoginArtist adopts an artist identity. An unapproved artist gets
// ErrPendingApproval and nothing is persisted; the caller surfaces it as
// information, not as a failed login.
func (s *Session) LoginArtist(artist model.Artist) error {
	if artist.Name == "" {
		return fmt.Errorf("artist login response carried no name")
	}
	if !artist.Approved {
		return ErrPendingApproval
	}

	snapshot, err := json.Marshal(artist)
	if err != nil {
		return fmt.Errorf("failed to marshal artist snapshot: %w", err)
	}
	if err := s.storage.Set(store.KeyArtist, string(snapshot)); err != nil {
		return fmt.Errorf("failed to persist artist snapshot: %w", err)
	}

	s.identity = model.ArtistIdentity(artist)
	logger.Info("artist logged in", logger.String("name", artist.Name))
	return nil
}

// Logout deletes every named durable key, then clears the in-memory
// identity. The caller enumerates the keys it previously wrote; keys it
// forgets stay behind.
func (s *Session) Logout(keys ...string) error {
	var firstErr error
	for _, key := range keys {
		if err := s.storage.Delete(key); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	s.identity = model.Nobody()
	logger.Info("logged out")
	return firstErr
}

// Current returns the identity as the session sees it. Pure read.
func (s *Session) Current() model.Identity {
	return s.identity
}

// IsLoggedIn is the coarse boolean gate the route guard checks: the
// durable flag, not the in-memory identity. After a partial failure the
// two can disagree; this mirrors the guard's actual behavior.
func (s *Session) IsLoggedIn() bool {
	raw, err := s.storage.Get(store.KeyIsLoggedIn)
	return err == nil && raw == "true"
}

// SetPendingVerification remembers the email address awaiting OTP
// confirmation so the verify step can resume after a restart.
func (s *Session) SetPendingVerification(email string) error {
	if err := s.storage.Set(store.KeyVerifyEmail, email); err != nil {
		return fmt.Errorf("failed to persist pending verification: %w", err)
	}
	return nil
}

// PendingVerification returns the email awaiting OTP confirmation, if any.
func (s *Session) PendingVerification() (string, bool) {
	raw, err := s.storage.Get(store.KeyVerifyEmail)
	if err != nil || raw == "" {
		return "", false
	}
	return raw, true
}

// ClearPendingVerification drops the pending-verification marker.
func (s *Session) ClearPendingVerification() error {
	return s.storage.Delete(store.KeyVerifyEmail)
}

// Token returns the persisted auth token for Authorization headers.
func (s *Session) Token() string {
	raw, err := s.storage.Get(store.KeyToken)
	if err != nil {
		return ""
	}
	return raw
}
