// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package session implements signed cookie sessions and flash messages.
package session

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/daskng/blog/internal/config"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

// Session is the decoded cookie payload. ID keys the server-side pending
// registration state; UserID is zero for anonymous visitors.
type Session struct {
	ID      string
	UserID  int64
	Flashes []string
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.Flashes = append(s.Flashes, msg)
}

// PopFlashes returns and clears the queued messages.
func (s *Session) PopFlashes() []string {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// IsAuthenticated returns true if a user is logged in.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}

// Manager encodes and decodes the session cookie.
type Manager struct {
	sc         *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session manager from the configured keys. The hash
// key is required for HMAC signing; the block key additionally encrypts the
// payload and is optional.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := decodeKey(cfg.HashKey, "hash")
	if err != nil {
		return nil, err
	}
	if hashKey == nil {
		// Dev convenience: sessions won't survive a restart.
		hashKey = securecookie.GenerateRandomKey(32)
		slog.Warn("session hash key not configured, generated a volatile one")
	}

	blockKey, err := decodeKey(cfg.BlockKey, "block")
	if err != nil {
		return nil, err
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(cfg.MaxAge)

	return &Manager{
		sc:         sc,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     secure,
	}, nil
}

func decodeKey(value, kind string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid session %s key: %w", kind, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("session %s key must be 32 bytes, got %d", kind, len(key))
	}
	return key, nil
}

// Get decodes the session from the request cookie. A missing or invalid
// cookie yields a fresh anonymous session; the caller must Save it for the
// ID to stick.
func (m *Manager) Get(c echo.Context) *Session {
	fresh := &Session{ID: uuid.NewString()}

	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return fresh
	}

	var sess Session
	if err := m.sc.Decode(m.cookieName, cookie.Value, &sess); err != nil {
		return fresh
	}
	if sess.ID == "" {
		return fresh
	}
	return &sess
}

// Save writes the session back to the response cookie.
func (m *Manager) Save(c echo.Context, sess *Session) error {
	encoded, err := m.sc.Encode(m.cookieName, sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew assigns the session a new identity to prevent fixation. Any
// pending registration keyed by the old ID becomes unreachable, so renew
// only once signup state is settled.
func (m *Manager) Renew(sess *Session) {
	sess.ID = uuid.NewString()
}
