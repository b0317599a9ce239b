// Package session keeps the signed-in username and flash messages for each
// browser in fiber's session store.
package session

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	// CookieName is the cookie carrying the session id.
	CookieName = "session_id"

	usernameKey = "username"
	flashesKey  = "_flashes"
)

// Config controls the session cookie and storage.
type Config struct {
	// Storage defaults to fiber's in-process memory storage when nil.
	Storage      fiber.Storage
	Expiration   time.Duration
	CookieSecure bool
}

// Manager hands out per-request sessions.
type Manager struct {
	store *fibersession.Store
}

// NewManager builds a manager around a fiber session store keyed by cookie.
func NewManager(cfg Config) *Manager {
	if cfg.Expiration <= 0 {
		cfg.Expiration = 24 * time.Hour
	}
	store := fibersession.New(fibersession.Config{
		Storage:        cfg.Storage,
		Expiration:     cfg.Expiration,
		KeyLookup:      "cookie:" + CookieName,
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
	store.RegisterType([]string{})
	return &Manager{store: store}
}

// Load fetches (or starts) the session for the request.
func (m *Manager) Load(c *fiber.Ctx) (*Session, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Session{sess: sess}, nil
}

// Session is one client's session. It is not safe for concurrent use;
// each request gets its own.
type Session struct {
	sess *fibersession.Session
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.sess.ID()
}

// Username returns the signed-in username, if any.
func (s *Session) Username() (string, bool) {
	username, ok := s.sess.Get(usernameKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

func (s *Session) SetUsername(username string) {
	s.sess.Set(usernameKey, username)
}

// Clear signs the user out. Pending flashes are kept.
func (s *Session) Clear() {
	s.sess.Delete(usernameKey)
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	flashes, _ := s.sess.Get(flashesKey).([]string)
	s.sess.Set(flashesKey, append(flashes, msg))
}

// Flashes returns and removes the queued messages.
func (s *Session) Flashes() []string {
	flashes, _ := s.sess.Get(flashesKey).([]string)
	if len(flashes) > 0 {
		s.sess.Delete(flashesKey)
	}
	return flashes
}

// Save persists the session and refreshes the cookie.
func (s *Session) Save() error {
	if err := s.sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
