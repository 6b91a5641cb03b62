// Package auth keeps the signed-in session: a bearer token plus the account
// record, cached on disk so the session survives process restarts. The token
// is opaque to this package except for one thing: when it parses as a JWT
// with an expiry in the past, Init discards the session instead of hydrating
// a credential the service would reject anyway.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user
// when no session is active.
var ErrNotAuthenticated = errors.New("auth: not authenticated")

// PreferencePusher propagates language and theme changes to the remote
// account record. The API client satisfies this.
type PreferencePusher interface {
	UpdatePreferences(ctx context.Context, language, theme string) error
}

type storedSession struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store holds the current session and mirrors it to a JSON file. All methods
// are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	path    string
	session *storedSession
	log     zerolog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger attaches a structured logger.
func WithStoreLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore builds a Store backed by the given cache file.
func NewStore(path string, options ...StoreOption) (*Store, error) {
	if path == "" {
		return nil, errors.New("auth: session file path is required")
	}
	s := &Store{path: path, log: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Init hydrates the session from the cache file. A missing file means logged
// out and is not an error. A cached JWT whose expiry has passed is discarded
// along with the file; tokens that do not parse as JWTs are kept as-is.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.session = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("auth: read session file: %w", err)
	}

	var session storedSession
	if err := json.Unmarshal(data, &session); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("discarding unreadable session cache")
		s.session = nil
		_ = os.Remove(s.path)
		return nil
	}
	if session.Token == "" {
		s.session = nil
		_ = os.Remove(s.path)
		return nil
	}

	if expired(session.Token) {
		s.log.Info().Str("user", session.User.Email).Msg("cached session expired")
		s.session = nil
		_ = os.Remove(s.path)
		return nil
	}

	s.session = &session
	s.log.Debug().Str("user", session.User.Email).Msg("session restored")
	return nil
}

// expired reports whether token is a JWT whose exp claim is in the past.
// Unparseable tokens and JWTs without an exp claim count as live; the remote
// service is the authority on those.
func expired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login activates a session and persists it.
func (s *Store) Login(token string, user model.User) error {
	if token == "" {
		return errors.New("auth: token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &storedSession{Token: token, User: user}
	if err := s.persist(); err != nil {
		return err
	}
	s.log.Info().Str("user", user.Email).Msg("logged in")
	return nil
}

// Logout clears the session and removes the cache file.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("auth: remove session file: %w", err)
	}
	s.log.Info().Msg("logged out")
	return nil
}

// Token returns the active bearer token, or empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// CurrentUser returns a copy of the signed-in account, or nil when logged out.
func (s *Store) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	user := s.session.User
	return &user
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// IsAdmin reports whether the signed-in account holds the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil && s.session.User.IsAdmin()
}

// UpdatePreferences pushes new language and theme choices to the service and,
// on success, updates the cached account record.
func (s *Store) UpdatePreferences(ctx context.Context, pusher PreferencePusher, language, theme string) error {
	s.mu.RLock()
	active := s.session != nil
	s.mu.RUnlock()
	if !active {
		return ErrNotAuthenticated
	}

	if err := pusher.UpdatePreferences(ctx, language, theme); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	s.session.User.Language = language
	s.session.User.Theme = theme
	return s.persist()
}

// persist writes the session to disk. Callers hold the write lock.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("auth: create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("auth: write session file: %w", err)
	}
	return nil
}
