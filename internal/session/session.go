// Package session holds the authenticated session (bearer token plus user
// profile) and persists it locally so a restart does not force a re-login.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rushikeshburle/autoq/internal/model"

	_ "modernc.org/sqlite"
)

// sessionKey is the fixed key the session blob is stored under.
const sessionKey = "session"

type persisted struct {
	Token string      `json:"token"`
	User  *model.User `json:"user,omitempty"`
}

// Store is the single source of truth for the current session. It is
// created once at startup and passed explicitly to everything that needs
// it; every mutation is written through to the backing database.
type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	token string
	user  *model.User
}

// Open opens (or creates) the session database at path and loads any
// persisted session. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping session database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS client_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`)
	return err
}

func (s *Store) load() error {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, sessionKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	var p persisted
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fmt.Errorf("parse persisted session: %w", err)
	}
	s.token = p.Token
	if s.token != "" {
		s.user = p.User
	}
	return nil
}

func (s *Store) save(p persisted) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO client_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?`,
		sessionKey, string(raw), string(raw),
	)
	return err
}

// Login replaces the token and user unconditionally. The caller must have
// already validated the credentials against the server.
func (s *Store) Login(token string, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	return s.save(persisted{Token: token, User: user})
}

// Logout clears the token and user.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return s.save(persisted{})
}

// SetUser updates the profile without touching the token, used after a
// "who am I" refresh.
func (s *Store) SetUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return s.save(persisted{Token: s.token, User: user})
}

// Token returns the current bearer token, or empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the cached profile, or nil when logged out.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a token is present. The store does not
// track expiry; a 401 from the server is the only expiry signal.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}
