package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// SESSION STORE - IN-MEMORY TOKEN -> SESSION MAP CON TTL
// ============================================================================
// Thread-safe store for server-held login sessions. Tokens are opaque
// (uuid v4); expiry is absolute, checked on every read and never extended.
// A user may hold several live sessions at once (multi-device).
//
// Uso:
//   store := session.NewStore(24*time.Hour, 10*time.Minute)
//   token, _ := store.Create(userID, username)
//   if sess, ok := store.Get(token); ok { ... }

// CookieName is the session cookie set on login/register and cleared on
// logout.
const CookieName = "healthflow_session"

// DefaultTTL is the absolute session lifetime when SESSION_TTL is unset.
const DefaultTTL = 24 * time.Hour

// Session binds an opaque token to an authenticated user.
type Session struct {
	UserID    int64
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store es un almacén thread-safe de sesiones con expiración absoluta
type Store struct {
	sessions        map[string]Session
	mu              sync.RWMutex
	ttl             time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan bool
}

// NewStore creates a session store. cleanupInterval drives the periodic
// sweep of expired sessions; expired entries are also dropped eagerly on
// read, so the sweep only bounds memory.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	store := &Store{
		sessions:        make(map[string]Session),
		ttl:             ttl,
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan bool),
	}

	go store.startCleanupTimer()

	return store
}

// Create issues a new session for the user and returns its opaque token.
func (s *Store) Create(userID int64, username string) (string, Session) {
	now := time.Now()
	sess := Session{
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	return token, sess
}

// Get resolves a token to its session.
// Returns (session, true) if it exists and has not expired.
// Returns (zero, false) otherwise; an expired entry is dropped eagerly.
// Reads never extend expiry.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, found := s.sessions[token]
	s.mu.RUnlock()

	if !found {
		return Session{}, false
	}

	if time.Now().After(sess.ExpiresAt) {
		s.Destroy(token)
		return Session{}, false
	}

	return sess, true
}

// Destroy removes a session. Destroying an absent token is not an error,
// so logout is idempotent.
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Count returns the number of stored sessions (may include expired ones
// not yet swept).
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// startCleanupTimer ejecuta limpieza periódica de sesiones expiradas
func (s *Store) startCleanupTimer() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.deleteExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

// deleteExpired drops every session past its expiry.
func (s *Store) deleteExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// Stop detiene la limpieza automática
func (s *Store) Stop() {
	s.stopCleanup <- true
}
