// Package cart serves the server-held shopping cart of a token session.
package cart

import (
	"sync"
	"time"

	"github.com/foodhub/backend/internal/domain/cart"
)

// SessionStore keeps one cart per token session in process memory.
// Operations on the same session are serialized; different sessions proceed
// in parallel.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	idleTTL  time.Duration
}

type session struct {
	mu   sync.Mutex
	cart *cart.Cart
}

// NewSessionStore creates a store whose carts expire after idleTTL without
// mutation. A zero idleTTL disables expiry.
func NewSessionStore(idleTTL time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		idleTTL:  idleTTL,
	}
}

// With runs fn against the cart of sessionID, creating an empty cart on first
// use. fn must not retain the cart after it returns.
func (s *SessionStore) With(sessionID string, fn func(c *cart.Cart) error) error {
	for {
		sess := s.session(sessionID)
		if !s.lockLive(sessionID, sess) {
			// swept or discarded between lookup and lock
			continue
		}
		defer sess.mu.Unlock()
		return fn(sess.cart)
	}
}

// lockLive locks sess and reports whether it is still the stored session for
// sessionID. On false the lock is already released.
func (s *SessionStore) lockLive(sessionID string, sess *session) bool {
	sess.mu.Lock()
	s.mu.Lock()
	live := s.sessions[sessionID] == sess
	s.mu.Unlock()
	if !live {
		sess.mu.Unlock()
	}
	return live
}

func (s *SessionStore) session(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{cart: cart.New(sessionID)}
		s.sessions[sessionID] = sess
	}
	return sess
}

// Discard drops the cart of sessionID
func (s *SessionStore) Discard(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Sweep drops carts idle since before now minus the idle TTL and returns how
// many were removed. Carts currently in use are skipped.
func (s *SessionStore) Sweep(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		if sess.cart.LastTouched().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
		sess.mu.Unlock()
	}
	return removed
}

// Len returns the number of live carts
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
