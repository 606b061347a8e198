// Package session owns the authenticated session credential. All reads
// and writes of the bearer token go through a single Store instance so
// that expiry handling, login, and logout cannot scatter ad-hoc state
// across components.
package session

import (
	"sync"

	"github.com/vidface/cli/internal/credential"
)

// tokenKey is the keyring entry holding the bearer token.
const tokenKey = "access-token"

// Persister saves the credential somewhere durable between runs.
type Persister interface {
	Load() (string, error)
	Save(token string) error
	Delete() error
}

// keyringPersister stores the token in the system keyring.
type keyringPersister struct{}

func (keyringPersister) Load() (string, error)  { return credential.Get(tokenKey) }
func (keyringPersister) Save(t string) error    { return credential.Set(tokenKey, t) }
func (keyringPersister) Delete() error          { return credential.Delete(tokenKey) }

// Store holds the session credential in memory and mirrors it to a
// durable persister so it survives restarts. At most one credential is
// active per client instance.
type Store struct {
	mu           sync.Mutex
	token        string
	persist      Persister
	onInvalidate func()
}

// New creates a Store backed by the system keyring, primed with any
// previously persisted credential. A missing entry means a guest session.
func New() *Store {
	return NewWithPersister(keyringPersister{})
}

// NewWithPersister creates a Store using the given persister. A nil
// persister keeps the credential in memory only.
func NewWithPersister(p Persister) *Store {
	s := &Store{persist: p}
	if p != nil {
		if token, err := p.Load(); err == nil {
			s.token = token
		}
	}
	return s
}

// Set stores the token in memory and in the persister. Idempotent.
func (s *Store) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	// Persistence is best effort; the in-memory credential keeps the
	// session working even when the keyring is unavailable.
	if s.persist != nil {
		_ = s.persist.Save(token)
	}
}

// Clear removes the token from memory and the persister. Safe to call
// when no credential is present.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if s.persist != nil {
		_ = s.persist.Delete()
	}
}

// Token returns the current credential, or "" for a guest session.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Present reports whether a credential is currently held.
func (s *Store) Present() bool {
	return s.Token() != ""
}

// AuthHeader returns the Authorization header value for outgoing
// requests, or "" when no credential is present (guest requests carry
// no Authorization header at all).
func (s *Store) AuthHeader() string {
	token := s.Token()
	if token == "" {
		return ""
	}
	return "Bearer " + token
}

// SetOnInvalidate registers the single listener notified when the
// session is invalidated by a 401 response.
func (s *Store) SetOnInvalidate(fn func()) {
	s.mu.Lock()
	s.onInvalidate = fn
	s.mu.Unlock()
}

// Invalidate clears the credential and notifies the listener. Called by
// the gateway whenever any request comes back 401.
func (s *Store) Invalidate() {
	s.mu.Lock()
	hadToken := s.token != ""
	s.token = ""
	fn := s.onInvalidate
	s.mu.Unlock()

	if s.persist != nil {
		_ = s.persist.Delete()
	}

	if hadToken && fn != nil {
		fn()
	}
}
