package session

import (
	"errors"
	"testing"
)

// memPersister is an in-memory Persister for tests.
type memPersister struct {
	token string
	saved bool
}

func (m *memPersister) Load() (string, error) {
	if m.token == "" {
		return "", errors.New("no credential")
	}
	return m.token, nil
}

func (m *memPersister) Save(t string) error {
	m.token = t
	m.saved = true
	return nil
}

func (m *memPersister) Delete() error {
	m.token = ""
	return nil
}

func TestSetAndAuthHeader(t *testing.T) {
	s := NewWithPersister(nil)

	if s.Present() {
		t.Fatal("fresh store should be a guest session")
	}
	if got := s.AuthHeader(); got != "" {
		t.Fatalf("guest AuthHeader = %q, want empty", got)
	}

	s.Set("tok-123")
	if got := s.AuthHeader(); got != "Bearer tok-123" {
		t.Fatalf("AuthHeader = %q, want %q", got, "Bearer tok-123")
	}

	// Idempotent.
	s.Set("tok-123")
	if got := s.Token(); got != "tok-123" {
		t.Fatalf("Token = %q, want tok-123", got)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewWithPersister(nil)
	s.Clear()
	s.Set("tok")
	s.Clear()
	s.Clear()

	if s.Present() {
		t.Fatal("store should be empty after Clear")
	}
}

func TestLoadsPersistedCredential(t *testing.T) {
	p := &memPersister{token: "persisted"}
	s := NewWithPersister(p)

	if got := s.Token(); got != "persisted" {
		t.Fatalf("Token = %q, want persisted", got)
	}
}

func TestSetWritesThroughToPersister(t *testing.T) {
	p := &memPersister{}
	s := NewWithPersister(p)

	s.Set("fresh")
	if !p.saved || p.token != "fresh" {
		t.Fatalf("persister not updated: %+v", p)
	}

	s.Clear()
	if p.token != "" {
		t.Fatalf("persister still holds %q after Clear", p.token)
	}
}

func TestInvalidateNotifiesListenerOnce(t *testing.T) {
	s := NewWithPersister(nil)
	s.Set("tok")

	calls := 0
	s.SetOnInvalidate(func() { calls++ })

	s.Invalidate()
	if s.Present() {
		t.Fatal("credential should be gone after Invalidate")
	}
	if calls != 1 {
		t.Fatalf("listener called %d times, want 1", calls)
	}

	// A second 401 on an already-guest session stays silent.
	s.Invalidate()
	if calls != 1 {
		t.Fatalf("listener called %d times after repeat Invalidate, want 1", calls)
	}
}
