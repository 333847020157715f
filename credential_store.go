package stayauth

import (
	"context"
	"sync"
)

// CredentialStore is durable key-value persistence for the current bearer
// token across process restarts. An absent credential is reported through
// the boolean, never as an error, so the store is safe to consult before any
// session has ever existed. Encryption and token rotation are out of scope.
type CredentialStore interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryCredentialStore is an in-process [CredentialStore]. It does not
// survive restarts; it exists for tests and for hosts that manage their own
// durability.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryCredentialStore creates an empty in-memory store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

// Get returns the held token, reporting absence through ok.
func (s *MemoryCredentialStore) Get(context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set, nil
}

// Set replaces the held token.
func (s *MemoryCredentialStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

// Clear removes the held token. Clearing an empty store is a no-op.
func (s *MemoryCredentialStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}
