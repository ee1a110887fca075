// Package session provides access to per-session key-value state and
// resolves the authenticated user's identity from it.
package session

import "context"

// Store exposes the key-value state of one authenticated session. It is
// injected into services instead of read from ambient globals so tests can
// substitute deterministic state.
type Store interface {
	// GetItem returns the value stored under key. The second return is
	// false when no value is present.
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error
}

// UserKey is the session item holding the serialized authenticated user.
const UserKey = "user"

// MemStore is an in-memory Store, used in tests and for ephemeral sessions.
type MemStore struct {
	items map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string]string)}
}

func (s *MemStore) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemStore) SetItem(_ context.Context, key, value string) error {
	s.items[key] = value
	return nil
}
