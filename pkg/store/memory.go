package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Put stores value under key.
func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(value))
	copy(buf, value)
	s.values[key] = buf
	return nil
}

// Get returns the value for key, reporting presence via the bool.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	return buf, true, nil
}

// Remove deletes the value for key. Idempotent.
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
