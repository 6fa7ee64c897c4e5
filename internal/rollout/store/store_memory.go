package store

import (
	"context"
	"strconv"
	"sync"
)

// MemoryStore is an in-memory ConfigStore for single-process deployments and
// tests. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore constructs an empty in-memory config store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// GetString returns the stored value for key, or fallback when missing.
func (s *MemoryStore) GetString(_ context.Context, key, fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.values[key]
	if !ok {
		return fallback
	}
	return val
}

// GetInt returns the stored integer for key, or fallback when missing or
// not numeric.
func (s *MemoryStore) GetInt(ctx context.Context, key string, fallback int) int {
	raw := s.GetString(ctx, key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// SetString stores value under key.
func (s *MemoryStore) SetString(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
