// Package store defines the config store contract and its implementations.
// The store is deliberately dumb: scalar reads and writes against a shared
// key-value backend, no business logic.
package store

import "context"

// ConfigStore is the key-value contract the rollout service reads through.
// Implementations must tolerate concurrent reads and writes; each key is
// observed atomically (old or new value, never a torn one).
type ConfigStore interface {
	// GetString returns the value for key, or fallback when the key is
	// missing. Backend errors also yield fallback so readers fail closed.
	GetString(ctx context.Context, key, fallback string) string

	// GetInt returns the integer value for key, or fallback when the key is
	// missing or not numeric.
	GetInt(ctx context.Context, key string, fallback int) int

	// SetString stores value under key.
	SetString(ctx context.Context, key, value string) error
}
