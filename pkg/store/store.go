// Package store provides the persisted snapshot store: a small
// key-value contract used to keep catalog snapshots across sessions.
package store

import "context"

// Store is the key-value contract for persisted snapshots.
//
// Implementations must be safe for concurrent use. Get distinguishes
// "absent" from failure so callers can treat a missing snapshot as a
// normal cache miss.
type Store interface {
	// Put stores value under key, replacing any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the value for key. The bool reports whether the key
	// was present; a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Remove deletes the value for key. Removing an absent key succeeds.
	Remove(ctx context.Context, key string) error

	// Close releases underlying resources.
	Close() error
}
