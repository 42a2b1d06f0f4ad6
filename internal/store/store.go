package store

import "context"

// EvictCallback is called when an entry is evicted from the store.
// Not all providers support eviction callbacks (e.g., Redis relies on key expiry).
type EvictCallback func(key string, value []byte)

// Store is a key-value store for short-lived session state. Entries expire
// after the configured TTL of inactivity.
type Store interface {
	// Get retrieves a value by key and refreshes its TTL. Returns false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given key, overwriting any existing one.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Len returns the number of live entries.
	Len() int

	// Close releases any resources held by the store (e.g., network connections).
	Close() error
}
