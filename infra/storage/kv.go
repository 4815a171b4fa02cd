// Package storage is the persistence boundary: a durable string-keyed
// store holding JSON records under fixed keys. Reads fall back to
// compiled-in defaults on absence or corruption; writes are
// fire-and-forget and never block a state mutation.
package storage

import "errors"

// ErrKeyNotFound indicates the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// KV is the minimal durable key-value capability the stores depend on.
type KV interface {
	// Get returns the stored value, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Set stores the value under the key, overwriting any prior value.
	Set(key string, value []byte) error

	// Close releases the underlying resources.
	Close() error
}
