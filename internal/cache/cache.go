// Package cache holds the in-process bounded store behind the memory
// storage backend.
package cache

// Cache is the subset of LRU the storage layer depends on.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K) bool
	Len() int
}

var _ Cache[string, string] = (*LRU[string, string])(nil)
