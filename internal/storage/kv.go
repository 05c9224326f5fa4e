// Package storage provides the persistent client-side key-value store that
// holds the session token, the insight cache entry and display preferences.
package storage

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyToken         = "token"
	KeyInsightsCache = "ai_insights_cache"
	KeyTheme         = "theme"
)

var (
	ErrEmptyKey = errors.New("storage: empty key")
	ErrClosed   = errors.New("storage: closed")
)

// KV is a string key-value store. Each operation is atomic per key and the
// last write wins; implementations must be safe for concurrent use.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
