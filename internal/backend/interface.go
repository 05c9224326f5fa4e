package backend

import (
	"context"
	"time"

	"fintrack/internal/storage"
)

// BackendType represents the type of local storage backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	RedisBackend  BackendType = "redis"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, RedisBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds what a factory needs to open a store
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Redis specific
	RedisURL       string
	RedisKeyPrefix string

	// Memory specific
	MemoryMaxKeys int
	MemoryTTL     time.Duration
}

// Factory opens key-value stores
type Factory interface {
	Open(ctx context.Context, config Config) (storage.KV, error)
}
