package storage

import (
	"context"
	"sync/atomic"
	"time"

	"fintrack/internal/cache"
)

// MemoryKV is a process-local store. Nothing survives a restart.
type MemoryKV struct {
	items  *cache.LRU[string, string]
	closed atomic.Bool
}

var _ KV = (*MemoryKV)(nil)

// MemoryOption bounds a MemoryKV.
type MemoryOption func(*cache.Options[string, string])

// WithMaxKeys keeps at most n keys, dropping the least recently used.
// n <= 0 means unbounded.
func WithMaxKeys(n int) MemoryOption {
	return func(o *cache.Options[string, string]) { o.MaxSize = n }
}

// WithTTL makes a key unreadable d after it was last set. d <= 0 keeps keys
// until deleted.
func WithTTL(d time.Duration) MemoryOption {
	return func(o *cache.Options[string, string]) { o.TTL = d }
}

// WithEvictHook is called with each key dropped by WithMaxKeys or WithTTL.
func WithEvictHook(fn func(key string)) MemoryOption {
	return func(o *cache.Options[string, string]) {
		o.OnEvict = func(key, _ string) { fn(key) }
	}
}

func NewMemoryKV(opts ...MemoryOption) *MemoryKV {
	var o cache.Options[string, string]
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryKV{items: cache.NewLRU(o)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if err := m.check(key); err != nil {
		return "", false, err
	}
	v, ok := m.items.Get(key)
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	if err := m.check(key); err != nil {
		return err
	}
	m.items.Set(key, value)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	if err := m.check(key); err != nil {
		return err
	}
	m.items.Delete(key)
	return nil
}

// Len reports the number of stored keys.
func (m *MemoryKV) Len() int {
	return m.items.Len()
}

// Keys lists the stored keys, most recently used first.
func (m *MemoryKV) Keys() []string {
	return m.items.Keys()
}

// Close drops everything; later calls fail with ErrClosed.
func (m *MemoryKV) Close() error {
	m.closed.Store(true)
	m.items.Purge()
	return nil
}

func (m *MemoryKV) check(key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return checkKey(key)
}
