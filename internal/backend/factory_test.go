package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/storage"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}

	if _, err := FromAppConfig(&config.Config{StorageBackend: "cookies"}); err == nil {
		t.Error("expected error for invalid backend")
	}

	cfg, err := FromAppConfig(&config.Config{
		StorageBackend: "redis",
		RedisURL:       "redis://localhost:6379/1",
		RedisKeyPrefix: "ft:",
		MemoryMaxKeys:  10,
		MemoryTTL:      time.Hour,
	})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != RedisBackend || cfg.RedisURL != "redis://localhost:6379/1" || cfg.RedisKeyPrefix != "ft:" ||
		cfg.MemoryMaxKeys != 10 || cfg.MemoryTTL != time.Hour {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestFactoryOpen(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		kv, err := f.Open(ctx, Config{Type: MemoryBackend})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer kv.Close()
		if _, ok := kv.(*storage.MemoryKV); !ok {
			t.Errorf("got %T, want *storage.MemoryKV", kv)
		}
	})

	t.Run("bounded memory", func(t *testing.T) {
		kv, err := f.Open(ctx, Config{Type: MemoryBackend, MemoryMaxKeys: 1})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer kv.Close()
		_ = kv.Set(ctx, storage.KeyToken, "t")
		_ = kv.Set(ctx, storage.KeyTheme, "dark")
		if _, ok, _ := kv.Get(ctx, storage.KeyToken); ok {
			t.Error("token should have been evicted by the one-key bound")
		}
		if v, ok, _ := kv.Get(ctx, storage.KeyTheme); !ok || v != "dark" {
			t.Errorf("theme = %q, %v", v, ok)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		kv, err := f.Open(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "kv.db")})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer kv.Close()
		if _, ok := kv.(*storage.SQLiteKV); !ok {
			t.Errorf("got %T, want *storage.SQLiteKV", kv)
		}
	})

	t.Run("sqlite without path", func(t *testing.T) {
		if _, err := f.Open(ctx, Config{Type: SQLiteBackend}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := f.Open(ctx, Config{Type: "etcd"}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestBackendTypeIsValid(t *testing.T) {
	for _, bt := range []BackendType{SQLiteBackend, RedisBackend, MemoryBackend} {
		if !bt.IsValid() {
			t.Errorf("%s should be valid", bt)
		}
	}
	if BackendType("sheets").IsValid() {
		t.Error("sheets should not be valid")
	}
}
