package backend

import (
	"context"
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentStorage)}
}

// FromAppConfig converts the application config to a backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.StorageBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.StorageBackend)
	}

	return Config{
		Type:           backendType,
		SQLiteDBPath:   appConfig.SQLiteDBPath,
		RedisURL:       appConfig.RedisURL,
		RedisKeyPrefix: appConfig.RedisKeyPrefix,
		MemoryMaxKeys:  appConfig.MemoryMaxKeys,
		MemoryTTL:      appConfig.MemoryTTL,
	}, nil
}

// Open implements Factory.Open
func (f *DefaultFactory) Open(ctx context.Context, cfg Config) (storage.KV, error) {
	switch cfg.Type {
	case SQLiteBackend:
		if cfg.SQLiteDBPath == "" {
			return nil, fmt.Errorf("SQLite database path is required for sqlite backend")
		}
		kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		f.logger.Debug("Opened SQLite store", log.FieldBackend, cfg.Type, "db_path", cfg.SQLiteDBPath)
		return kv, nil

	case RedisBackend:
		kv, err := storage.NewRedisKV(ctx, cfg.RedisURL, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to open Redis store: %w", err)
		}
		f.logger.Debug("Opened Redis store", log.FieldBackend, cfg.Type, "prefix", cfg.RedisKeyPrefix)
		return kv, nil

	case MemoryBackend:
		f.logger.Debug("Opened memory store", log.FieldBackend, cfg.Type,
			"max_keys", cfg.MemoryMaxKeys, "ttl", cfg.MemoryTTL)
		return storage.NewMemoryKV(
			storage.WithMaxKeys(cfg.MemoryMaxKeys),
			storage.WithTTL(cfg.MemoryTTL),
			storage.WithEvictHook(func(key string) {
				f.logger.Debug("Evicted key", log.FieldBackend, cfg.Type, log.FieldKey, key)
			}),
		), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
