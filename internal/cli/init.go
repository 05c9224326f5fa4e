// Package cli wires configuration, logging, storage and the view
// controllers behind the fintrack subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// SetupLogger builds the CLI logger on w (stderr in production) and makes
// it the default.
func SetupLogger(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentCLI,
		Output:    w,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads a .env file from the working directory if there is one.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig reads the environment and validates the result.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenStorage opens the configured local key-value store.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *log.Logger) (storage.KV, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	kv, err := backend.NewFactory(logger).Open(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", bcfg.Type, err)
	}
	return kv, nil
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
