package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fintrack/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := cli.SetupLogger(cfg.LogLevel, os.Stderr)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	kv, err := cli.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open local storage", "backend", cfg.StorageBackend, "error", err)
		return 1
	}

	app := cli.NewApp(cfg, kv, logger)
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("Failed to close local storage", "error", err)
		}
	}()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		fmt.Fprintln(os.Stderr, "fintrack:", err)
		return 1
	}
	return 0
}
