package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ruminaider/devlinks/internal/commands"
	"github.com/ruminaider/devlinks/internal/config"
	"github.com/ruminaider/devlinks/internal/paths"
	dsync "github.com/ruminaider/devlinks/internal/sync"
)

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return paths.ConfigFile()
}

// loadDotEnv loads ./.env and ~/.devlinks/.env without overriding the
// real environment.
func loadDotEnv() error {
	return config.LoadDotEnv(".env", paths.EnvFile())
}

// loadConfig reads .env files, the config file and DEVLINKS_* overrides.
func loadConfig() (config.Config, error) {
	if err := loadDotEnv(); err != nil {
		return config.Config{}, err
	}
	return config.Load(resolvedConfigPath())
}

func openSession(ctx context.Context) (*commands.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return commands.OpenSession(ctx, cfg, slog.Default())
}

// printResult reports a finished save.
func printResult(res dsync.SaveResult) {
	if res.Notice != "" {
		fmt.Printf("✓ %s\n", res.Notice)
	}
	for _, w := range res.Warnings {
		fmt.Printf("  ⚠️  link %d: %s\n", w.Position+1, w.Reason)
	}
}
