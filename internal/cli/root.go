// Package cli implements the bloom CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bloomwell/bloom/internal/config"
	"github.com/bloomwell/bloom/internal/logger"
	"github.com/bloomwell/bloom/internal/storage"
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "bloom",
	Short: "Rule-based conversational support engine",
	Long:  "Bloom is a wellness chat service: deterministic text analysis, template-driven replies, crisis detection, and achievement tracking.",
}

func init() {
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(seedCmd)
}

func setup(ctx context.Context) (config.Config, zerolog.Logger, *storage.Store, error) {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	store, err := storage.NewStore(ctx, cfg.DatabaseURL, cfg.RedisURL, log)
	if err != nil {
		return cfg, log, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, log, store, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
