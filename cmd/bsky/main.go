// Command bsky is a small CLI over the library: it publishes posts, lists
// and sends direct messages, and watches the firehose.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmoggles/blueskysocial/client"
	"github.com/dmoggles/blueskysocial/internal/config"
)

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:           "bsky",
	Short:         "Interact with Bluesky from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// authenticatedClient loads configuration and logs in.
func authenticatedClient(ctx context.Context) (*client.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	c := client.New(cfg.PDS)
	if err := c.Authenticate(ctx, cfg.Handle, cfg.AppPassword); err != nil {
		return nil, nil, fmt.Errorf("authenticate: %w", err)
	}
	return c, cfg, nil
}
