package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmoggles/blueskysocial/firehose"
	"github.com/dmoggles/blueskysocial/internal/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream new posts from the firehose",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sub := firehose.NewSubscriber(cfg.FirehoseURL, func(ctx context.Context, event *firehose.Event) error {
		if event.Operation != "create" || event.Record == nil {
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", event.URI, event.Record.Text)
		return nil
	}, logger)

	err = sub.Start(ctx)
	if ctx.Err() != nil {
		// clean shutdown on signal
		return nil
	}
	return err
}
