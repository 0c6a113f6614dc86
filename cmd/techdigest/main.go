package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"techdigest/internal/app"
	"techdigest/internal/config"
	"techdigest/internal/logging"
)

func main() {
	var opts app.RunOptions

	rootCmd := &cobra.Command{
		Use:   "techdigest",
		Short: "Collects tech news sources into a sectioned daily digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.Test, "test", false, "print the digest to stdout instead of publishing")
	rootCmd.PersistentFlags().BoolVar(&opts.NoSend, "no-send", false, "publish the file artifact but skip Telegram")
	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "schedule",
		Short: "Run the digest on the configured cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduled(cmd.Context(), opts)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func buildApp(opts app.RunOptions) (*app.Application, error) {
	cfg := config.Load()
	if opts.Debug {
		cfg.Logging.Level = "debug"
	}
	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, opts, logger)
}

func runOnce(ctx context.Context, opts app.RunOptions) error {
	application, err := buildApp(opts)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Run(ctx)
}

func runScheduled(ctx context.Context, opts app.RunOptions) error {
	application, err := buildApp(opts)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Schedule(ctx)
}
