// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command bookctl inspects the Bookhub catalogue and board from a terminal.
//
// It reads the same environment as the API server. Without DATABASE_URL it
// works on a fresh in-memory copy of the fixtures.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/bookhub/internal/app"
	"github.com/taibuivan/bookhub/internal/platform/config"
	pgstore "github.com/taibuivan/bookhub/internal/platform/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	asJSON  bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "bookctl",
		Short:         "Inspect the Bookhub catalogue and discussion board",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newBooksCmd(opts),
		newBookCmd(opts),
		newDiscussionsCmd(opts),
		newMigrateCmd(opts),
	)

	return root
}

func (opts *options) logger(cmd *cobra.Command) *slog.Logger {
	if !opts.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// bootstrap loads configuration and wires the services. The returned close
// function releases the database pool.
func (opts *options) bootstrap(cmd *cobra.Command) (*app.App, func(), error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := opts.logger(cmd)
	var backends app.Backends
	closeFn := func() {}

	if cfg.UsesPostgres() {
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		backends.Pool = pool
		closeFn = pool.Close
	}

	application, err := app.New(ctx, cfg, backends, logger)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return application, closeFn, nil
}
