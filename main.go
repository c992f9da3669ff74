// Package main implements a flasher for CY22393 clock generator JEDEC files.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/app"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cli"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/config"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/pipeline"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, config.CreateBusWriter)
	stop()
	os.Exit(code)
}

// run executes the flasher and returns the process exit status.
func run(ctx context.Context, args []string, stdout io.Writer, newWriter pipeline.WriterFactory) int {
	opts, err := cli.ParseFlags(args)
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if !errors.As(err, &usageErr) {
			logger.Error(err.Error(), nil)
			return 1
		}

		app.PrintBanner(logger, opts, version, commit, date)
		usageErr.PrintUsage(stdout)
		if usageErr.Help() {
			return 0
		}
		return 1
	}

	logger := config.CreateLogger(opts)
	app.PrintBanner(logger, opts, version, commit, date)

	pipe := pipeline.New(logger, newWriter)
	if err := pipe.Execute(ctx, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return 1
		}
		logger.Error(err.Error(), nil)
		return 1
	}
	return 0
}
