// Package config handles application configuration and setup
package config

import (
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/i2c"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with the level selected by the debug and quiet flags.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug:
		cfg.Level = log.DebugLevel
	case opts.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateBusWriter returns the register writer selected by the options.
func CreateBusWriter(logger *log.Logger, opts options.Program) (i2c.Writer, error) {
	if opts.DryRun {
		return i2c.NewDryRun(logger, opts.Command), nil
	}

	cmd := i2c.NewCommand(opts.Command, opts.Timeout)
	if err := cmd.LookPath(); err != nil {
		return nil, err
	}
	return cmd, nil
}
