// Package app provides the status output helpers of the flasher.
package app

import (
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("cy22393flash - CY22393 JEDEC I2C flasher",
		log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints information about the loaded file and the selected operations.
func PrintInfo(logger *log.Logger, opts options.Program, file *cy22393.File) {
	if opts.Quiet {
		return
	}

	logger.Info("Loaded JEDEC file",
		log.String("file", file.Name),
		log.Int("table0", len(file.Table(0))),
		log.Int("table1", len(file.Table(1))),
	)

	if opts.WriteRequested() {
		logger.Info("Using I2C bus",
			log.String("bus", opts.Bus),
			log.String("address", opts.Address),
		)
		if opts.DryRun {
			logger.Warn("Dry run, the bus will not be accessed")
		}
	}
}
