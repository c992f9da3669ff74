// Package pipeline orchestrates the load, write and export stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/app"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/exporter"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/flasher"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/i2c"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/loader"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/options"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// WriterFactory creates the bus writer, it is only called if a write was requested.
type WriterFactory func(logger *log.Logger, opts options.Program) (i2c.Writer, error)

// Pipeline orchestrates the complete flashing workflow.
type Pipeline struct {
	logger    *log.Logger
	loader    *loader.Loader
	newWriter WriterFactory
}

// New creates a new flashing pipeline.
func New(logger *log.Logger, newWriter WriterFactory) *Pipeline {
	return &Pipeline{
		logger:    logger,
		loader:    loader.New(),
		newWriter: newWriter,
	}
}

// Execute loads the JEDEC file and runs the selected output stages.
// Load and table size errors abort before any output is produced. A failed
// register write does not prevent the export, the returned error joins the
// errors of all stages.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	file, err := p.loader.Load(opts.Filename)
	if err != nil {
		return fmt.Errorf("loading file: %w", err)
	}
	if err := file.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", file.Name, err)
	}

	app.PrintInfo(p.logger, opts, file)

	var errs []error
	if opts.WriteRequested() {
		if err := p.write(ctx, opts, file); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			errs = append(errs, err)
		}
	}

	if opts.ExportRequested() {
		if err := p.export(opts, file); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (p *Pipeline) write(ctx context.Context, opts options.Program, file *cy22393.File) error {
	writer, err := p.newWriter(p.logger, opts)
	if err != nil {
		return fmt.Errorf("creating bus writer: %w", err)
	}

	f := flasher.New(p.logger, writer, opts.Strict)
	report, err := f.Flash(ctx, opts.Bus, opts.Address, file)
	if err != nil {
		return fmt.Errorf("writing registers: %w", err)
	}

	p.logger.Info("Registers written", log.Int("count", report.Attempted))
	return nil
}

func (p *Pipeline) export(opts options.Program, file *cy22393.File) error {
	p.logger.Info("Exporting reg values...")

	var errs []error
	if opts.Export {
		written, err := exporter.WriteArrays(opts.OutputDir, file)
		for _, path := range written {
			p.logger.Info("Exported", log.String("file", path))
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("exporting arrays: %w", err))
		} else if opts.Verify {
			if err := verification.VerifyArrays(p.logger, opts.OutputDir, file); err != nil {
				errs = append(errs, fmt.Errorf("verification failed: %w", err))
			}
		}
	}

	if opts.HexFile != "" {
		if err := exporter.WriteIntelHex(opts.HexFile, file); err != nil {
			errs = append(errs, fmt.Errorf("exporting intel hex: %w", err))
		} else {
			p.logger.Info("Exported", log.String("file", opts.HexFile))
			if opts.Verify {
				if err := verification.VerifyIntelHex(p.logger, opts.HexFile, file); err != nil {
					errs = append(errs, fmt.Errorf("verification failed: %w", err))
				}
			}
		}
	}

	if len(errs) == 0 && opts.Verify {
		p.logger.Info("Verification successful")
	}
	return errors.Join(errs...)
}
