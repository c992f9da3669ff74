// Package flasher writes the decoded register tables to the chip in register order.
package flasher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/i2c"
	"github.com/retroenv/retrogolib/log"
)

// WriteFailures lists every register write of a run that failed.
type WriteFailures struct {
	Errors []*i2c.BusWriteError
}

func (e *WriteFailures) Error() string {
	registers := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		registers[i] = fmt.Sprintf("0x%02x", err.Register)
	}
	return fmt.Sprintf("%d register writes failed: %s", len(e.Errors), strings.Join(registers, ", "))
}

func (e *WriteFailures) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Report summarizes a flashing run.
type Report struct {
	Attempted int
	Failed    int
}

// Flasher issues one bus write per register.
type Flasher struct {
	logger *log.Logger
	writer i2c.Writer
	strict bool
}

// New returns a flasher. In strict mode the sequence stops at the first failed
// write, otherwise all registers are attempted and failures are reported at the end.
func New(logger *log.Logger, writer i2c.Writer, strict bool) *Flasher {
	return &Flasher{
		logger: logger,
		writer: writer,
		strict: strict,
	}
}

// Flash writes all register blocks of the file to the device. Registers are
// written in ascending order and block 0x08 completes before block 0x40 starts.
func (f *Flasher) Flash(ctx context.Context, bus, address string, file *cy22393.File) (Report, error) {
	var report Report

	// resolve all blocks first so that a short table fails before any bus traffic
	blocks := make([][]cy22393.Register, len(cy22393.Blocks))
	for i, block := range cy22393.Blocks {
		registers, err := file.Registers(block)
		if err != nil {
			return report, fmt.Errorf("preparing %s: %w", block.Name, err)
		}
		blocks[i] = registers
	}

	var failures WriteFailures
	for i, block := range cy22393.Blocks {
		f.logger.Info("Start writing values",
			log.String("from", fmt.Sprintf("0x%02x", block.Base)),
			log.String("to", fmt.Sprintf("0x%02x", block.Last())))

		for _, reg := range blocks[i] {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			f.logger.Info("Writing register",
				log.String("bus", bus),
				log.String("address", address),
				log.String("register", fmt.Sprintf("0x%02x", reg.Address)),
				log.String("value", fmt.Sprintf("0x%02x", reg.Value)))

			report.Attempted++
			err := f.writer.WriteRegister(ctx, bus, address, reg.Address, reg.Value)
			if err == nil {
				continue
			}

			report.Failed++
			busErr := asBusWriteError(err, bus, address, reg)
			if f.strict {
				return report, busErr
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			f.logger.Error("Register write failed", nil, log.Err(busErr))
			failures.Errors = append(failures.Errors, busErr)
		}
	}

	if len(failures.Errors) > 0 {
		return report, &failures
	}
	return report, nil
}

func asBusWriteError(err error, bus, address string, reg cy22393.Register) *i2c.BusWriteError {
	var busErr *i2c.BusWriteError
	if errors.As(err, &busErr) {
		return busErr
	}
	return &i2c.BusWriteError{
		Bus:      bus,
		Address:  address,
		Register: reg.Address,
		Value:    reg.Value,
		Err:      err,
	}
}
