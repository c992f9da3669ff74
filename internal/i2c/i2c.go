// Package i2c writes single device registers over an I2C bus using the
// i2c-tools command line utilities.
package i2c

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// DefaultCommand is the i2c-tools utility used to set a register.
const DefaultCommand = "i2cset"

// waitDelay bounds how long output is still read after the command was killed,
// children of the bus tool can keep the output pipe open.
const waitDelay = 500 * time.Millisecond

// Writer sets one device register to one byte value.
type Writer interface {
	WriteRegister(ctx context.Context, bus, address string, register, value byte) error
}

// BusWriteError is returned if a register write was not acknowledged by the bus tool.
type BusWriteError struct {
	Bus      string
	Address  string
	Register byte
	Value    byte
	Output   string
	Err      error
}

func (e *BusWriteError) Error() string {
	msg := fmt.Sprintf("writing 0x%02x to register 0x%02x of device %s on bus %s failed",
		e.Value, e.Register, e.Address, e.Bus)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BusWriteError) Unwrap() error {
	return e.Err
}

// Command writes registers by running i2cset once per register.
type Command struct {
	Name    string        // name or path of the i2cset binary
	Timeout time.Duration // timeout of a single invocation, 0 disables it
}

// NewCommand returns a writer that runs the given i2cset binary.
func NewCommand(name string, timeout time.Duration) *Command {
	if name == "" {
		name = DefaultCommand
	}
	return &Command{
		Name:    name,
		Timeout: timeout,
	}
}

// Args returns the command line arguments for a single register write.
func Args(bus, address string, register, value byte) []string {
	return []string{"-y", bus, address, fmt.Sprintf("0x%02x", register), fmt.Sprintf("0x%02x", value)}
}

// LookPath checks that the configured binary is installed.
func (c *Command) LookPath() error {
	if _, err := exec.LookPath(c.Name); err != nil {
		return fmt.Errorf("%s is not installed: %w", c.Name, err)
	}
	return nil
}

// WriteRegister runs the bus tool synchronously and reports a non zero exit status as error.
func (c *Command) WriteRegister(ctx context.Context, bus, address string, register, value byte) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, Args(bus, address, register, value)...)
	cmd.WaitDelay = waitDelay
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return &BusWriteError{
			Bus:      bus,
			Address:  address,
			Register: register,
			Value:    value,
			Output:   strings.TrimSpace(string(out)),
			Err:      err,
		}
	}
	return nil
}

// DryRun logs the commands that would be run without touching the bus.
type DryRun struct {
	logger *log.Logger
	name   string
}

// NewDryRun returns a writer that only logs.
func NewDryRun(logger *log.Logger, name string) *DryRun {
	if name == "" {
		name = DefaultCommand
	}
	return &DryRun{
		logger: logger,
		name:   name,
	}
}

// WriteRegister logs the command line of the write.
func (d *DryRun) WriteRegister(ctx context.Context, bus, address string, register, value byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.logger.Debug("Dry run",
		log.String("command", d.name+" "+strings.Join(Args(bus, address, register, value), " ")))
	return nil
}
