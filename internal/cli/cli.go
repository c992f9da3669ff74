// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/i2c"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/options"
)

const defaultTimeout = 5 * time.Second

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet("cy22393flash", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags, msg: "help requested", help: true}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if flags.NArg() > 0 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s", flags.Arg(0)),
		}
	}

	if err := validateOptions(opts); err != nil {
		err.flags = flags
		return opts, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
	help  bool
}

func (e *UsageError) Error() string {
	return e.msg
}

// Help returns whether the usage was explicitly requested with -h or -help,
// this is not a failure.
func (e *UsageError) Help() bool {
	return e.help
}

// ShowUsage prints the usage text to stdout.
func (e *UsageError) ShowUsage() {
	e.PrintUsage(os.Stdout)
}

// PrintUsage prints the usage text to the given writer.
func (e *UsageError) PrintUsage(w io.Writer) {
	if e.msg != "" && !e.help {
		fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	fmt.Fprintf(w, "usage: cy22393flash -filename <file.jed> [-bus <bus> -address <addr>] [-export]\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
		e.flags.SetOutput(io.Discard)
	}
	fmt.Fprintln(w)
}

// validateOptions checks the required argument combinations.
func validateOptions(opts options.Program) *UsageError {
	if opts.Filename == "" {
		return &UsageError{msg: "The jedec filename is needed."}
	}
	if !opts.WriteRequested() && !opts.ExportRequested() {
		return &UsageError{msg: "Either -bus and -address or -export has to be given."}
	}
	if opts.Verify && !opts.ExportRequested() {
		return &UsageError{msg: "-verify requires -export or -hex."}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	stringFlag(flags, &opts.Filename, "filename", "f", "", "the jedec filename")
	stringFlag(flags, &opts.Bus, "bus", "b", "", "the I2C bus number to be used")
	stringFlag(flags, &opts.Address, "address", "a", "", fmt.Sprintf("the CY22393 I2C address (factory address is %s)", cy22393.FactoryAddress))
	boolFlag(flags, &opts.Export, "export", "e", "export the values to the register array files")

	flags.StringVar(&opts.OutputDir, "o", ".", "directory to write the exported register files to")
	flags.StringVar(&opts.HexFile, "hex", "", "name of an Intel HEX file to write the register map to")
	flags.StringVar(&opts.Command, "i2cset", i2c.DefaultCommand, "i2cset binary used to write the registers")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the exported files by reading them back")
	flags.BoolVar(&opts.Strict, "strict", false, "stop at the first failed register write")
	flags.BoolVar(&opts.DryRun, "n", false, "dry run, log the register writes without accessing the bus")
	flags.DurationVar(&opts.Timeout, "timeout", defaultTimeout, "timeout of a single register write, 0 disables it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func stringFlag(flags *flag.FlagSet, p *string, name, short, value, usage string) {
	flags.StringVar(p, name, value, usage)
	flags.StringVar(p, short, value, "shorthand for -"+name)
}

func boolFlag(flags *flag.FlagSet, p *bool, name, short, usage string) {
	flags.BoolVar(p, name, false, usage)
	flags.BoolVar(p, short, false, "shorthand for -"+name)
}
