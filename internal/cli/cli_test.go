package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		write  bool
		export bool
	}{
		{
			name:  "bus and address",
			args:  []string{"-filename", "clock.jed", "-bus", "1", "-address", "0x69"},
			write: true,
		},
		{
			name:   "export only",
			args:   []string{"--filename", "clock.jed", "--export"},
			export: true,
		},
		{
			name:   "short flags",
			args:   []string{"-f", "clock.jed", "-b", "0", "-a", "0x6a", "-e"},
			write:  true,
			export: true,
		},
		{
			name:   "hex export",
			args:   []string{"-f", "clock.jed", "-hex", "clock.hex"},
			export: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, "clock.jed", opts.Filename)
			assert.Equal(t, tt.write, opts.WriteRequested())
			assert.Equal(t, tt.export, opts.ExportRequested())
			assert.Equal(t, ".", opts.OutputDir)
			assert.Equal(t, "i2cset", opts.Command)
			assert.Equal(t, 5*time.Second, opts.Timeout)
		})
	}
}

func TestParseFlagsOptions(t *testing.T) {
	opts, err := ParseFlags([]string{"-f", "clock.jed", "-b", "1", "-a", "0x69", "-strict", "-n",
		"-timeout", "250ms", "-i2cset", "/usr/sbin/i2cset", "-e", "-o", "out", "-verify", "-debug"})
	assert.NoError(t, err)
	assert.True(t, opts.Strict)
	assert.True(t, opts.DryRun)
	assert.True(t, opts.Verify)
	assert.True(t, opts.Debug)
	assert.Equal(t, 250*time.Millisecond, opts.Timeout)
	assert.Equal(t, "/usr/sbin/i2cset", opts.Command)
	assert.Equal(t, "out", opts.OutputDir)
	assert.Equal(t, "0x69", opts.Address)
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{name: "no arguments", args: nil, message: "filename is needed"},
		{name: "missing filename", args: []string{"-bus", "1", "-address", "0x69"}, message: "filename is needed"},
		{name: "no output path", args: []string{"-f", "clock.jed"}, message: "-export"},
		{name: "bus without address", args: []string{"-f", "clock.jed", "-bus", "1"}, message: "-address"},
		{name: "address without bus", args: []string{"-f", "clock.jed", "-address", "0x69"}, message: "-bus"},
		{name: "verify without export", args: []string{"-f", "clock.jed", "-b", "1", "-a", "0x69", "-verify"}, message: "-verify"},
		{name: "unknown flag", args: []string{"-f", "clock.jed", "-x"}, message: "-x"},
		{name: "positional argument", args: []string{"-f", "clock.jed", "-e", "extra"}, message: "extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.ErrorContains(t, err, tt.message)

			var buf bytes.Buffer
			usageErr.PrintUsage(&buf)
			assert.Contains(t, buf.String(), "usage: cy22393flash")
			assert.Contains(t, buf.String(), "-filename")
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	for _, arg := range []string{"-h", "-help", "--help"} {
		t.Run(arg, func(t *testing.T) {
			_, err := ParseFlags([]string{arg})

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.True(t, usageErr.Help())

			var buf bytes.Buffer
			usageErr.PrintUsage(&buf)
			assert.False(t, strings.Contains(buf.String(), "help requested"))
			assert.Contains(t, buf.String(), "usage: cy22393flash")
		})
	}

	_, err := ParseFlags([]string{"-f", "clock.jed"})
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
	assert.False(t, usageErr.Help())
}

func TestUsageAddressHelpText(t *testing.T) {
	_, err := ParseFlags(nil)
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.PrintUsage(&buf)
	assert.Contains(t, buf.String(), "factory address is 0x69")
	assert.False(t, strings.Contains(buf.String(), "default is 0x69"))
}
