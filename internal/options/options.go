// Package options contains the program options.
package options

import "time"

// Parameters contains file and device options.
type Parameters struct {
	Filename  string `flag:"filename" usage:"JEDEC file created by CyberClocks"`
	Bus       string `flag:"bus" usage:"I2C bus number"`
	Address   string `flag:"address" usage:"CY22393 I2C address (factory address is 0x69)"`
	OutputDir string `flag:"o" usage:"directory for exported register files"`
	HexFile   string `flag:"hex" usage:"write the register map as Intel HEX file"`
	Command   string `flag:"i2cset" usage:"i2cset binary used to write registers"`
}

// Flags contains behavior options.
type Flags struct {
	Export  bool          `flag:"export" usage:"export the register values as C array files"`
	Verify  bool          `flag:"verify" usage:"verify exported files by reading them back"`
	Strict  bool          `flag:"strict" usage:"stop at the first failed register write"`
	DryRun  bool          `flag:"n" usage:"log register writes without accessing the bus"`
	Timeout time.Duration `flag:"timeout" usage:"timeout of a single register write"`
	Debug   bool          `flag:"debug" usage:"enable debug logging"`
	Quiet   bool          `flag:"q" usage:"quiet mode"`
}

// Program options of the flasher.
type Program struct {
	Parameters
	Flags
}

// WriteRequested returns whether the registers should be written to the device.
func (p Program) WriteRequested() bool {
	return p.Bus != "" && p.Address != ""
}

// ExportRequested returns whether any export file should be written.
func (p Program) ExportRequested() bool {
	return p.Export || p.HexFile != ""
}
