// Package loader handles JEDEC file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/jedec"
)

// ErrNotFound is returned if the JEDEC file does not exist.
var ErrNotFound = errors.New("jedec file not found")

// Loader handles loading JEDEC files from disk.
type Loader struct{}

// New creates a new JEDEC file loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a JEDEC file and decodes both register tables.
// The table sizes are not checked, use cy22393.File.Validate for that.
func (l *Loader) Load(path string) (*cy22393.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	return l.LoadFromBytes(path, data)
}

// LoadFromBytes decodes both register tables from in-memory file content.
// The name is only used for error messages.
func (l *Loader) LoadFromBytes(name string, data []byte) (*cy22393.File, error) {
	scanner := jedec.NewScanner(jedec.Clean(string(data)))

	table0, err := scanner.Bytes(cy22393.MarkerTable0)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	table1, err := scanner.Bytes(cy22393.MarkerTable1)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	return cy22393.NewFile(name, table0, table1), nil
}
