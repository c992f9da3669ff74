// Package exporter writes the register tables as firmware source snippets.
package exporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
)

// FormatArray returns the values as a brace delimited C initializer list,
// every value is a lowercase hex literal followed by a comma.
func FormatArray(values []byte) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, value := range values {
		fmt.Fprintf(&sb, "0x%x,", value)
	}
	sb.WriteString("\n}")
	return sb.String()
}

// WriteArrays writes one initializer list file per register block into dir.
// Every file is attempted, the returned error joins the errors of all failed files.
func WriteArrays(dir string, file *cy22393.File) ([]string, error) {
	var (
		written []string
		errs    []error
	)

	for _, block := range cy22393.Blocks {
		values, err := file.Values(block)
		if err != nil {
			errs = append(errs, fmt.Errorf("exporting %s: %w", block.Name, err))
			continue
		}

		path := filepath.Join(dir, block.ExportName)
		if err := writeFileAtomic(path, []byte(FormatArray(values))); err != nil {
			errs = append(errs, fmt.Errorf("exporting %s: %w", block.Name, err))
			continue
		}
		written = append(written, path)
	}

	return written, errors.Join(errs...)
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, a failed write leaves an existing file untouched.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", path, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing file '%s': %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("setting permissions of '%s': %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming file to '%s': %w", path, err)
	}
	return nil
}
