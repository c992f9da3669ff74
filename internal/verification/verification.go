// Package verification verifies that the exported files recreate the decoded register tables.
package verification

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
	"github.com/marcinbor85/gohex"
	"github.com/retroenv/retrogolib/log"
)

// ParseArray parses a brace delimited initializer list as written by the exporter.
func ParseArray(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "{") || !strings.HasSuffix(content, "}") {
		return nil, fmt.Errorf("missing braces around initializer list")
	}
	content = strings.TrimSpace(content[1 : len(content)-1])

	var values []byte
	for i, token := range strings.Split(content, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		value, err := strconv.ParseUint(token, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("parsing value %d '%s': %w", i, token, err)
		}
		values = append(values, byte(value))
	}
	return values, nil
}

// VerifyArrays reads back all exported array files from dir and compares them
// with the register values of the file.
func VerifyArrays(logger *log.Logger, dir string, file *cy22393.File) error {
	for _, block := range cy22393.Blocks {
		expected, err := file.Values(block)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", block.Name, err)
		}

		path := filepath.Join(dir, block.ExportName)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading file '%s' for comparison: %w", path, err)
		}

		actual, err := ParseArray(string(data))
		if err != nil {
			return fmt.Errorf("parsing file '%s': %w", path, err)
		}

		if err := checkBufferEqual(logger, block, expected, actual); err != nil {
			return fmt.Errorf("file '%s' mismatch: %w", path, err)
		}
	}
	return nil
}

// VerifyIntelHex reads back an exported Intel HEX image and compares every
// register block with the register values of the file.
func VerifyIntelHex(logger *log.Logger, path string, file *cy22393.File) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file '%s' for comparison: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(f); err != nil {
		return fmt.Errorf("parsing intel hex file '%s': %w", path, err)
	}

	for _, block := range cy22393.Blocks {
		expected, err := file.Values(block)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", block.Name, err)
		}

		actual := mem.ToBinary(uint32(block.Base), uint32(block.Count), 0xff)
		if err := checkBufferEqual(logger, block, expected, actual); err != nil {
			return fmt.Errorf("file '%s' mismatch: %w", path, err)
		}
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, block cy22393.Block, expected, actual []byte) error {
	if len(expected) != len(actual) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(expected), len(actual))
	}

	var diffs uint64
	for i := range expected {
		if expected[i] == actual[i] {
			continue
		}

		diffs++
		logger.Error("Register mismatch", nil,
			log.String("register", fmt.Sprintf("0x%02x", block.Base+byte(i))),
			log.String("expected", fmt.Sprintf("0x%02x", expected[i])),
			log.String("got", fmt.Sprintf("0x%02x", actual[i])))
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d register mismatches", diffs)
}
