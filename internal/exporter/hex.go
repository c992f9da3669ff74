package exporter

import (
	"bytes"
	"fmt"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
	"github.com/marcinbor85/gohex"
)

const hexBytesPerLine = 16

// WriteIntelHex writes all register blocks into an Intel HEX image, every
// value is placed at its register address.
func WriteIntelHex(path string, file *cy22393.File) error {
	mem := gohex.NewMemory()
	for _, block := range cy22393.Blocks {
		values, err := file.Values(block)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", block.Name, err)
		}
		if err := mem.AddBinary(uint32(block.Base), values); err != nil {
			return fmt.Errorf("adding %s to hex image: %w", block.Name, err)
		}
	}

	var buf bytes.Buffer
	if err := mem.DumpIntelHex(&buf, hexBytesPerLine); err != nil {
		return fmt.Errorf("dumping intel hex: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}
