// Package cy22393 contains the register model of the CY22393 programmable clock generator.
package cy22393

import (
	"errors"
	"fmt"
)

// JEDEC markers of the two register tables written by the CyberClocks tool.
const (
	MarkerTable0 = "L00064"
	MarkerTable1 = "L00512"
)

// FactoryAddress is the factory programmed I2C address of the chip. It is only
// shown in the help text, the address always has to be given explicitly.
const FactoryAddress = "0x69"

// ErrTableTooShort is returned if a table does not cover all registers of a block.
var ErrTableTooShort = errors.New("register table too short")

// Table is an ordered sequence of register values decoded from one fuse region.
type Table []byte

// Block is a contiguous range of chip registers that is filled from one table.
type Block struct {
	Name       string
	Table      int  // index of the source table
	Base       byte // first register address
	Count      int  // number of registers
	ExportName string
}

// Last returns the address of the last register of the block.
func (b Block) Last() byte {
	return b.Base + byte(b.Count-1)
}

// Register is a single register address and value pair.
type Register struct {
	Address byte
	Value   byte
}

var (
	// Block08 contains the registers 0x08..0x17.
	Block08 = Block{
		Name:       "reg08",
		Table:      0,
		Base:       0x08,
		Count:      16,
		ExportName: "cy22393_reg08.txt",
	}

	// Block40 contains the registers 0x40..0x57.
	Block40 = Block{
		Name:       "reg40",
		Table:      1,
		Base:       0x40,
		Count:      24,
		ExportName: "cy22393_reg40.txt",
	}
)

// Blocks lists all register blocks in the order they have to be written to the chip.
var Blocks = []Block{Block08, Block40}

// File is a decoded JEDEC file, it owns the two register tables.
type File struct {
	Name   string
	tables [2]Table
}

// NewFile returns a file for the given tables, the tables are copied.
func NewFile(name string, table0, table1 Table) *File {
	return &File{
		Name: name,
		tables: [2]Table{
			append(Table{}, table0...),
			append(Table{}, table1...),
		},
	}
}

// Table returns a copy of the table with the given index.
func (f *File) Table(index int) Table {
	if index < 0 || index >= len(f.tables) {
		return nil
	}
	return append(Table{}, f.tables[index]...)
}

// Validate checks that every block is covered by its source table.
func (f *File) Validate() error {
	for _, block := range Blocks {
		if err := f.check(block); err != nil {
			return err
		}
	}
	return nil
}

// Values returns the values of all registers of the block.
func (f *File) Values(block Block) ([]byte, error) {
	if err := f.check(block); err != nil {
		return nil, err
	}
	values := make([]byte, block.Count)
	copy(values, f.tables[block.Table])
	return values, nil
}

// Registers returns the registers of the block in ascending address order.
func (f *File) Registers(block Block) ([]Register, error) {
	values, err := f.Values(block)
	if err != nil {
		return nil, err
	}

	registers := make([]Register, len(values))
	for i, value := range values {
		registers[i] = Register{
			Address: block.Base + byte(i),
			Value:   value,
		}
	}
	return registers, nil
}

func (f *File) check(block Block) error {
	if block.Table < 0 || block.Table >= len(f.tables) {
		return fmt.Errorf("block %s: invalid table index %d", block.Name, block.Table)
	}
	if size := len(f.tables[block.Table]); size < block.Count {
		return fmt.Errorf("%w: table %d has %d bytes, registers 0x%02x..0x%02x need %d",
			ErrTableTooShort, block.Table, size, block.Base, block.Last(), block.Count)
	}
	return nil
}
