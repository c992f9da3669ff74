package verification

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/cy22393"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/exporter"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func testFile() *cy22393.File {
	table0 := make(cy22393.Table, 16)
	for i := range table0 {
		table0[i] = byte(0xf0 - i)
	}
	table1 := make(cy22393.Table, 24)
	for i := range table1 {
		table1[i] = byte(i * 7)
	}
	return cy22393.NewFile("test.jed", table0, table1)
}

func TestParseArray(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []byte
		wantErr bool
	}{
		{name: "exporter format", content: "{\n0x8,0xff,0x0,\n}", want: []byte{0x08, 0xff, 0x00}},
		{name: "spaced", content: " { 0x01, 0x02 } \n", want: []byte{0x01, 0x02}},
		{name: "empty", content: "{\n\n}", want: nil},
		{name: "missing brace", content: "0x01,\n}", wantErr: true},
		{name: "out of range", content: "{0x100,}", wantErr: true},
		{name: "garbage", content: "{0xzz,}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArray(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestVerifyArrays(t *testing.T) {
	logger := log.NewTestLogger(t)
	file := testFile()
	dir := t.TempDir()

	_, err := exporter.WriteArrays(dir, file)
	assert.NoError(t, err)
	assert.NoError(t, VerifyArrays(logger, dir, file))

	// corrupt one value of the second file
	path := filepath.Join(dir, cy22393.Block40.ExportName)
	values, err := file.Values(cy22393.Block40)
	assert.NoError(t, err)
	values[3] ^= 0xff
	assert.NoError(t, os.WriteFile(path, []byte(exporter.FormatArray(values)), 0600))

	err = VerifyArrays(logger, dir, file)
	assert.ErrorContains(t, err, "1 register mismatches")
	assert.ErrorContains(t, err, cy22393.Block40.ExportName)
}

func TestVerifyArraysMissingFile(t *testing.T) {
	err := VerifyArrays(log.NewTestLogger(t), t.TempDir(), testFile())
	assert.ErrorContains(t, err, cy22393.Block08.ExportName)
}

func TestVerifyIntelHex(t *testing.T) {
	logger := log.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "clock.hex")

	assert.NoError(t, exporter.WriteIntelHex(path, testFile()))
	assert.NoError(t, VerifyIntelHex(logger, path, testFile()))

	other := cy22393.NewFile("other.jed", make(cy22393.Table, 16), make(cy22393.Table, 24))
	assert.Error(t, VerifyIntelHex(logger, path, other))
}
