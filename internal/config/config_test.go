package config

import (
	"path/filepath"
	"testing"

	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/i2c"
	"github.com/dimtass/cy22393-jedec-i2c-flasher/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateBusWriter(t *testing.T) {
	logger := log.NewTestLogger(t)

	t.Run("dry run", func(t *testing.T) {
		var opts options.Program
		opts.DryRun = true
		opts.Command = filepath.Join(t.TempDir(), "missing-i2cset")

		writer, err := CreateBusWriter(logger, opts)
		assert.NoError(t, err)
		_, ok := writer.(*i2c.DryRun)
		assert.True(t, ok)
	})

	t.Run("missing command", func(t *testing.T) {
		var opts options.Program
		opts.Command = filepath.Join(t.TempDir(), "missing-i2cset")

		_, err := CreateBusWriter(logger, opts)
		assert.ErrorContains(t, err, "is not installed")
	})
}

func TestCreateLogger(t *testing.T) {
	var opts options.Program
	assert.NotNil(t, CreateLogger(opts))

	opts.Debug = true
	assert.NotNil(t, CreateLogger(opts))
}
