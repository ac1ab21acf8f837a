package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupServeFlags(t *testing.T) {
	fs, flags := SetupServeFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, ".", flags.Project)
		assert.Empty(t, flags.Addr)
	})

	t.Run("parse flags", func(t *testing.T) {
		require.NoError(t, fs.Parse([]string{"-addr", "127.0.0.1:9000", "-verbose"}))
		assert.Equal(t, "127.0.0.1:9000", flags.Addr)
		assert.True(t, flags.Verbose)
	})
}

func TestHandleServe_Help(t *testing.T) {
	assert.NoError(t, HandleServe([]string{"--help"}))
}

func TestHandleServe_UnexpectedArgs(t *testing.T) {
	assert.Error(t, HandleServe([]string{"extra"}))
}

func TestHandleServe_MissingProject(t *testing.T) {
	assert.Error(t, HandleServe([]string{"-project", t.TempDir()}))
}
