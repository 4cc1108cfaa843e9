package main

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/config"
)

func TestParseArgs(t *testing.T) {
	t.Run("no arguments runs the ui with the default config", func(t *testing.T) {
		opts, err := parseArgs(nil, io.Discard)
		require.NoError(t, err)
		assert.Empty(t, opts.command)
		assert.Equal(t, config.ResolveConfigPath(), opts.configPath)
	})

	t.Run("config before export", func(t *testing.T) {
		opts, err := parseArgs([]string{"-config", "a.toml", "export"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "export", opts.command)
		assert.Equal(t, "a.toml", opts.configPath)
	})

	t.Run("config after export", func(t *testing.T) {
		opts, err := parseArgs([]string{"export", "-config", "b.toml"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "export", opts.command)
		assert.Equal(t, "b.toml", opts.configPath)
	})

	t.Run("stray arguments after export", func(t *testing.T) {
		_, err := parseArgs([]string{"export", "extra"}, io.Discard)
		assert.Error(t, err)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := parseArgs([]string{"sync"}, io.Discard)
		assert.Error(t, err)
	})

	t.Run("help", func(t *testing.T) {
		_, err := parseArgs([]string{"-h"}, io.Discard)
		assert.True(t, errors.Is(err, flag.ErrHelp))
	})
}
