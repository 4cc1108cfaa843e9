package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "planner.log")

	logger, err := New(Options{Path: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("loaded", "lists", 3)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded")
	assert.Contains(t, string(data), "lists=3")
}

func TestNewEmptyPathDiscards(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NoError(t, logger.Close())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
