package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/panes/engine/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panes.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
title = "demo"
width = 800
clear_color = "#ff0000"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, colors.Red, cfg.ClearColor)
}

func TestLoadConfigRejectsBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panes.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = -1\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
