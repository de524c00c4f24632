package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hubastard/panes/engine/colors"
	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run.
type Config struct {
	Title                string       `toml:"title"`
	Width                int          `toml:"width"`
	Height               int          `toml:"height"`
	VSync                bool         `toml:"vsync"`
	ClearColor           colors.Color `toml:"clear_color"`
	ScratchAllocCapacity int          `toml:"scratch_capacity"`
	ThemePath            string       `toml:"theme"`
	FontPath             string       `toml:"font"`
}

func DefaultConfig() Config {
	return Config{
		Title:                "panes",
		Width:                1280,
		Height:               720,
		VSync:                true,
		ClearColor:           colors.DarkGray,
		ScratchAllocCapacity: 4096,
	}
}

// LoadConfig overlays the TOML file at path onto DefaultConfig.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %q: window size must be positive, got %dx%d", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}
