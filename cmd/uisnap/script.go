package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hubastard/panes/engine/core"
	"github.com/pelletier/go-toml/v2"
)

// Script is a list of input steps replayed against the scene. Each step
// injects its events and then renders Frames frames (at least one).
type Script struct {
	Steps []Step `toml:"step"`
}

type Step struct {
	Move   []float64 `toml:"move"`
	Click  []float64 `toml:"click"`
	Drag   []float64 `toml:"drag"` // x0, y0, x1, y1
	Type   string    `toml:"type"`
	Key    string    `toml:"key"` // "enter", "ctrl+a"
	Scroll float64   `toml:"scroll"`
	Frames int       `toml:"frames"`
}

var ErrBadStep = errors.New("uisnap: bad script step")

var keyNames = map[string]core.Key{
	"escape":    core.KeyEscape,
	"space":     core.KeySpace,
	"enter":     core.KeyEnter,
	"tab":       core.KeyTab,
	"backspace": core.KeyBackspace,
	"delete":    core.KeyDelete,
	"left":      core.KeyLeft,
	"right":     core.KeyRight,
	"up":        core.KeyUp,
	"down":      core.KeyDown,
	"home":      core.KeyHome,
	"end":       core.KeyEnd,
	"a":         core.KeyA,
	"c":         core.KeyC,
	"v":         core.KeyV,
	"x":         core.KeyX,
	"z":         core.KeyZ,
}

// ParseScript decodes a TOML script and validates every step.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func LoadScript(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %q: %w", path, err)
	}
	return ParseScript(b)
}

func (st Step) validate() error {
	for name, v := range map[string][]float64{"move": st.Move, "click": st.Click} {
		if v != nil && len(v) != 2 {
			return fmt.Errorf("%w: %s wants [x, y], got %d values", ErrBadStep, name, len(v))
		}
	}
	if st.Drag != nil && len(st.Drag) != 4 {
		return fmt.Errorf("%w: drag wants [x0, y0, x1, y1], got %d values", ErrBadStep, len(st.Drag))
	}
	if st.Frames < 0 {
		return fmt.Errorf("%w: negative frames", ErrBadStep)
	}
	if st.Key != "" {
		if _, _, err := parseKey(st.Key); err != nil {
			return err
		}
	}
	return nil
}

// parseKey reads "enter" or "ctrl+shift+left".
func parseKey(s string) (core.Key, core.Mod, error) {
	parts := strings.Split(strings.ToLower(s), "+")
	var mods core.Mod
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl":
			mods |= core.ModCtrl
		case "shift":
			mods |= core.ModShift
		case "alt":
			mods |= core.ModAlt
		default:
			return 0, 0, fmt.Errorf("%w: unknown modifier %q", ErrBadStep, p)
		}
	}
	k, ok := keyNames[parts[len(parts)-1]]
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown key %q", ErrBadStep, parts[len(parts)-1])
	}
	return k, mods, nil
}

// defaultScript opens the quality dropdown, picks an entry and raises
// the Demo window over Log.
var defaultScript = Script{Steps: []Step{
	{Frames: 2},
	{Click: []float64{60, 68}},
	{Click: []float64{60, 120}},
	{Click: []float64{60, 30}, Frames: 2},
}}
