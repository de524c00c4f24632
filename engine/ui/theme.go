package ui

import (
	"fmt"
	"os"

	"github.com/hubastard/panes/engine/colors"
	"github.com/pelletier/go-toml/v2"
)

// Theme is the flat table of colors and metrics every window and widget
// reads. Metrics are tuning values in pixels (or seconds / lerp factors).
type Theme struct {
	FontSize        float32 `toml:"font_size"`
	TitleFontSize   float32 `toml:"title_font_size"`
	TitleThickness  float32 `toml:"title_thickness"`
	Padding         float32 `toml:"padding"`
	ButtonPadding   float32 `toml:"button_padding"`
	ResizeThickness float32 `toml:"resize_thickness"`
	ResizeCorner    float32 `toml:"resize_corner"`
	ScrollbarWidth  float32 `toml:"scrollbar_width"`
	ScrollSpeed     float32 `toml:"scroll_speed"`
	MinThumb        float32 `toml:"min_thumb"`
	DropdownHeight  float32 `toml:"dropdown_height"`
	TabHeight       float32 `toml:"tab_height"`
	SliderThumb     float32 `toml:"slider_thumb"`
	RadioOuter      float32 `toml:"radio_outer"`
	RadioInner      float32 `toml:"radio_inner"`
	DefaultWidth    float32 `toml:"default_width"`
	DefaultHeight   float32 `toml:"default_height"`
	CloseLerp       float32 `toml:"close_lerp"`
	HandleLerp      float32 `toml:"handle_lerp"`
	CaretBlink      float32 `toml:"caret_blink"`

	Background       colors.Color `toml:"background"`
	ActiveTitlebar   colors.Color `toml:"active_titlebar"`
	InactiveTitlebar colors.Color `toml:"inactive_titlebar"`
	TitleText        colors.Color `toml:"title_text"`
	WinStroke        colors.Color `toml:"win_stroke"`
	ActiveStroke     colors.Color `toml:"active_stroke"`
	HoverStroke      colors.Color `toml:"hover_stroke"`
	CloseButton      colors.Color `toml:"close_button"`
	CloseButtonHover colors.Color `toml:"close_button_hover"`
	CloseButtonPress colors.Color `toml:"close_button_press"`
	ResizeHandle     colors.Color `toml:"resize_handle"`
	Text             colors.Color `toml:"text"`
	TextDim          colors.Color `toml:"text_dim"`
	Widget           colors.Color `toml:"widget"`
	WidgetHover      colors.Color `toml:"widget_hover"`
	WidgetPress      colors.Color `toml:"widget_press"`
	WidgetOutline    colors.Color `toml:"widget_outline"`
	Accent           colors.Color `toml:"accent"`
	Track            colors.Color `toml:"track"`
	Scrollbar        colors.Color `toml:"scrollbar"`
	ScrollbarHover   colors.Color `toml:"scrollbar_hover"`
	Popup            colors.Color `toml:"popup"`
	Selection        colors.Color `toml:"selection"`
	Separator        colors.Color `toml:"separator"`
}

func DefaultTheme() *Theme {
	return &Theme{
		FontSize:        13,
		TitleFontSize:   14,
		TitleThickness:  30,
		Padding:         5,
		ButtonPadding:   5,
		ResizeThickness: 7,
		ResizeCorner:    12,
		ScrollbarWidth:  8,
		ScrollSpeed:     30,
		MinThumb:        20,
		DropdownHeight:  120,
		TabHeight:       30,
		SliderThumb:     15,
		RadioOuter:      8,
		RadioInner:      5,
		DefaultWidth:    200,
		DefaultHeight:   150,
		CloseLerp:       0.2,
		HandleLerp:      0.1,
		CaretBlink:      0.5,

		Background:       colors.New(0.1, 0.1, 0.1, 1),
		ActiveTitlebar:   colors.New(0.2, 0.4, 0.7, 1),
		InactiveTitlebar: colors.New(0.1, 0.3, 0.5, 1),
		TitleText:        colors.White,
		WinStroke:        colors.New(1, 1, 1, 0.3),
		ActiveStroke:     colors.New(1, 1, 1, 0.7),
		HoverStroke:      colors.New(1, 1, 1, 0.4),
		CloseButton:      colors.New(0, 0, 0, 0.3),
		CloseButtonHover: colors.Red,
		CloseButtonPress: colors.New(0.7, 0.1, 0.1, 1),
		ResizeHandle:     colors.New(0.3, 0.5, 0.7, 1),
		Text:             colors.White,
		TextDim:          colors.New(0.9, 0.9, 0.9, 0.9),
		Widget:           colors.New(0.1, 0.3, 0.5, 0.9),
		WidgetHover:      colors.New(0.2, 0.4, 0.7, 0.9),
		WidgetPress:      colors.New(0.3, 0.5, 0.8, 1),
		WidgetOutline:    colors.New(1, 1, 1, 0.7),
		Accent:           colors.New(0.3, 0.7, 1, 1),
		Track:            colors.New(0.05, 0.2, 0.4, 1),
		Scrollbar:        colors.New(1, 1, 1, 0.25),
		ScrollbarHover:   colors.New(1, 1, 1, 0.5),
		Popup:            colors.New(0.15, 0.15, 0.18, 1),
		Selection:        colors.New(0.3, 0.5, 0.8, 0.6),
		Separator:        colors.New(1, 1, 1, 0.3),
	}
}

// ParseTheme overlays TOML data onto DefaultTheme, so a theme file only
// needs the keys it changes.
func ParseTheme(data []byte) (*Theme, error) {
	t := DefaultTheme()
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	if t.TitleThickness < 0 || t.Padding < 0 || t.FontSize <= 0 {
		return nil, fmt.Errorf("parse theme: invalid metrics (font_size %v, padding %v, title_thickness %v)",
			t.FontSize, t.Padding, t.TitleThickness)
	}
	return t, nil
}

func LoadTheme(path string) (*Theme, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load theme %q: %w", path, err)
	}
	return ParseTheme(b)
}

// Encode renders the theme as TOML, e.g. to seed a theme file.
func (t *Theme) Encode() ([]byte, error) {
	return toml.Marshal(t)
}
