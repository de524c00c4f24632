package ui

import (
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
)

// UI is the per-frame entry point: declare windows with Begin, then close
// the frame with Draw, or Update followed by Render.
type UI struct {
	handler *WindowHandler
	theme   *Theme
	text    gfx.TextMeasurer
	images  ImageLoader
}

type Option func(*UI)

func WithTheme(th *Theme) Option {
	return func(u *UI) {
		if th != nil {
			u.theme = th
		}
	}
}

// WithImageLoader sets how Window.Image decodes files.
func WithImageLoader(l ImageLoader) Option {
	return func(u *UI) { u.images = l }
}

// New creates a UI measuring text with text, which must agree with the
// renderer's text drawing.
func New(text gfx.TextMeasurer, opts ...Option) *UI {
	u := &UI{theme: DefaultTheme(), text: text}
	for _, opt := range opts {
		opt(u)
	}
	u.handler = NewWindowHandler(u.theme, u.text, u.images)
	return u
}

func (u *UI) Begin(id string) *Window         { return u.handler.Begin(id) }
func (u *UI) Handler() *WindowHandler         { return u.handler }
func (u *UI) Theme() *Theme                   { return u.theme }
func (u *UI) Update(in *core.InputState) bool { return u.handler.Update(in) }
func (u *UI) Render(r gfx.Renderer)           { u.handler.Render(r) }

// WantsKeyboard reports whether key input belongs to the UI this frame.
func (u *UI) WantsKeyboard() bool { return u.handler.Focused() }

// EndFrame retires the frame without painting.
func (u *UI) EndFrame() { u.handler.EndFrame() }

// SetTheme swaps the theme; call it between frames.
func (u *UI) SetTheme(th *Theme) {
	if th == nil {
		return
	}
	u.theme = th
	u.handler.SetTheme(th)
	logger.Info("theme applied")
}

// Draw runs Update then Render and reports whether the UI wants the
// pointer this frame.
func (u *UI) Draw(in *core.InputState, r gfx.Renderer) bool {
	taken := u.Update(in)
	u.Render(r)
	return taken
}
