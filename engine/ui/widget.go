package ui

import (
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
)

// Widget is one declared element. Update reads input and returns the
// size the widget occupies; Render paints at the same layout position and
// returns the same size.
type Widget interface {
	Update(u *UpdateInfo) gfx.Vec2
	Render(r *RenderInfo) gfx.Vec2
}

// frame is the state shared by every widget updated within one window
// during one frame.
type frame struct {
	in      *core.InputState
	theme   *Theme
	text    gfx.TextMeasurer
	hover   bool     // the window is hovered and owns the pointer
	active  bool     // the window has keyboard focus
	clip    gfx.Rect // visible body of the window, in screen space
	winRect gfx.Rect

	// consumed is monotonic: once set it stays set until the next frame.
	consumed   bool
	consumedBy Key
	wheelUsed  bool
	cursor     gfx.CursorIcon
}

// UpdateInfo is what a widget sees during the input pass.
type UpdateInfo struct {
	// At is the widget's top-left corner in screen space.
	At gfx.Vec2
	// Width is the room left until the right content edge of the window.
	Width    float32
	SameLine bool
	f        *frame
}

func (u *UpdateInfo) Input() *core.InputState { return u.f.in }
func (u *UpdateInfo) Theme() *Theme           { return u.f.theme }
func (u *UpdateInfo) Mouse() gfx.Vec2         { return u.f.in.Mouse }
func (u *UpdateInfo) WindowRect() gfx.Rect    { return u.f.winRect }
func (u *UpdateInfo) WindowActive() bool      { return u.f.active }

func (u *UpdateInfo) Measure(s string, size float32) gfx.Vec2 {
	return u.f.text.MeasureText(s, size)
}

// Consumed reports whether something already claimed the pointer this frame.
func (u *UpdateInfo) Consumed() bool { return u.f.consumed }

// Consume claims the pointer for the rest of the frame.
func (u *UpdateInfo) Consume() { u.f.consumed = true }

// Pointer reports whether the mouse is over the visible window body and
// may still be claimed.
func (u *UpdateInfo) Pointer() bool {
	return u.f.hover && !u.f.consumed && u.f.clip.Contains(u.f.in.Mouse)
}

// Over reports whether the pointer is available and inside r.
func (u *UpdateInfo) Over(r gfx.Rect) bool {
	return u.Pointer() && r.Contains(u.f.in.Mouse)
}

// UseWheel marks the wheel delta as handled so the window does not scroll.
func (u *UpdateInfo) UseWheel() { u.f.wheelUsed = true }

func (u *UpdateInfo) SetCursor(c gfx.CursorIcon) { u.f.cursor = c }

// RenderInfo is what a widget sees during the paint pass. Base and Overlay
// share the window body's coordinate space; Top is screen sized, so
// positions on it need TopOffset added.
type RenderInfo struct {
	At        gfx.Vec2
	Width     float32
	SameLine  bool
	Base      gfx.Canvas
	Overlay   gfx.Canvas
	Top       gfx.Canvas
	TopOffset gfx.Vec2
	theme     *Theme
	text      gfx.TextMeasurer
	time      float64
}

func (r *RenderInfo) Theme() *Theme { return r.theme }
func (r *RenderInfo) Time() float64 { return r.time }

func (r *RenderInfo) Measure(s string, size float32) gfx.Vec2 {
	return r.text.MeasureText(s, size)
}

// frameEnder is implemented by widgets that own nested holders.
type frameEnder interface {
	endFrame()
}
