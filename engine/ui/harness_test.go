package ui

import (
	"errors"
	"image"
	"unicode/utf8"

	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
)

// monoMeasurer gives every rune half the font size in width and the font
// size in height, so layouts are easy to compute by hand.
type monoMeasurer struct{}

func (monoMeasurer) MeasureText(s string, size float32) gfx.Vec2 {
	return gfx.V(float32(utf8.RuneCountInString(s))*size*0.5, size)
}

type drawOp struct {
	kind  string
	rect  gfx.Rect
	text  string
	color colors.Color
}

type fakeSurface struct {
	w, h     int
	ops      []drawOp
	clears   int
	released bool
}

func (s *fakeSurface) add(op drawOp) { s.ops = append(s.ops, op) }

func (s *fakeSurface) FillRect(r gfx.Rect, c colors.Color) {
	s.add(drawOp{kind: "fill", rect: r, color: c})
}
func (s *fakeSurface) StrokeRect(r gfx.Rect, _ float32, c colors.Color) {
	s.add(drawOp{kind: "stroke", rect: r, color: c})
}
func (s *fakeSurface) Line(a, b gfx.Vec2, _ float32, c colors.Color) {
	s.add(drawOp{kind: "line", rect: gfx.Rect{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}, color: c})
}
func (s *fakeSurface) FillCircle(c gfx.Vec2, r float32, col colors.Color) {
	s.add(drawOp{kind: "circle", rect: gfx.Rect{X: c.X - r, Y: c.Y - r, W: 2 * r, H: 2 * r}, color: col})
}
func (s *fakeSurface) StrokeCircle(c gfx.Vec2, r, _ float32, col colors.Color) {
	s.add(drawOp{kind: "ring", rect: gfx.Rect{X: c.X - r, Y: c.Y - r, W: 2 * r, H: 2 * r}, color: col})
}
func (s *fakeSurface) DrawImage(_ image.Image, dst gfx.Rect, tint colors.Color) {
	s.add(drawOp{kind: "image", rect: dst, color: tint})
}
func (s *fakeSurface) DrawText(str string, pos gfx.Vec2, size float32, c colors.Color) {
	d := monoMeasurer{}.MeasureText(str, size)
	s.add(drawOp{kind: "text", rect: gfx.Rect{X: pos.X, Y: pos.Y, W: d.X, H: d.Y}, text: str, color: c})
}
func (s *fakeSurface) DrawSurface(o gfx.Surface, pos gfx.Vec2) {
	w, h := o.Size()
	s.add(drawOp{kind: "surface", rect: gfx.Rect{X: pos.X, Y: pos.Y, W: float32(w), H: float32(h)}})
}
func (s *fakeSurface) Size() (int, int)   { return s.w, s.h }
func (s *fakeSurface) Clear(colors.Color) { s.ops = s.ops[:0]; s.clears++ }
func (s *fakeSurface) Release()           { s.released = true }

func (s *fakeSurface) texts() []string {
	var out []string
	for _, op := range s.ops {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

// recorder is a gfx.Renderer that keeps every call for inspection.
type recorder struct {
	fakeSurface
	monoMeasurer
	screen   gfx.Vec2
	surfaces []*fakeSurface
	cursor   gfx.CursorIcon
	fail     bool
}

func newRecorder(w, h float32) *recorder {
	return &recorder{screen: gfx.V(w, h)}
}

func (r *recorder) ScreenSize() gfx.Vec2 { return r.screen }

func (r *recorder) NewSurface(w, h int) (gfx.Surface, error) {
	if r.fail {
		return nil, errors.New("out of video memory")
	}
	s := &fakeSurface{w: w, h: h}
	r.surfaces = append(r.surfaces, s)
	return s, nil
}

func (r *recorder) SetCursor(c gfx.CursorIcon) { r.cursor = c }

type button int

const (
	idle button = iota
	press
	hold
	release
)

// harness drives a UI one frame at a time with synthetic input.
type harness struct {
	ui     *UI
	r      *recorder
	time   float64
	keys   map[core.Key]bool
	mods   core.Mod
	clip   core.MemClipboard
	screen gfx.Vec2
}

func newHarness(opts ...Option) *harness {
	return &harness{
		ui:     New(monoMeasurer{}, opts...),
		r:      newRecorder(800, 600),
		keys:   map[core.Key]bool{},
		screen: gfx.V(800, 600),
	}
}

type frameOpt func(*core.InputState)

func wheel(y float32) frameOpt { return func(s *core.InputState) { s.Wheel.Y = y } }

func chars(text string) frameOpt {
	return func(s *core.InputState) { s.Chars = []rune(text) }
}

// keyPress marks k pressed and held this frame.
func keyPress(keys ...core.Key) frameOpt {
	return func(s *core.InputState) {
		for _, k := range keys {
			s.Pressed[k] = true
			s.Keys[k] = true
		}
	}
}

func keyHold(keys ...core.Key) frameOpt {
	return func(s *core.InputState) {
		for _, k := range keys {
			s.Keys[k] = true
		}
	}
}

func withMods(m core.Mod) frameOpt { return func(s *core.InputState) { s.Mods = m } }

func dt(d float32) frameOpt { return func(s *core.InputState) { s.DT = d } }

func (h *harness) input(mouse gfx.Vec2, b button, opts ...frameOpt) *core.InputState {
	s := &core.InputState{
		Mouse:         mouse,
		MouseDown:     b == press || b == hold,
		MousePressed:  b == press,
		MouseReleased: b == release,
		Keys:          map[core.Key]bool{},
		Pressed:       map[core.Key]bool{},
		Screen:        h.screen,
		DT:            1.0 / 60,
		Clipboard:     &h.clip,
	}
	for _, o := range opts {
		o(s)
	}
	h.time += float64(s.DT)
	s.Time = h.time
	return s
}

// frame declares the scene with build, then runs update and render. It
// returns whether the UI wanted the pointer.
func (h *harness) frame(mouse gfx.Vec2, b button, build func(u *UI), opts ...frameOpt) bool {
	build(h.ui)
	return h.ui.Draw(h.input(mouse, b, opts...), h.r)
}

// click presses and releases at p over two frames.
func (h *harness) click(p gfx.Vec2, build func(u *UI)) {
	h.frame(p, press, build)
	h.frame(p, release, build)
}

// fixedWindow pins a window to rect on its first frame.
func fixedWindow(u *UI, id string, r gfx.Rect) *Window {
	return u.Begin(id).SetPos(r.Pos(), Once).SetSize(r.Size(), Once)
}
