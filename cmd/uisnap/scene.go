package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"

	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
	"github.com/hubastard/panes/engine/gfx/raster"
	"github.com/hubastard/panes/engine/ui"
)

const frameDT = 1.0 / 60

// demo is the scene replayed by the script. It keeps what the widgets
// reported across frames so the Log window can show it.
type demo struct {
	image   string
	applied int
	note    string
	quality string
}

func (d *demo) declare(u *ui.UI) {
	u.Begin("Demo").
		SetPos(gfx.V(20, 20), ui.Once).
		SetSize(gfx.V(300, 280), ui.Once).
		Scope(func(w *ui.Window) {
			q := w.Dropdown(ui.Auto, []string{"Low", "Medium", "High"}, "Medium")
			d.quality = q.Value
			w.Checkbox(ui.Auto, "Enabled", false)
			w.Slider(ui.Auto, "Volume", ui.IntRange(0, 100, 40))
			w.RadioButtons(ui.Auto, []string{"Left", "Center", "Right"}, "Center")
			w.Separator(ui.Auto)
			if w.Button(ui.Auto, "Apply").Clicked {
				d.applied++
			}
			if tb := w.LabeledTextBox(ui.Auto, "Note", ""); tb.Submitted {
				d.note = tb.Value
			}
		})

	u.Begin("Log").
		SetPos(gfx.V(220, 120), ui.Once).
		SetSize(gfx.V(260, 220), ui.Once).
		Scope(func(w *ui.Window) {
			w.TextEx(ui.Auto, "Log", colors.Yellow, 15)
			w.Text(ui.Auto, fmt.Sprintf("quality: %s", d.quality))
			w.Text(ui.Auto, fmt.Sprintf("applied: %d", d.applied))
			w.Text(ui.Auto, fmt.Sprintf("note: %q", d.note))
			if d.image != "" {
				if _, err := w.Image(context.Background(), ui.Auto, d.image, gfx.V(128, 128)); err != nil {
					w.Text(ui.Auto, err.Error()).SetColor(colors.Red)
				}
			}
		})
}

// Player feeds scripted events through core.Input and renders every
// frame into a raster.Renderer.
type Player struct {
	r      *raster.Renderer
	ui     *ui.UI
	in     *core.Input
	clip   core.MemClipboard
	bg     colors.Color
	scene  func(*ui.UI)
	frames int
}

func NewPlayer(r *raster.Renderer, u *ui.UI, bg colors.Color, scene func(*ui.UI)) *Player {
	p := &Player{r: r, ui: u, in: core.NewInput(), bg: bg, scene: scene}
	sz := r.ScreenSize()
	p.in.Handle(core.EventResize{W: int(sz.X), H: int(sz.Y)})
	return p
}

// Frame declares the scene, updates and renders it once. It reports
// whether the UI wanted the pointer.
func (p *Player) Frame() bool {
	st := p.in.Snapshot(frameDT, &p.clip)
	p.scene(p.ui)
	p.r.Clear(p.bg)
	p.frames++
	return p.ui.Draw(&st, p.r)
}

func (p *Player) Frames() int { return p.frames }

func (p *Player) move(x, y float64) { p.in.Handle(core.EventMouseMove{X: x, Y: y}) }

func (p *Player) button(down bool) {
	p.in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: down})
}

func modKeys(m core.Mod) []core.Key {
	var keys []core.Key
	if m&core.ModCtrl != 0 {
		keys = append(keys, core.KeyLeftControl)
	}
	if m&core.ModShift != 0 {
		keys = append(keys, core.KeyLeftShift)
	}
	if m&core.ModAlt != 0 {
		keys = append(keys, core.KeyLeftAlt)
	}
	return keys
}

// Step replays one script step.
func (p *Player) Step(st Step) error {
	if err := st.validate(); err != nil {
		return err
	}
	acted := false
	if st.Move != nil {
		p.move(st.Move[0], st.Move[1])
		p.Frame()
		acted = true
	}
	if st.Click != nil {
		p.move(st.Click[0], st.Click[1])
		p.button(true)
		p.Frame()
		p.button(false)
		p.Frame()
		acted = true
	}
	if st.Drag != nil {
		p.move(st.Drag[0], st.Drag[1])
		p.button(true)
		p.Frame()
		p.move(st.Drag[2], st.Drag[3])
		p.Frame()
		p.button(false)
		p.Frame()
		acted = true
	}
	if st.Type != "" {
		for _, r := range st.Type {
			p.in.Handle(core.EventChar{Char: r})
		}
		p.Frame()
		acted = true
	}
	if st.Key != "" {
		k, mods, _ := parseKey(st.Key)
		for _, m := range modKeys(mods) {
			p.in.Handle(core.EventKey{Key: m, Down: true, Mods: mods})
		}
		p.in.Handle(core.EventKey{Key: k, Down: true, Mods: mods})
		p.Frame()
		p.in.Handle(core.EventKey{Key: k, Mods: mods})
		for _, m := range modKeys(mods) {
			p.in.Handle(core.EventKey{Key: m})
		}
		acted = true
	}
	if st.Scroll != 0 {
		p.in.Handle(core.EventScroll{Yoff: st.Scroll})
		p.Frame()
		acted = true
	}

	n := st.Frames
	if !acted {
		n = max(n, 1)
	}
	for range n {
		p.Frame()
	}
	return nil
}

// Play replays every step of s.
func (p *Player) Play(s *Script) error {
	for i, st := range s.Steps {
		if err := p.Step(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	slog.Debug("script done", "steps", len(s.Steps), "frames", p.frames, "z", p.ui.Handler().ZOrder())
	return nil
}

// WritePNG encodes the last rendered frame.
func (p *Player) WritePNG(w io.Writer) error {
	if err := png.Encode(w, p.r.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
